package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/liftwise/coach/internal/training"
)

// Prompt construction. Every builder writes fields in a fixed order and sorts
// map keys, so the same request always produces byte-identical text. That
// keeps remote calls reproducible and prompt tests trivial.

const promptPreamble = "You are a strength-training coach. Answer with a single JSON object and nothing else. Use the exact field names given in the schema. Weights are kilograms, RPE is on the 1-10 scale."

const sessionPlanSchema = `{"exercises":[{"name":"","warmup_sets":[{"weight_kg":0,"reps":0,"rpe_cap":0,"count":0}],"top_sets":[...],"backoff_sets":[...],"working_sets":[...]}],"substitutions":[{"from":"","to":"","reason":""}],"adjustment_notes":[""],"reasoning":[""],"estimated_minutes":0}`

const insightSchema = `{"summary":"","highlights":[""],"suggestion":""}`

const stallSchema = `{"is_stalled":false,"reason":"","suggested_fix":"","fix_type":"deload|rep_range|variation|volume","details":""}`

const weeklyReviewSchema = `{"summary":"","highlights":[""],"areas_to_improve":[""],"recommendation":"","consistency_score":0}`

const customWorkoutSchema = `{"name":"","exercises":[{"name":"","sets":0,"reps":{"min":0,"max":0},"rpe_cap":0}],"estimated_minutes":0}`

const multiWeekPlanSchema = `{"weeks":[{"number":1,"focus":"","sessions":[{"day":"","exercises":[{"name":"","sets":0,"reps":{"min":0,"max":0},"rpe_cap":0}]}]}],"notes":[""]}`

func sessionPlanPrompt(rc training.PlanRequestContext) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nPlan today's session from the context below. Respect the rep ranges and RPE caps, scale intensity to readiness, and substitute any exercise that would load a painful body part.\n")

	fmt.Fprintf(&b, "\nGOAL: %s\nLOCATION: %s\n", rc.Goal, rc.Location)
	fmt.Fprintf(&b, "READINESS: energy=%s soreness=%s time_available_minutes=%d\n",
		rc.Readiness.Energy, rc.Readiness.Soreness, rc.Readiness.TimeAvailableMinutes)
	writeList(&b, "EQUIPMENT", rc.Equipment)

	b.WriteString("TEMPLATE:\n")
	for _, te := range rc.Template {
		p := te.Prescription
		fmt.Fprintf(&b, "- %s: progression=%s top_reps=%d-%d rpe_cap=%.1f backoff_sets=%d backoff_reps=%d-%d load_drop=%.2f working_sets=%d optional=%t\n",
			te.Name, p.Progression, p.TopSetReps.Min, p.TopSetReps.Max, p.TopSetRPECap,
			p.BackoffSetCount, p.BackoffReps.Min, p.BackoffReps.Max, p.BackoffLoadDrop,
			p.WorkingSetCount, te.Optional)
	}

	writeHistory(&b, rc.History)
	writePainFlags(&b, rc.PainFlags)

	b.WriteString("\nSchema: ")
	b.WriteString(sessionPlanSchema)
	return b.String()
}

func insightPrompt(req training.InsightRequest) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nWrite a short reflection on the finished session below: a one-line summary, up to three highlights, and one concrete suggestion for next time.\n")

	fmt.Fprintf(&b, "\nDATE: %s\nDURATION_MINUTES: %d\n", req.Date.Format("2006-01-02"), req.DurationMinutes)
	fmt.Fprintf(&b, "READINESS: energy=%s soreness=%s\n", req.Readiness.Energy, req.Readiness.Soreness)
	b.WriteString("COMPLETED:\n")
	for _, ex := range req.Exercises {
		fmt.Fprintf(&b, "- %s: top_set=%.1fkg x %d", ex.Name, ex.TopSetWeightKg, ex.TopSetReps)
		if ex.TopSetRPE != nil {
			fmt.Fprintf(&b, " @%.1f", *ex.TopSetRPE)
		}
		fmt.Fprintf(&b, " sets=%d/%d\n", ex.CompletedSetCount, ex.PlannedSetCount)
	}
	writeHistory(&b, req.History)

	b.WriteString("\nSchema: ")
	b.WriteString(insightSchema)
	return b.String()
}

func stallPrompt(req training.StallRequest) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nDecide whether the exercise below has plateaued and, if so, suggest exactly one fix. History is chronological, oldest first.\n")

	fmt.Fprintf(&b, "\nEXERCISE: %s\nGOAL: %s\n", req.Exercise, req.Goal)
	p := req.Prescription
	fmt.Fprintf(&b, "PRESCRIPTION: progression=%s top_reps=%d-%d rpe_cap=%.1f\n",
		p.Progression, p.TopSetReps.Min, p.TopSetReps.Max, p.TopSetRPECap)
	b.WriteString("HISTORY:\n")
	for _, h := range req.History {
		writeHistoryEntry(&b, h)
	}

	b.WriteString("\nSchema: ")
	b.WriteString(stallSchema)
	return b.String()
}

func weeklyReviewPrompt(req training.WeeklyReviewRequest) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nReview the training week below: summary, highlights, areas to improve, one recommendation, and a 1-10 consistency score.\n")

	fmt.Fprintf(&b, "\nWORKOUT_COUNT: %d\nTOTAL_VOLUME_KG: %.1f\nAVERAGE_DURATION_MINUTES: %.1f\n",
		req.WorkoutCount, req.TotalVolumeKg, req.AverageDurationMinutes)
	b.WriteString("EXERCISE_BESTS:\n")
	for _, best := range req.ExerciseBests {
		fmt.Fprintf(&b, "- %s: best_e1rm=%.2f previous_best_e1rm=%.2f\n",
			best.Name, best.BestE1RM, best.PreviousBestE1RM)
	}

	b.WriteString("\nSchema: ")
	b.WriteString(weeklyReviewSchema)
	return b.String()
}

func customWorkoutPrompt(req training.CustomWorkoutRequest) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nDesign a one-off workout for the constraints below. Stay within the time budget and avoid loading painful body parts.\n")

	fmt.Fprintf(&b, "\nGOAL: %s\nTIME_AVAILABLE_MINUTES: %d\n", req.Goal, req.TimeAvailableMinutes)
	writeList(&b, "EQUIPMENT", req.Equipment)
	writeList(&b, "FOCUS_BODY_PARTS", req.FocusBodyParts)
	writePainFlags(&b, req.PainFlags)

	b.WriteString("\nSchema: ")
	b.WriteString(customWorkoutSchema)
	return b.String()
}

func multiWeekPlanPrompt(req training.MultiWeekPlanRequest) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nDesign a full training block for the constraints below. Progress load week over week and include a lighter final week.\n")

	fmt.Fprintf(&b, "\nGOAL: %s\nWEEKS: %d\nDAYS_PER_WEEK: %d\n", req.Goal, req.Weeks, req.DaysPerWeek)
	writeList(&b, "EQUIPMENT", req.Equipment)
	if req.Experience != "" {
		fmt.Fprintf(&b, "EXPERIENCE: %s\n", req.Experience)
	}

	b.WriteString("\nSchema: ")
	b.WriteString(multiWeekPlanSchema)
	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}

// writeHistory emits per-exercise history with exercise names sorted, since
// Go map iteration order would otherwise leak into the prompt.
func writeHistory(b *strings.Builder, history map[string][]training.HistoryEntry) {
	if len(history) == 0 {
		return
	}
	names := make([]string, 0, len(history))
	for name := range history {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("HISTORY:\n")
	for _, name := range names {
		fmt.Fprintf(b, "%s:\n", name)
		for _, h := range history[name] {
			writeHistoryEntry(b, h)
		}
	}
}

func writeHistoryEntry(b *strings.Builder, h training.HistoryEntry) {
	fmt.Fprintf(b, "- %s: %.1fkg x %d", h.Date.Format("2006-01-02"), h.TopSetWeightKg, h.TopSetReps)
	if h.TopSetRPE != nil {
		fmt.Fprintf(b, " @%.1f", *h.TopSetRPE)
	}
	fmt.Fprintf(b, " sets=%d\n", h.CompletedSetCount)
}

func writePainFlags(b *strings.Builder, flags []training.PainFlag) {
	if len(flags) == 0 {
		return
	}
	b.WriteString("PAIN_FLAGS:\n")
	for _, f := range flags {
		fmt.Fprintf(b, "- %s: %s\n", f.BodyPart, f.Severity)
	}
}
