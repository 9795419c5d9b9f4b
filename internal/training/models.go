// Package training defines the domain model for session prescription:
// readiness input, exercise prescriptions, training history, pain flags, and
// the request/response types shared by the offline engine and the remote
// reasoning clients.
package training

import (
	"fmt"
	"time"
)

// EnergyLevel is the self-reported energy on the day of training.
type EnergyLevel string

const (
	EnergyLow  EnergyLevel = "low"
	EnergyOK   EnergyLevel = "ok"
	EnergyHigh EnergyLevel = "high"
)

// SorenessLevel is the self-reported muscle soreness on the day of training.
type SorenessLevel string

const (
	SorenessNone SorenessLevel = "none"
	SorenessMild SorenessLevel = "mild"
	SorenessHigh SorenessLevel = "high"
)

// Readiness summarizes day-of condition used to modulate intensity and volume.
type Readiness struct {
	Energy               EnergyLevel   `json:"energy" yaml:"energy"`
	Soreness             SorenessLevel `json:"soreness" yaml:"soreness"`
	TimeAvailableMinutes int           `json:"time_available_minutes" yaml:"time_available_minutes"`
}

// ReduceIntensity reports whether the session should be toned down.
func (r Readiness) ReduceIntensity() bool {
	return r.Energy == EnergyLow || r.Soreness == SorenessHigh
}

// IncreaseIntensity reports whether the session can be pushed harder.
func (r Readiness) IncreaseIntensity() bool {
	return r.Energy == EnergyHigh && r.Soreness == SorenessNone
}

// ProgressionType selects the set scheme an exercise is trained with.
type ProgressionType string

const (
	ProgressionTopSetBackoff     ProgressionType = "top_set_backoff"
	ProgressionDoubleProgression ProgressionType = "double_progression"
	ProgressionStraightSets      ProgressionType = "straight_sets"
)

// RepRange is an inclusive repetition target range.
type RepRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Prescription describes how an exercise should be loaded and progressed.
type Prescription struct {
	Progression     ProgressionType `json:"progression" yaml:"progression"`
	TopSetReps      RepRange        `json:"top_set_reps" yaml:"top_set_reps"`
	TopSetRPECap    float64         `json:"top_set_rpe_cap" yaml:"top_set_rpe_cap"`
	BackoffSetCount int             `json:"backoff_set_count" yaml:"backoff_set_count"`
	BackoffReps     RepRange        `json:"backoff_reps" yaml:"backoff_reps"`
	// BackoffLoadDrop is the fraction of the top-set weight removed for
	// backoff sets, in [0, 1).
	BackoffLoadDrop float64 `json:"backoff_load_drop" yaml:"backoff_load_drop"`
	WorkingSetCount int     `json:"working_set_count" yaml:"working_set_count"`
}

// Validate checks the prescription invariants.
func (p Prescription) Validate() error {
	if p.TopSetReps.Min > p.TopSetReps.Max {
		return fmt.Errorf("top set rep range inverted: %d > %d", p.TopSetReps.Min, p.TopSetReps.Max)
	}
	if p.BackoffReps.Min > p.BackoffReps.Max {
		return fmt.Errorf("backoff rep range inverted: %d > %d", p.BackoffReps.Min, p.BackoffReps.Max)
	}
	if p.TopSetRPECap < 1 || p.TopSetRPECap > 10 {
		return fmt.Errorf("top set RPE cap %.1f outside [1, 10]", p.TopSetRPECap)
	}
	if p.BackoffLoadDrop < 0 || p.BackoffLoadDrop >= 1 {
		return fmt.Errorf("backoff load drop %.2f outside [0, 1)", p.BackoffLoadDrop)
	}
	return nil
}

// HistoryEntry is one recorded session of a single exercise. Histories are
// consumed most-recent-first.
type HistoryEntry struct {
	Date              time.Time `json:"date" yaml:"date"`
	TopSetWeightKg    float64   `json:"top_set_weight_kg" yaml:"top_set_weight_kg"`
	TopSetReps        int       `json:"top_set_reps" yaml:"top_set_reps"`
	TopSetRPE         *float64  `json:"top_set_rpe,omitempty" yaml:"top_set_rpe,omitempty"`
	CompletedSetCount int       `json:"completed_set_count" yaml:"completed_set_count"`
	E1RM              float64   `json:"e1rm" yaml:"e1rm"`
}

// PainSeverity grades an active pain flag.
type PainSeverity string

const (
	PainMild     PainSeverity = "mild"
	PainModerate PainSeverity = "moderate"
	PainSevere   PainSeverity = "severe"
)

// PainFlag marks a body part as painful for the current session.
type PainFlag struct {
	BodyPart string       `json:"body_part" yaml:"body_part"`
	Severity PainSeverity `json:"severity" yaml:"severity"`
}

// Goal is the user's overall training goal.
type Goal string

const (
	GoalStrength       Goal = "strength"
	GoalHypertrophy    Goal = "hypertrophy"
	GoalGeneralFitness Goal = "general_fitness"
)

// Location is where the session takes place.
type Location string

const (
	LocationGym  Location = "gym"
	LocationHome Location = "home"
)

// TemplateExercise is one slot of the session template in order.
type TemplateExercise struct {
	Name         string       `json:"name" yaml:"name"`
	Prescription Prescription `json:"prescription" yaml:"prescription"`
	Optional     bool         `json:"optional" yaml:"optional"`
}

// PlanRequestContext aggregates everything needed to prescribe one session.
// It is assembled by the caller, treated as read-only, and never retained.
type PlanRequestContext struct {
	Goal      Goal               `json:"goal" yaml:"goal"`
	Template  []TemplateExercise `json:"template" yaml:"template"`
	Location  Location           `json:"location" yaml:"location"`
	Readiness Readiness          `json:"readiness" yaml:"readiness"`
	// History maps exercise name to its recent entries, most recent first.
	History   map[string][]HistoryEntry `json:"history" yaml:"history"`
	Equipment []string                  `json:"equipment" yaml:"equipment"`
	PainFlags []PainFlag                `json:"pain_flags" yaml:"pain_flags"`
}

// SetGroup is a group of identical sets: weight, target reps, effort cap,
// and how many sets to perform.
type SetGroup struct {
	WeightKg float64 `json:"weight_kg" yaml:"weight_kg"`
	Reps     int     `json:"reps" yaml:"reps"`
	RPECap   float64 `json:"rpe_cap" yaml:"rpe_cap"`
	Count    int     `json:"count" yaml:"count"`
}

// ExercisePlan is the prescribed work for one exercise of the session.
type ExercisePlan struct {
	Name        string     `json:"name" yaml:"name"`
	WarmupSets  []SetGroup `json:"warmup_sets,omitempty" yaml:"warmup_sets,omitempty"`
	TopSets     []SetGroup `json:"top_sets,omitempty" yaml:"top_sets,omitempty"`
	BackoffSets []SetGroup `json:"backoff_sets,omitempty" yaml:"backoff_sets,omitempty"`
	WorkingSets []SetGroup `json:"working_sets,omitempty" yaml:"working_sets,omitempty"`
}

// Substitution records a pain-driven exercise swap.
type Substitution struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Reason string `json:"reason" yaml:"reason"`
}

// SessionPlan is the prescribed session, the primary engine output.
type SessionPlan struct {
	Exercises        []ExercisePlan `json:"exercises" yaml:"exercises"`
	Substitutions    []Substitution `json:"substitutions,omitempty" yaml:"substitutions,omitempty"`
	AdjustmentNotes  []string       `json:"adjustment_notes,omitempty" yaml:"adjustment_notes,omitempty"`
	Reasoning        []string       `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	EstimatedMinutes int            `json:"estimated_minutes" yaml:"estimated_minutes"`
}

// StallFixType classifies the suggested fix for a stalled exercise.
type StallFixType string

const (
	FixDeload    StallFixType = "deload"
	FixRepRange  StallFixType = "rep_range"
	FixVariation StallFixType = "variation"
	FixVolume    StallFixType = "volume"
)

// StallRequest asks whether one exercise has plateaued.
type StallRequest struct {
	Exercise     string         `json:"exercise" yaml:"exercise"`
	History      []HistoryEntry `json:"history" yaml:"history"` // chronological, oldest first
	Prescription Prescription   `json:"prescription" yaml:"prescription"`
	Goal         Goal           `json:"goal" yaml:"goal"`
}

// StallReport is the plateau analysis for one exercise.
type StallReport struct {
	IsStalled    bool         `json:"is_stalled" yaml:"is_stalled"`
	Reason       string       `json:"reason,omitempty" yaml:"reason,omitempty"`
	SuggestedFix string       `json:"suggested_fix,omitempty" yaml:"suggested_fix,omitempty"`
	FixType      StallFixType `json:"fix_type,omitempty" yaml:"fix_type,omitempty"`
	Details      string       `json:"details,omitempty" yaml:"details,omitempty"`
}

// CompletedExercise summarizes one exercise of a finished session.
type CompletedExercise struct {
	Name              string   `json:"name" yaml:"name"`
	TopSetWeightKg    float64  `json:"top_set_weight_kg" yaml:"top_set_weight_kg"`
	TopSetReps        int      `json:"top_set_reps" yaml:"top_set_reps"`
	TopSetRPE         *float64 `json:"top_set_rpe,omitempty" yaml:"top_set_rpe,omitempty"`
	CompletedSetCount int      `json:"completed_set_count" yaml:"completed_set_count"`
	PlannedSetCount   int      `json:"planned_set_count" yaml:"planned_set_count"`
}

// InsightRequest asks for a short reflection on a finished session.
type InsightRequest struct {
	Date            time.Time                 `json:"date" yaml:"date"`
	Exercises       []CompletedExercise       `json:"exercises" yaml:"exercises"`
	DurationMinutes int                       `json:"duration_minutes" yaml:"duration_minutes"`
	Readiness       Readiness                 `json:"readiness" yaml:"readiness"`
	History         map[string][]HistoryEntry `json:"history" yaml:"history"`
}

// Insight is a short post-session reflection.
type Insight struct {
	Summary    string   `json:"summary" yaml:"summary"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Suggestion string   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// ExerciseBest pairs an exercise's best e1RM of the review period with the
// best before the period.
type ExerciseBest struct {
	Name             string  `json:"name" yaml:"name"`
	BestE1RM         float64 `json:"best_e1rm" yaml:"best_e1rm"`
	PreviousBestE1RM float64 `json:"previous_best_e1rm" yaml:"previous_best_e1rm"`
}

// WeeklyReviewRequest aggregates one week of training for review.
type WeeklyReviewRequest struct {
	WorkoutCount           int            `json:"workout_count" yaml:"workout_count"`
	TotalVolumeKg          float64        `json:"total_volume_kg" yaml:"total_volume_kg"`
	AverageDurationMinutes float64        `json:"average_duration_minutes" yaml:"average_duration_minutes"`
	ExerciseBests          []ExerciseBest `json:"exercise_bests" yaml:"exercise_bests"`
}

// WeeklyReview is the synthesized weekly summary.
type WeeklyReview struct {
	Summary          string   `json:"summary" yaml:"summary"`
	Highlights       []string `json:"highlights" yaml:"highlights"`
	AreasToImprove   []string `json:"areas_to_improve" yaml:"areas_to_improve"`
	Recommendation   string   `json:"recommendation" yaml:"recommendation"`
	ConsistencyScore int      `json:"consistency_score" yaml:"consistency_score"`
}

// CustomWorkoutRequest asks for a one-off workout outside the template.
// There is no offline equivalent for this operation.
type CustomWorkoutRequest struct {
	Goal                 Goal       `json:"goal" yaml:"goal"`
	TimeAvailableMinutes int        `json:"time_available_minutes" yaml:"time_available_minutes"`
	Equipment            []string   `json:"equipment" yaml:"equipment"`
	FocusBodyParts       []string   `json:"focus_body_parts" yaml:"focus_body_parts"`
	PainFlags            []PainFlag `json:"pain_flags" yaml:"pain_flags"`
}

// CustomExercise is one exercise of a generated workout or plan.
type CustomExercise struct {
	Name   string   `json:"name" yaml:"name"`
	Sets   int      `json:"sets" yaml:"sets"`
	Reps   RepRange `json:"reps" yaml:"reps"`
	RPECap float64  `json:"rpe_cap" yaml:"rpe_cap"`
}

// CustomWorkout is a generated one-off workout.
type CustomWorkout struct {
	Name             string           `json:"name" yaml:"name"`
	Exercises        []CustomExercise `json:"exercises" yaml:"exercises"`
	EstimatedMinutes int              `json:"estimated_minutes" yaml:"estimated_minutes"`
}

// MultiWeekPlanRequest asks for a full training block. There is no offline
// equivalent for this operation.
type MultiWeekPlanRequest struct {
	Goal        Goal     `json:"goal" yaml:"goal"`
	Weeks       int      `json:"weeks" yaml:"weeks"`
	DaysPerWeek int      `json:"days_per_week" yaml:"days_per_week"`
	Equipment   []string `json:"equipment" yaml:"equipment"`
	Experience  string   `json:"experience,omitempty" yaml:"experience,omitempty"`
}

// PlannedSession is one day of a multi-week plan.
type PlannedSession struct {
	Day       string           `json:"day" yaml:"day"`
	Exercises []CustomExercise `json:"exercises" yaml:"exercises"`
}

// PlannedWeek is one week of a multi-week plan.
type PlannedWeek struct {
	Number   int              `json:"number" yaml:"number"`
	Focus    string           `json:"focus,omitempty" yaml:"focus,omitempty"`
	Sessions []PlannedSession `json:"sessions" yaml:"sessions"`
}

// MultiWeekPlan is a generated training block.
type MultiWeekPlan struct {
	Weeks []PlannedWeek `json:"weeks" yaml:"weeks"`
	Notes []string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}
