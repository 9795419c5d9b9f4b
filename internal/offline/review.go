package offline

import (
	"context"
	"fmt"
	"strings"

	"github.com/liftwise/coach/internal/training"
)

// consistencyStep pairs a workout count with its score and summary sentence.
type consistencyStep struct {
	score    int
	sentence string
}

// consistencySteps is the step function over the weekly workout count.
// Counts of five or more use the last step.
var consistencySteps = []consistencyStep{
	{score: 1, sentence: "No workouts logged this week."},
	{score: 3, sentence: "One workout logged this week - let's build momentum."},
	{score: 5, sentence: "Two workouts logged this week - a decent base to build on."},
	{score: 7, sentence: "Good consistency with three workouts this week."},
	{score: 8, sentence: "Great consistency with four workouts this week."},
	{score: 9, sentence: "Outstanding consistency with five or more workouts this week."},
}

// GenerateWeeklyReview synthesizes a review of one week of training from
// aggregate numbers and per-exercise best-versus-previous-best pairs.
func (e *Engine) GenerateWeeklyReview(
	_ context.Context,
	req training.WeeklyReviewRequest,
) (training.WeeklyReview, error) {
	step := consistencySteps[min(req.WorkoutCount, len(consistencySteps)-1)]

	review := training.WeeklyReview{
		Summary:          step.sentence,
		Highlights:       []string{},
		AreasToImprove:   []string{},
		ConsistencyScore: step.score,
	}

	prNames := improvedExercises(req.ExerciseBests)
	if len(prNames) > 0 {
		shown := prNames
		if len(shown) > MaxPRHighlights {
			shown = shown[:MaxPRHighlights]
		}
		review.Highlights = append(review.Highlights,
			fmt.Sprintf("New estimated 1RM bests: %s.", strings.Join(shown, ", ")))
	}
	switch {
	case req.TotalVolumeKg > HugeVolumeKg:
		review.Highlights = append(review.Highlights,
			fmt.Sprintf("Huge training volume this week: %.0f kg moved.", req.TotalVolumeKg))
	case req.TotalVolumeKg > SolidVolumeKg:
		review.Highlights = append(review.Highlights,
			fmt.Sprintf("Solid training volume this week: %.0f kg moved.", req.TotalVolumeKg))
	}

	if req.WorkoutCount < TargetWeeklySessions {
		review.AreasToImprove = append(review.AreasToImprove,
			fmt.Sprintf("Aim for at least %d sessions per week.", TargetWeeklySessions))
	}
	if len(prNames) == 0 && req.WorkoutCount >= 2 {
		review.AreasToImprove = append(review.AreasToImprove,
			"No new personal records - review recovery and progression targets.")
	}
	if req.AverageDurationMinutes < ShortSessionMinutes && req.WorkoutCount >= 1 {
		review.AreasToImprove = append(review.AreasToImprove,
			"Sessions ran short - make room for the full prescribed volume.")
	}

	// Fixed priority: low count beats missing PRs beats very high volume
	// beats steady-state encouragement.
	switch {
	case req.WorkoutCount < TargetWeeklySessions:
		review.Recommendation = "Schedule your next session now - consistency beats intensity."
	case len(prNames) == 0:
		review.Recommendation = "Pick one lift and aim to beat its rep or load target next week."
	case req.TotalVolumeKg > HugeVolumeKg:
		review.Recommendation = "Volume is very high - plan a lighter session to absorb the work."
	default:
		review.Recommendation = "Keep the current plan rolling - steady progress is winning."
	}

	return review, nil
}

// improvedExercises lists names whose best e1RM beat the previous best, in
// input order.
func improvedExercises(bests []training.ExerciseBest) []string {
	var names []string
	for _, b := range bests {
		if b.BestE1RM > b.PreviousBestE1RM {
			names = append(names, b.Name)
		}
	}
	return names
}
