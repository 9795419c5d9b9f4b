package cli

import (
	"github.com/spf13/cobra"

	"github.com/liftwise/coach/internal/training"
)

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <request.yaml>",
		Short: "Prescribe today's session from template, history, and readiness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest[training.PlanRequestContext](args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Service.GenerateSessionPlan(opContext(cmd, app, "plan"), app.Backend, req)
			if err != nil {
				return err
			}
			return writeOutcome(cmd, outcome)
		},
	}
}

func newInsightCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insight <request.yaml>",
		Short: "Reflect on a finished session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest[training.InsightRequest](args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Service.GeneratePostSessionInsight(opContext(cmd, app, "insight"), app.Backend, req)
			if err != nil {
				return err
			}
			return writeOutcome(cmd, outcome)
		},
	}
}

func newStallCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stall <request.yaml>",
		Short: "Check one exercise for a plateau and suggest a fix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest[training.StallRequest](args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Service.AnalyzeStall(opContext(cmd, app, "stall"), app.Backend, req)
			if err != nil {
				return err
			}
			return writeOutcome(cmd, outcome)
		},
	}
}

func newReviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review <request.yaml>",
		Short: "Summarize a week of training",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest[training.WeeklyReviewRequest](args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Service.GenerateWeeklyReview(opContext(cmd, app, "review"), app.Backend, req)
			if err != nil {
				return err
			}
			return writeOutcome(cmd, outcome)
		},
	}
}

func newCustomCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "custom <request.yaml>",
		Short: "Design a one-off workout (remote only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest[training.CustomWorkoutRequest](args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Service.GenerateCustomWorkout(opContext(cmd, app, "custom"), app.Backend, req)
			if err != nil {
				return err
			}
			return writeOutcome(cmd, outcome)
		},
	}
}

func newMesocycleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mesocycle <request.yaml>",
		Short: "Design a multi-week training block (remote only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest[training.MultiWeekPlanRequest](args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Service.GenerateMultiWeekPlan(opContext(cmd, app, "mesocycle"), app.Backend, req)
			if err != nil {
				return err
			}
			return writeOutcome(cmd, outcome)
		},
	}
}
