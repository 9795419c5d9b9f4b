// Package cli wires the coaching operations into a command-line interface.
// Every command reads its request from a YAML file and prints the result as
// JSON, so the tool composes with shell pipelines and editors.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/liftwise/coach/internal/coach"
	"github.com/liftwise/coach/internal/errors"
	"github.com/liftwise/coach/internal/llm"
	"github.com/liftwise/coach/internal/logging"
)

// App holds the orchestrator and the default backend for CLI commands.
type App struct {
	Service *coach.Service
	Backend llm.Backend
}

// NewRootCmd creates the top-level "coach" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "coach",
		Short:         "Strength-training decision support",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	backend := root.PersistentFlags().String("backend", string(app.Backend),
		"reasoning backend: anthropic, openai, or offline")
	root.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		app.Backend = llm.Backend(*backend)
	}

	root.AddCommand(
		newPlanCmd(app),
		newInsightCmd(app),
		newStallCmd(app),
		newReviewCmd(app),
		newCustomCmd(app),
		newMesocycleCmd(app),
	)

	return root
}

// opContext tags every log line emitted below a command with the operation
// name and the selected backend.
func opContext(cmd *cobra.Command, app *App, operation string) context.Context {
	return logging.WithAttrs(cmd.Context(),
		slog.String("operation", operation),
		slog.String("backend", string(app.Backend)))
}

// readRequest loads a YAML request file into the operation's request type.
func readRequest[T any](path string) (T, error) {
	var req T
	raw, err := os.ReadFile(path)
	if err != nil {
		return req, errors.Wrap(err, "read request file")
	}
	if err := yaml.Unmarshal(raw, &req); err != nil {
		return req, errors.Wrap(err, "decode request yaml")
	}
	return req, nil
}

// writeOutcome prints the result as indented JSON on stdout. A fallback
// advisory goes to stderr so piping the JSON stays clean.
func writeOutcome[T any](cmd *cobra.Command, outcome coach.Outcome[T]) error {
	if outcome.Advisory != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "note: "+outcome.Advisory)
	}
	raw, err := json.MarshalIndent(outcome.Value, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
