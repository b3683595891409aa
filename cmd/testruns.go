package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/testit/testit"
)

func (a *app) newTestRunsCmd() *cobra.Command {
	testRunsCmd := &cobra.Command{
		Use:   "testruns",
		Short: "Drive test run state",
	}

	actions := []struct {
		name  string
		short string
		call  func(ctx context.Context, testRunID string) (*testit.Response, error)
	}{
		{"start", "Start a test run", func(ctx context.Context, id string) (*testit.Response, error) {
			return a.client.StartTestRun(ctx, id)
		}},
		{"stop", "Stop a test run", func(ctx context.Context, id string) (*testit.Response, error) {
			return a.client.StopTestRun(ctx, id)
		}},
		{"complete", "Complete a test run", func(ctx context.Context, id string) (*testit.Response, error) {
			return a.client.CompleteTestRun(ctx, id)
		}},
	}

	for _, action := range actions {
		testRunsCmd.AddCommand(&cobra.Command{
			Use:   action.name + " <testRunId>",
			Short: action.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := action.call(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := resp.Err(); err != nil {
					return fmt.Errorf("failed to %s test run %s: %w", action.name, args[0], err)
				}

				a.logger.Info().Str("test_run", args[0]).Str("action", action.name).Msg("Test run updated")
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Test run %s: %s\n", args[0], action.name)
				return nil
			},
		})
	}

	return testRunsCmd
}
