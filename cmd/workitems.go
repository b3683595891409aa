package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/testit/testit"
)

func (a *app) newWorkItemsCmd() *cobra.Command {
	workItemsCmd := &cobra.Command{
		Use:   "workitems",
		Short: "Work with work items",
	}

	var versionNumber int

	getCmd := &cobra.Command{
		Use:   "get <id>...",
		Short: "Fetch one or more work items",
		Long: `Fetch work items by internal or global id. Several ids are fetched
concurrently, bounded by the concurrency setting; results keep argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := testit.Params{}
			if cmd.Flags().Changed("version") {
				params["versionNumber"] = versionNumber
			}

			results := make([]any, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Concurrency)

			for i, id := range args {
				g.Go(func() error {
					resp, err := a.client.GetWorkItemByID(ctx, id, params)
					if err != nil {
						return fmt.Errorf("work item %s: %w", id, err)
					}
					if err := resp.Err(); err != nil {
						return fmt.Errorf("work item %s: %w", id, err)
					}
					results[i] = resp.Value()
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			a.logger.Debug().Int("count", len(results)).Msg("Fetched work items")

			if len(results) == 1 {
				return writeValue(cmd.OutOrStdout(), a.output, results[0])
			}
			return writeValue(cmd.OutOrStdout(), a.output, results)
		},
	}
	getCmd.Flags().IntVar(&versionNumber, "version", 0, "fetch this version of the work items")

	workItemsCmd.AddCommand(getCmd)
	return workItemsCmd
}
