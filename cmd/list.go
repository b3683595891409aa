package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/testit/testit"
)

// listOptions are the flags shared by every list command
type listOptions struct {
	params     []string
	filterExpr string
	preset     string
	skip       int
	take       int
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&o.params, "param", nil, "extra query parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&o.filterExpr, "filter", "f", "", "filter expression applied to the results")
	cmd.Flags().StringVarP(&o.preset, "preset", "p", "", "use a preset filter from config")
	cmd.Flags().IntVar(&o.skip, "skip", 0, "number of entities to skip")
	cmd.Flags().IntVar(&o.take, "take", 0, "maximum number of entities to return")
}

// query merges --param values with the paging flags that were set
func (o *listOptions) query(cmd *cobra.Command) (testit.Params, error) {
	params, err := parseParams(o.params)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("skip") {
		params["Skip"] = o.skip
	}
	if cmd.Flags().Changed("take") {
		params["Take"] = o.take
	}
	return params, nil
}

type listFunc func(ctx context.Context, params testit.Params) (*testit.Response, error)

// runList fetches one page, applies the filter and prints the matches
func (a *app) runList(cmd *cobra.Command, entity string, opts *listOptions, params testit.Params, list listFunc) error {
	flt, err := a.filters.Resolve(opts.preset, opts.filterExpr)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	ctx := cmd.Context()
	resp, err := list(ctx, params)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	items, err := resp.Items()
	if err != nil {
		return err
	}

	matches, err := a.filters.Apply(ctx, flt, items)
	if err != nil {
		return err
	}

	event := a.logger.Info().
		Str("entity", entity).
		Int("fetched", len(items)).
		Int("matched", len(matches))
	if flt != nil {
		event = event.Str("filter", flt.Expression())
	}
	event.Msg("Listed entities")

	return writeValue(cmd.OutOrStdout(), a.output, matches)
}

func (a *app) newAutoTestsCmd() *cobra.Command {
	autoTestsCmd := &cobra.Command{
		Use:   "autotests",
		Short: "Work with autotests",
	}

	var (
		opts      listOptions
		projectID string
		namespace string
		labels    []string
		flaky     bool
		deleted   bool
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List autotests matching the filter criteria",
		Long: `List autotests, optionally narrowed on the server by query flags and
on the client by a filter expression, e.g.

  testit autotests list --project-id P1 --filter 'isFlaky and hasLabel("smoke")'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := opts.query(cmd)
			if err != nil {
				return err
			}
			if projectID != "" {
				params["projectId"] = projectID
			}
			if namespace != "" {
				params["Namespace"] = namespace
			}
			if len(labels) > 0 {
				params["labels"] = labels
			}
			if cmd.Flags().Changed("flaky") {
				params["isFlaky"] = flaky
			}
			if cmd.Flags().Changed("deleted") {
				params["isDeleted"] = deleted
			}
			return a.runList(cmd, "autotests", &opts, params, a.client.GetAllAutoTests)
		},
	}
	opts.register(listCmd)
	listCmd.Flags().StringVar(&projectID, "project-id", "", "only autotests of this project")
	listCmd.Flags().StringVar(&namespace, "namespace", "", "only autotests in this namespace")
	listCmd.Flags().StringSliceVar(&labels, "label", nil, "only autotests with these labels")
	listCmd.Flags().BoolVar(&flaky, "flaky", false, "only flaky (or, with =false, stable) autotests")
	listCmd.Flags().BoolVar(&deleted, "deleted", false, "include deleted autotests")

	autoTestsCmd.AddCommand(listCmd)
	return autoTestsCmd
}

func (a *app) newProjectsCmd() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Work with projects",
	}

	var (
		opts    listOptions
		name    string
		deleted bool
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects matching the filter criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := opts.query(cmd)
			if err != nil {
				return err
			}
			if name != "" {
				params["projectName"] = name
			}
			if cmd.Flags().Changed("deleted") {
				params["isDeleted"] = deleted
			}
			return a.runList(cmd, "projects", &opts, params, a.client.GetAllProjects)
		},
	}
	opts.register(listCmd)
	listCmd.Flags().StringVar(&name, "name", "", "only projects with this name")
	listCmd.Flags().BoolVar(&deleted, "deleted", false, "only archived (or, with =false, active) projects")

	projectsCmd.AddCommand(listCmd)
	return projectsCmd
}
