package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/testit/catalog"
)

func (a *app) newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse request body templates",
		Long: `Browse the request body templates of the TestIT v2 API. Templates are
reference material only: payloads are never validated against them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(a.output)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List template names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range catalog.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	var enumsOnly bool

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a template and the values its enumerated fields accept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, ok := catalog.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown template %q (see 'testit catalog list')", args[0])
			}

			out := cmd.OutOrStdout()
			enums := tmpl.Enums()
			if enumsOnly {
				return writeValue(out, a.output, enums)
			}

			var (
				rendered []byte
				err      error
			)
			if a.output == "yaml" {
				rendered, err = tmpl.YAML()
			} else {
				rendered, err = tmpl.JSON()
				rendered = append(rendered, '\n')
			}
			if err != nil {
				return err
			}
			if _, err := out.Write(rendered); err != nil {
				return err
			}

			if len(enums) > 0 {
				fmt.Fprintln(out, "\nEnumerations:")
				for _, path := range slices.Sorted(maps.Keys(enums)) {
					fmt.Fprintf(out, "  %s: %s\n", path, strings.Join(enums[path], ", "))
				}
			}
			return nil
		},
	}
	showCmd.Flags().BoolVar(&enumsOnly, "enums", false, "only print the enumerated fields")

	catalogCmd.AddCommand(listCmd, showCmd)
	return catalogCmd
}
