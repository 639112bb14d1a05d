package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/a11ylab/a11ydemo/pkg/pages"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the site routes",
		Long: `List every route in navigation order with its page and title.

Unknown paths render the not-found view with a "did you mean" link
to the closest route.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := pages.NewTable()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tPAGE\tTITLE")
			for _, r := range table.Routes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.Page, r.Title)
			}
			return tw.Flush()
		},
	}
}
