package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"internship-tracker/internal/applications"
)

const emptyListMessage = "No internship applications found."

func newListCmd(c *cli) *cobra.Command {
	var (
		view   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications in a view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := applications.ParseView(view)
			if err != nil {
				return err
			}
			store, err := c.store(cmd.Context())
			if err != nil {
				return err
			}
			items := store.View(v)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if items == nil {
					items = []applications.Application{}
				}
				return enc.Encode(items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, emptyListMessage)
				return nil
			}
			return writeTable(out, items)
		},
	}
	cmd.Flags().StringVar(&view, "view", string(applications.ViewAll), "View to list: all, active or completed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the applications as JSON")
	return cmd
}

func writeTable(w io.Writer, items []applications.Application) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLINK\tDEADLINE\tSTATUS\tRESULT")
	for _, app := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			app.ID,
			app.Name,
			orDefault(app.Link, "N/A"),
			app.Deadline,
			app.ApplicationStatus,
			orDefault(string(app.ResultStatus), "-"),
		)
	}
	return tw.Flush()
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
