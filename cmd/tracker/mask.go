package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"internship-tracker/internal/applications"
)

func newMaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mask <raw>",
		Short: "Format raw digits as a DD/MM/YYYY deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), applications.MaskDeadline(args[0]))
			return nil
		},
	}
}

func newCountsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show how many applications are in each view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.store(cmd.Context())
			if err != nil {
				return err
			}
			counts := store.Counts()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "All\t%d\n", counts.All)
			fmt.Fprintf(tw, "Active\t%d\n", counts.Active)
			fmt.Fprintf(tw, "Completed\t%d\n", counts.Completed)
			return tw.Flush()
		},
	}
}
