package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"internship-tracker/internal/applications"
)

func newAddCmd(c *cli) *cobra.Command {
	var (
		name     string
		link     string
		deadline string
		status   string
		result   string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an internship application",
		Long:  "Adds an application. --deadline accepts digits in any layout and is masked to DD/MM/YYYY.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft := applications.Draft{
				Name:     name,
				Link:     link,
				Deadline: applications.MaskDeadline(deadline),
			}
			if strings.TrimSpace(status) != "" {
				parsed, err := applications.ParseApplicationStatus(status)
				if err != nil {
					return err
				}
				draft.ApplicationStatus = parsed
			}
			if strings.TrimSpace(result) != "" {
				parsed, err := applications.ParseResultStatus(result)
				if err != nil {
					return err
				}
				draft.ResultStatus = parsed
			}

			store, err := c.store(cmd.Context())
			if err != nil {
				return err
			}
			app, ok, err := store.Add(cmd.Context(), draft)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("name and deadline are required")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", app.Name, app.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Company or programme name (required)")
	cmd.Flags().StringVarP(&link, "link", "l", "", "Application URL")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "Deadline, e.g. 31122025 or 31/12/2025 (required)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Application status: Not Started, Pending or Completed")
	cmd.Flags().StringVarP(&result, "result", "r", "", "Result status: Selected, Not Selected or Pending")
	return cmd
}
