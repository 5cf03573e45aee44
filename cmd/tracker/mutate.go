package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"internship-tracker/internal/applications"
)

func newRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.store(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := store.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No application with id %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newSetStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Set the application status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := applications.ParseApplicationStatus(args[1])
			if err != nil {
				return err
			}
			return c.update(cmd, args[0], applications.SetApplicationStatus{Status: status})
		},
	}
}

func newSetResultCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set-result <id> <result>",
		Short: "Set the result status; pass \"\" to clear it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := applications.ParseResultStatus(args[1])
			if err != nil {
				return err
			}
			return c.update(cmd, args[0], applications.SetResultStatus{Result: result})
		},
	}
}

func (c *cli) update(cmd *cobra.Command, id string, u applications.Update) error {
	store, err := c.store(cmd.Context())
	if err != nil {
		return err
	}
	ok, err := store.Update(cmd.Context(), id, u)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No application with id %s\n", id)
		return nil
	}
	app, _ := store.Get(id)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s / %s\n", app.ID, app.ApplicationStatus, orDefault(string(app.ResultStatus), "-"))
	return nil
}
