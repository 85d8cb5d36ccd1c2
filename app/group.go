package app

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/authgw/authgw/internal/db"
	"github.com/authgw/authgw/internal/db/models"
	"github.com/authgw/authgw/internal/db/repository"
)

func init() { //nolint: gochecknoinits
	groupAddCmd.Flags().StringVar(&groupDescription, "description", "", "group description")

	groupCmd.AddCommand(groupAddCmd, groupListCmd, groupDeleteCmd)
	rootCmd.AddCommand(groupCmd)
}

var (
	groupDescription string

	groupCmd = &cobra.Command{
		Use:   "group",
		Short: "Manage local groups directory users are matched against",
	}

	groupAddCmd = &cobra.Command{
		Use:   "add NAME",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}

			group, err := repository.CreateGroup(gormDB, args[0], groupDescription)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created group %s\n", group.Name)

			return err
		},
	}

	groupListCmd = &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gormDB, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}

			groups, err := repository.NewUsers(gormDB).ListGroups()
			if err != nil {
				return err
			}

			printGroups(cmd.OutOrStdout(), groups)

			return nil
		},
	}

	groupDeleteCmd = &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a group and its memberships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}

			if err = repository.DeleteGroup(gormDB, args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", args[0])

			return err
		},
	}
)

func printGroups(w io.Writer, groups []models.Group) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Description"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, g := range groups {
		table.Append([]string{fmt.Sprint(g.ID), g.Name, g.Description})
	}

	table.Render()
}
