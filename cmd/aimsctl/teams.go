package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		teams, err := app.client.ListTeams(cmd.Context(), page, pageSize)
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UUID\tNAME")
		for _, team := range teams.Data {
			fmt.Fprintf(w, "%s\t%s\n", team.UUID, team.Name)
		}
		w.Flush()
		fmt.Printf("Page %d/%d, %d total\n", teams.Meta.Page, teams.Meta.Pages, teams.Meta.Total)
		return nil
	},
}

func init() {
	teamsCmd.Flags().Int("page", 1, "page number")
	teamsCmd.Flags().Int("page-size", 10, "page size")
}
