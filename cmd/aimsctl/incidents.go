package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aims-ops/aims-console/internal/aims"
	"github.com/aims-ops/aims-console/internal/models"
)

var incidentsCmd = &cobra.Command{
	Use:   "incidents",
	Short: "View and manage incidents",
}

var incidentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List incidents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		filter := aims.IncidentFilter{}
		filter.Page, _ = cmd.Flags().GetInt("page")
		filter.PageSize, _ = cmd.Flags().GetInt("page-size")
		if cmd.Flags().Changed("my-teams") {
			v, _ := cmd.Flags().GetBool("my-teams")
			filter.MyTeams = &v
		}
		if cmd.Flags().Changed("resolved") {
			v, _ := cmd.Flags().GetBool("resolved")
			filter.Resolved = &v
		}

		incidents, err := app.client.ListIncidents(cmd.Context(), filter)
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UUID\tSUMMARY\tCREATED\tSTATE")
		for _, inc := range incidents.Data {
			state := "open"
			if inc.Resolved() {
				state = "resolved"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", inc.UUID, inc.Summary, inc.CreatedAt.Format(time.RFC3339), state)
		}
		w.Flush()
		fmt.Printf("Page %d/%d, %d total\n", incidents.Meta.Page, incidents.Meta.Pages, incidents.Meta.Total)
		return nil
	},
}

var incidentsGetCmd = &cobra.Command{
	Use:   "get <uuid>",
	Short: "Show one incident with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		inc, err := app.client.GetIncident(cmd.Context(), args[0])
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		fmt.Printf("Summary: %s\n", inc.Summary)
		fmt.Printf("Description: %s\n", inc.Description)
		fmt.Printf("Created: %s\n", inc.CreatedAt.Format(time.RFC3339))
		if inc.Resolved() {
			fmt.Printf("Resolved: %s", inc.ResolvedAt.Format(time.RFC3339))
			if inc.ResolvedBy != nil {
				fmt.Printf(" by %s", inc.ResolvedBy.Name)
			}
			fmt.Println()
		}
		for _, team := range inc.ResolutionTeams {
			fmt.Printf("Resolution team: %s\n", team.Name)
		}
		for _, host := range inc.HostsAffected {
			fmt.Printf("Affected host: %s\n", host.Hostname)
		}
		for _, comment := range inc.Comments {
			fmt.Printf("[%s] %s: %s\n", comment.CommentedAt.Format(time.RFC3339), comment.CommentedBy.Name, comment.Comment)
		}
		return nil
	},
}

// setResolved fetches the incident and replays its current fields with
// the resolved flag flipped, the same shape the web form submits.
func setResolved(cmd *cobra.Command, uuid string, resolved bool) error {
	if err := requireSession(); err != nil {
		return err
	}

	inc, err := app.client.GetIncident(cmd.Context(), uuid)
	if err != nil {
		app.notes.Error(err.Error())
		return err
	}

	req := models.IncidentUpdateRequest{
		Summary:         inc.Summary,
		Description:     inc.Description,
		HostsAffected:   uuidsOfHosts(inc.HostsAffected),
		ResolutionTeams: uuidsOfTeams(inc.ResolutionTeams),
		Resolved:        resolved,
	}
	if err := app.client.UpdateIncident(cmd.Context(), uuid, req); err != nil {
		app.notes.Error(err.Error())
		return err
	}

	if resolved {
		app.notes.Success(fmt.Sprintf("Incident %s resolved", uuid))
	} else {
		app.notes.Success(fmt.Sprintf("Incident %s reopened", uuid))
	}
	return nil
}

var incidentsResolveCmd = &cobra.Command{
	Use:   "resolve <uuid>",
	Short: "Mark an incident as resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setResolved(cmd, args[0], true)
	},
}

var incidentsReopenCmd = &cobra.Command{
	Use:   "reopen <uuid>",
	Short: "Reopen a resolved incident",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setResolved(cmd, args[0], false)
	},
}

var incidentsUpdateCmd = &cobra.Command{
	Use:   "update <uuid>",
	Short: "Update an incident's summary or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		inc, err := app.client.GetIncident(cmd.Context(), args[0])
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		req := models.IncidentUpdateRequest{
			Summary:         inc.Summary,
			Description:     inc.Description,
			HostsAffected:   uuidsOfHosts(inc.HostsAffected),
			ResolutionTeams: uuidsOfTeams(inc.ResolutionTeams),
			Resolved:        inc.Resolved(),
		}
		if cmd.Flags().Changed("summary") {
			req.Summary, _ = cmd.Flags().GetString("summary")
		}
		if cmd.Flags().Changed("description") {
			req.Description, _ = cmd.Flags().GetString("description")
		}

		if err := app.client.UpdateIncident(cmd.Context(), args[0], req); err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Incident %s updated", args[0]))
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage incident comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <incident-uuid> <text>",
	Short: "Comment on an incident",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		uuid, err := app.client.PostComment(cmd.Context(), args[0], args[1])
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Comment %s added", uuid))
		return nil
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <incident-uuid> <comment-uuid>",
	Short: "Delete a comment from an incident",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		if err := app.client.DeleteComment(cmd.Context(), args[0], args[1]); err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success("Comment deleted")
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the unresolved incidents for your teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		myTeams, unresolved := true, false
		incidents, err := app.client.ListIncidents(cmd.Context(), aims.IncidentFilter{MyTeams: &myTeams, Resolved: &unresolved})
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		fmt.Printf("%d unresolved incidents for your teams\n", incidents.Meta.Total)
		for _, inc := range incidents.Data {
			fmt.Printf("  %s  %s (%s)\n", inc.UUID, inc.Summary, inc.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

func uuidsOfHosts(hosts []models.HostMachine) []string {
	out := make([]string, len(hosts))
	for i, h := range hosts {
		out[i] = h.UUID
	}
	return out
}

func uuidsOfTeams(teams []models.Team) []string {
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = t.UUID
	}
	return out
}

func init() {
	incidentsListCmd.Flags().Int("page", 1, "page number")
	incidentsListCmd.Flags().Int("page-size", 10, "page size")
	incidentsListCmd.Flags().Bool("my-teams", false, "only incidents for your teams")
	incidentsListCmd.Flags().Bool("resolved", false, "filter by resolution state")
	incidentsUpdateCmd.Flags().String("summary", "", "new summary")
	incidentsUpdateCmd.Flags().String("description", "", "new description")
	commentCmd.AddCommand(commentAddCmd, commentDeleteCmd)
	incidentsCmd.AddCommand(incidentsListCmd, incidentsGetCmd, incidentsUpdateCmd, incidentsResolveCmd, incidentsReopenCmd, commentCmd)
}
