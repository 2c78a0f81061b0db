package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aims-ops/aims-console/internal/models"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "Manage host machines",
}

var hostsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List host machines",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		hosts, err := app.client.ListHosts(cmd.Context(), page, pageSize)
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UUID\tHOSTNAME\tOS\tIP4\tIP6\tTEAM")
		for _, h := range hosts.Data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				h.UUID, h.Hostname, h.OS, strOrDash(h.IP4), strOrDash(h.IP6), h.Team.Name)
		}
		w.Flush()
		fmt.Printf("Page %d/%d, %d total\n", hosts.Meta.Page, hosts.Meta.Pages, hosts.Meta.Total)
		return nil
	},
}

var hostsGetCmd = &cobra.Command{
	Use:   "get <uuid>",
	Short: "Show one host machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		host, err := app.client.GetHost(cmd.Context(), args[0])
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		fmt.Printf("Hostname: %s\nOS: %s\nIP4: %s\nIP6: %s\nTeam: %s\n",
			host.Hostname, host.OS, strOrDash(host.IP4), strOrDash(host.IP6), host.Team.Name)
		return nil
	},
}

var hostsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a host machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		req := hostRequestFromFlags(cmd)
		uuid, err := app.client.CreateHost(cmd.Context(), req)
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Host %s created (%s)", req.Hostname, uuid))
		return nil
	},
}

var hostsUpdateCmd = &cobra.Command{
	Use:   "update <uuid>",
	Short: "Update a host machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		req := hostRequestFromFlags(cmd)
		if err := app.client.UpdateHost(cmd.Context(), args[0], req); err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Host %s updated", args[0]))
		return nil
	},
}

var hostsDeleteCmd = &cobra.Command{
	Use:   "delete <uuid>",
	Short: "Remove a host machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		if err := app.client.DeleteHost(cmd.Context(), args[0]); err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Host %s deleted", args[0]))
		return nil
	},
}

func hostRequestFromFlags(cmd *cobra.Command) models.HostRequest {
	hostname, _ := cmd.Flags().GetString("hostname")
	osName, _ := cmd.Flags().GetString("os")
	ip4, _ := cmd.Flags().GetString("ip4")
	ip6, _ := cmd.Flags().GetString("ip6")
	teamID, _ := cmd.Flags().GetString("team")
	return models.HostRequest{Hostname: hostname, OS: osName, IP4: ip4, IP6: ip6, TeamID: teamID}
}

func addHostFlags(cmd *cobra.Command) {
	cmd.Flags().String("hostname", "", "host name")
	cmd.Flags().String("os", "", "operating system")
	cmd.Flags().String("ip4", "", "IPv4 address")
	cmd.Flags().String("ip6", "", "IPv6 address")
	cmd.Flags().String("team", "", "owning team uuid")
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func init() {
	hostsListCmd.Flags().Int("page", 1, "page number")
	hostsListCmd.Flags().Int("page-size", 10, "page size")
	addHostFlags(hostsCreateCmd)
	addHostFlags(hostsUpdateCmd)
	hostsCmd.AddCommand(hostsListCmd, hostsGetCmd, hostsCreateCmd, hostsUpdateCmd, hostsDeleteCmd)
}
