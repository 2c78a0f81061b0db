package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aims-ops/aims-console/internal/models"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage alert and log provider settings",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers of one type",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		providerType, _ := cmd.Flags().GetString("type")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		providers, err := app.client.ListProviders(cmd.Context(), providerType, page, pageSize)
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UUID\tNAME\tTYPE\tFIELDS")
		for _, p := range providers.Data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.UUID, p.Name, p.Type, len(p.Fields))
		}
		w.Flush()
		return nil
	},
}

var providersGetCmd = &cobra.Command{
	Use:   "get <uuid>",
	Short: "Show one provider and its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		provider, err := app.client.GetProvider(cmd.Context(), args[0])
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		fmt.Printf("Name: %s\nType: %s\n", provider.Name, provider.Type)
		for _, f := range provider.Fields {
			required := ""
			if f.Required {
				required = " (required)"
			}
			fmt.Printf("  %s = %s [%s]%s\n", f.Key, f.Value, f.Type, required)
		}
		return nil
	},
}

var providersCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty provider profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		providerType, _ := cmd.Flags().GetString("type")
		uuid, err := app.client.CreateProvider(cmd.Context(), args[0], providerType)
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Provider %s created (%s)", args[0], uuid))
		return nil
	},
}

var providersUpdateCmd = &cobra.Command{
	Use:   "update <uuid>",
	Short: "Replace a provider's fields",
	Long: `Replace a provider's fields. Each --field takes key=value[:type[:required]],
where type is string, number or bool (default string).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		provider, err := app.client.GetProvider(cmd.Context(), args[0])
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}

		raw, _ := cmd.Flags().GetStringArray("field")
		fields, err := parseFieldFlags(raw)
		if err != nil {
			app.notes.Error(err.Error())
			return err
		}
		provider.Fields = fields

		if err := app.client.UpdateProvider(cmd.Context(), provider); err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Provider %s updated", provider.Name))
		return nil
	},
}

var providersDeleteCmd = &cobra.Command{
	Use:   "delete <uuid>",
	Short: "Remove a provider profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		if err := app.client.DeleteProvider(cmd.Context(), args[0]); err != nil {
			app.notes.Error(err.Error())
			return err
		}

		app.notes.Success(fmt.Sprintf("Provider %s deleted", args[0]))
		return nil
	},
}

func parseFieldFlags(raw []string) ([]models.ProviderField, error) {
	fields := make([]models.ProviderField, 0, len(raw))
	for _, entry := range raw {
		key, rest, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("field %q must look like key=value[:type[:required]]", entry)
		}

		field := models.ProviderField{Key: key, Type: models.FieldTypeString}
		parts := strings.Split(rest, ":")
		field.Value = parts[0]
		if len(parts) > 1 {
			field.Type = parts[1]
		}
		if len(parts) > 2 {
			field.Required = parts[2] == "required" || parts[2] == "true"
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func init() {
	providersListCmd.Flags().String("type", models.ProviderTypeAlert, "provider type (alert or log)")
	providersListCmd.Flags().Int("page", 1, "page number")
	providersListCmd.Flags().Int("page-size", 10, "page size")
	providersCreateCmd.Flags().String("type", models.ProviderTypeAlert, "provider type (alert or log)")
	providersUpdateCmd.Flags().StringArray("field", nil, "field as key=value[:type[:required]], repeatable")
	providersCmd.AddCommand(providersListCmd, providersGetCmd, providersCreateCmd, providersUpdateCmd, providersDeleteCmd)
}
