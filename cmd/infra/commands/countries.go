package commands

import (
	"fmt"

	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCountriesCommand creates the countries command.
func NewCountriesCommand() *cobra.Command {
	var (
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "countries",
		Aliases: []string{"country"},
		Short:   "List merchant countries",
		Long:    "List the countries card rules can allow or block",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			countries, err := client.MerchantCountries().Query(ctx, infra.CountryFilter{Search: search}.Query(), limit).All()
			if err != nil {
				return fmt.Errorf("failed to list countries: %w", err)
			}

			return render(cmd, countries, func(table *tablewriter.Table) error {
				table.Header("Code", "Name", "Number", "Short Code")

				for _, country := range countries {
					err := table.Append(country.Code, country.Name, orNotAvailable(country.Number), orNotAvailable(country.ShortCode))
					if err != nil {
						return fmt.Errorf("failed to append row: %w", err)
					}
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "search by name or code")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of countries (0 for all)")

	return cmd
}
