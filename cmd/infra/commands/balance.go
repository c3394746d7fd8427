package commands

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// BalanceInfo is the displayed form of a balance.
type BalanceInfo struct {
	Account  string     `json:"account"           yaml:"account"`
	ID       string     `json:"id"                yaml:"id"`
	Amount   int64      `json:"amount"            yaml:"amount"`
	Currency string     `json:"currency"          yaml:"currency"`
	Updated  *time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`
}

// NewBalanceCommand creates the balance command.
func NewBalanceCommand() *cobra.Command {
	var pix bool

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the account balance",
		Long:  "Show the issuing balance, or the instant payment balance with --pix",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			var info BalanceInfo

			if pix {
				balance, err := client.PixBalance().Get(ctx)
				if err != nil {
					return fmt.Errorf("failed to get pix balance: %w", err)
				}

				info = BalanceInfo{Account: "pix", ID: balance.GetID(), Amount: balance.Amount, Currency: balance.Currency, Updated: balance.Updated}
			} else {
				balance, err := client.IssuingBalance().Get(ctx)
				if err != nil {
					return fmt.Errorf("failed to get issuing balance: %w", err)
				}

				info = BalanceInfo{Account: "issuing", ID: balance.GetID(), Amount: balance.Amount, Currency: balance.Currency, Updated: balance.Updated}
			}

			return render(cmd, info, func(table *tablewriter.Table) error {
				table.Header("Account", "ID", "Amount", "Updated")

				return table.Append(info.Account, orNotAvailable(info.ID), formatAmount(info.Amount, info.Currency), formatTime(info.Updated))
			})
		},
	}

	cmd.Flags().BoolVar(&pix, "pix", false, "show the instant payment balance")

	return cmd
}
