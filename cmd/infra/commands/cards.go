package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoCardsToCreate is returned when create has neither flags nor a file.
	ErrNoCardsToCreate = errors.New("no cards to create, set --holder-name or --file")
	// ErrEmptyUpdate is returned when update has nothing to change.
	ErrEmptyUpdate = errors.New("nothing to update, set --status, --display-name or --tags")
)

// PageOutput is the displayed form of a single page.
type PageOutput[T any] struct {
	Items  []T    `json:"items"            yaml:"items"`
	Cursor string `json:"cursor,omitempty" yaml:"cursor,omitempty"`
}

// NewCardsCommand creates the cards command group.
func NewCardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cards",
		Aliases: []string{"card"},
		Short:   "Manage issuing cards",
		Long:    "Create, list, update and cancel issuing cards",
	}

	cmd.AddCommand(newCardsListCommand())
	cmd.AddCommand(newCardsPageCommand())
	cmd.AddCommand(newCardsGetCommand())
	cmd.AddCommand(newCardsCreateCommand())
	cmd.AddCommand(newCardsUpdateCommand())
	cmd.AddCommand(newCardsCancelCommand())

	return cmd
}

type cardFilterFlags struct {
	status    string
	types     []string
	holderIDs []string
	tags      []string
	ids       []string
	expand    []string
	after     string
	before    string
}

func (f *cardFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", "", "filter by status (active, blocked, canceled, expired)")
	cmd.Flags().StringSliceVar(&f.types, "types", nil, "filter by card types")
	cmd.Flags().StringSliceVar(&f.holderIDs, "holder-ids", nil, "filter by holder IDs")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "filter by tags")
	cmd.Flags().StringSliceVar(&f.ids, "ids", nil, "filter by card IDs")
	cmd.Flags().StringSliceVar(&f.expand, "expand", nil, "fields to expand (rules, securityCode, number, expiration)")
	cmd.Flags().StringVar(&f.after, "after", "", "only cards created after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.before, "before", "", "only cards created before this date (YYYY-MM-DD)")
}

func (f *cardFilterFlags) query() (infra.Query, error) {
	filter := infra.CardFilter{
		Status:    f.status,
		Types:     f.types,
		HolderIDs: f.holderIDs,
		Tags:      f.tags,
		IDs:       f.ids,
		Expand:    f.expand,
	}

	var err error

	if f.after != "" {
		filter.After, err = infra.ParseDate(f.after)
		if err != nil {
			return nil, fmt.Errorf("invalid --after: %w", err)
		}
	}

	if f.before != "" {
		filter.Before, err = infra.ParseDate(f.before)
		if err != nil {
			return nil, fmt.Errorf("invalid --before: %w", err)
		}
	}

	return filter.Query(), nil
}

func newCardsListCommand() *cobra.Command {
	var (
		filters cardFilterFlags
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issuing cards",
		Long:  "List issuing cards, following cursors until the limit or the end of the collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			query, err := filters.query()
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			cards, err := client.IssuingCards().Query(ctx, query, limit).All()
			if err != nil {
				return fmt.Errorf("failed to list cards: %w", err)
			}

			return renderCards(cmd, cards)
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of cards (0 for all)")

	return cmd
}

func newCardsPageCommand() *cobra.Command {
	var (
		filters cardFilterFlags
		cursor  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Fetch one page of issuing cards",
		Long:  "Fetch a single page of issuing cards and print the cursor of the next one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			query, err := filters.query()
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			page, err := client.IssuingCards().Page(ctx, query, cursor, limit)
			if err != nil {
				return fmt.Errorf("failed to fetch cards page: %w", err)
			}

			output := PageOutput[*infra.IssuingCard]{Items: page.Items, Cursor: page.Cursor}

			return render(cmd, output, func(table *tablewriter.Table) error {
				err := fillCardsTable(table, page.Items)
				if err != nil {
					return err
				}

				table.Footer("", "", "", "Next cursor", orNotAvailable(page.Cursor))

				return nil
			})
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&cursor, "cursor", "", "cursor returned by the previous page")
	cmd.Flags().IntVarP(&limit, "limit", "l", constants.DefaultPageSize, "page size (at most 100)")

	return cmd
}

func newCardsGetCommand() *cobra.Command {
	var (
		expand      []string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "get CARD_ID [CARD_ID...]",
		Short: "Get card details",
		Long:  "Display detailed information about one issuing card, or a summary of several fetched concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			query := infra.Query{"expand": expand}

			if len(args) == 1 {
				card, err := client.IssuingCards().Get(ctx, args[0], query)
				if err != nil {
					return fmt.Errorf("failed to get card: %w", err)
				}

				return renderCard(cmd, card)
			}

			results := infra.GetMany[*infra.IssuingCard](ctx, infra.NewBatchExecutor(concurrency), client.IssuingCards(), args, query)

			return renderBatch(cmd, "get", results)
		},
	}

	cmd.Flags().StringSliceVar(&expand, "expand", nil, "fields to expand (rules, securityCode, number, expiration)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel requests when several IDs are given")

	return cmd
}

func newCardsCreateCommand() *cobra.Command {
	var (
		file   string
		expand []string
		card   infra.IssuingCard
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create issuing cards",
		Long: `Create one card from flags, or several from a YAML or JSON file holding a
list of cards, e.g.

  - holderName: Tony Stark
    holderTaxId: 012.345.678-90
    holderExternalId: "1234"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			cards, err := cardsToCreate(file, &card)
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			created, err := client.IssuingCards().Create(ctx, cards, infra.Query{"expand": expand})
			if err != nil {
				return fmt.Errorf("failed to create cards: %w", err)
			}

			return renderCards(cmd, created)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with the cards to create")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "fields to expand in the answer")
	cmd.Flags().StringVar(&card.HolderName, "holder-name", "", "card holder name")
	cmd.Flags().StringVar(&card.HolderTaxID, "holder-tax-id", "", "card holder tax ID")
	cmd.Flags().StringVar(&card.HolderExternalID, "holder-external-id", "", "card holder external ID")
	cmd.Flags().StringVar(&card.DisplayName, "display-name", "", "name printed on the card")
	cmd.Flags().StringVar(&card.BinID, "bin-id", "", "BIN the card is issued under")
	cmd.Flags().StringSliceVar(&card.Tags, "tags", nil, "card tags")

	return cmd
}

// cardsToCreate reads cards from file, or uses the card built from flags.
// yaml.v3 also reads JSON.
func cardsToCreate(file string, fromFlags *infra.IssuingCard) ([]*infra.IssuingCard, error) {
	if file == "" {
		if fromFlags.HolderName == "" {
			return nil, ErrNoCardsToCreate
		}

		card := *fromFlags

		return []*infra.IssuingCard{&card}, nil
	}

	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read cards file: %w", err)
	}

	var cards []*infra.IssuingCard

	err = yaml.Unmarshal(data, &cards)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cards file: %w", err)
	}

	if len(cards) == 0 {
		return nil, ErrNoCardsToCreate
	}

	return cards, nil
}

func newCardsUpdateCommand() *cobra.Command {
	var (
		status      string
		displayName string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update CARD_ID",
		Short: "Update a card",
		Long:  "Change the status, display name or tags of an issuing card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			patch := map[string]any{}

			if cmd.Flags().Changed("status") {
				patch["status"] = strings.ToLower(status)
			}

			if cmd.Flags().Changed("display-name") {
				patch["displayName"] = displayName
			}

			if cmd.Flags().Changed("tags") {
				patch["tags"] = tags
			}

			if len(patch) == 0 {
				return ErrEmptyUpdate
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			card, err := client.IssuingCards().Update(ctx, args[0], patch)
			if err != nil {
				return fmt.Errorf("failed to update card: %w", err)
			}

			return renderCard(cmd, card)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "new status (active or blocked)")
	cmd.Flags().StringVar(&displayName, "display-name", "", "new display name")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "new tags")

	return cmd
}

func newCardsCancelCommand() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "cancel CARD_ID [CARD_ID...]",
		Short: "Cancel cards",
		Long:  "Cancel issuing cards. Canceled cards cannot be reactivated",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				card, err := client.IssuingCards().Cancel(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to cancel card: %w", err)
				}

				return renderCard(cmd, card)
			}

			results := infra.CancelMany[*infra.IssuingCard](ctx, infra.NewBatchExecutor(concurrency), client.IssuingCards(), args)

			return renderBatch(cmd, "cancel", results)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel requests")

	return cmd
}

// BatchOutcome is the displayed result of one card of a batch.
type BatchOutcome struct {
	ID    string             `json:"id"              yaml:"id"`
	Card  *infra.IssuingCard `json:"card,omitempty"  yaml:"card,omitempty"`
	Error string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// renderBatch prints every outcome, then fails if any card failed.
func renderBatch(cmd *cobra.Command, action string, results infra.BatchResults[*infra.IssuingCard]) error {
	outcomes := make([]BatchOutcome, 0, len(results))

	for _, result := range results {
		outcome := BatchOutcome{ID: result.ID, Card: result.Data}
		if result.Error != nil {
			outcome.Error = result.Error.Error()
		}

		outcomes = append(outcomes, outcome)
	}

	err := render(cmd, outcomes, func(table *tablewriter.Table) error {
		table.Header("ID", "Holder", "Status", "Error")

		for _, outcome := range outcomes {
			holder, status := constants.NotAvailable, constants.NotAvailable
			if outcome.Card != nil {
				holder, status = outcome.Card.HolderName, formatStatus(outcome.Card.Status)
			}

			if err := table.Append(outcome.ID, holder, status, outcome.Error); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := results.Err(); err != nil {
		return fmt.Errorf("failed to %s cards: %w", action, err)
	}

	return nil
}

func renderCards(cmd *cobra.Command, cards []*infra.IssuingCard) error {
	return render(cmd, cards, func(table *tablewriter.Table) error {
		return fillCardsTable(table, cards)
	})
}

func fillCardsTable(table *tablewriter.Table, cards []*infra.IssuingCard) error {
	table.Header("ID", "Holder", "Display Name", "Status", "Created")

	for _, card := range cards {
		err := table.Append(card.GetID(), card.HolderName, orNotAvailable(card.DisplayName), formatStatus(card.Status), formatTime(card.Created))
		if err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	return nil
}

func renderCard(cmd *cobra.Command, card *infra.IssuingCard) error {
	return render(cmd, card, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		expiration := constants.MaskedSecret
		if card.Expiration != nil {
			expiration = card.Expiration.Format("01/2006")
		}

		rows := [][]string{
			{"ID", card.GetID()},
			{"Holder Name", card.HolderName},
			{"Holder Tax ID", orNotAvailable(card.HolderTaxID)},
			{"Holder External ID", orNotAvailable(card.HolderExternalID)},
			{"Holder ID", orNotAvailable(card.HolderID)},
			{"Display Name", orNotAvailable(card.DisplayName)},
			{"Type", orNotAvailable(card.Type)},
			{"Status", formatStatus(card.Status)},
			{"Number", maskedOr(card.Number)},
			{"Security Code", maskedOr(card.SecurityCode)},
			{"Expiration", expiration},
			{"Tags", orNotAvailable(strings.Join(card.Tags, ", "))},
			{"Rules", itoa(int64(len(card.Rules)))},
			{"Updated", formatTime(card.Updated)},
			{"Created", formatTime(card.Created)},
		}

		for _, row := range rows {
			if err := table.Append(row); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		return nil
	})
}

func maskedOr(value string) string {
	if value == "" {
		return constants.MaskedSecret
	}

	return value
}
