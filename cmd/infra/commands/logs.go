package commands

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// logResource maps a CLI resource name to its log collection.
type logResource struct {
	name      string
	parentKey string
}

//nolint:gochecknoglobals
var logResources = map[string]logResource{
	"card":              {name: infra.ResourceIssuingCardLog, parentKey: infra.IssuingCardLogParentFilter},
	"invoice":           {name: infra.ResourceIssuingInvoiceLog, parentKey: infra.IssuingInvoiceLogParentFilter},
	"stock":             {name: infra.ResourceIssuingStockLog, parentKey: infra.IssuingStockLogParentFilter},
	"embossing-request": {name: infra.ResourceIssuingEmbossingRequestLog, parentKey: infra.IssuingEmbossingRequestLogParentFilter},
	"pix-key":           {name: infra.ResourcePixKeyLog, parentKey: infra.PixKeyLogParentFilter},
	"pix-claim":         {name: infra.ResourcePixClaimLog, parentKey: infra.PixClaimLogParentFilter},
	"pix-reversal":      {name: infra.ResourcePixReversalLog, parentKey: infra.PixReversalLogParentFilter},
}

func logResourceNames() []string {
	names := make([]string, 0, len(logResources))
	for name := range logResources {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func lookupLogResource(name string) (logResource, error) {
	resource, ok := logResources[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return logResource{}, fmt.Errorf("%w: %q", constants.ErrUnknownResource, name)
	}

	return resource, nil
}

// LogEntry is the displayed form of any log.
type LogEntry struct {
	ID       string    `json:"id"       yaml:"id"`
	Type     string    `json:"type"     yaml:"type"`
	ParentID string    `json:"parentId" yaml:"parentId"`
	Created  time.Time `json:"created"  yaml:"created"`
}

// logEntry extracts the common fields of a log resource.
func logEntry(res infra.Resource) LogEntry {
	entry := LogEntry{ID: res.GetID()}

	switch log := res.(type) {
	case *infra.IssuingCardLog:
		entry.Type, entry.Created, entry.ParentID = log.Type, log.Created, parentID(log.Card)
	case *infra.IssuingInvoiceLog:
		entry.Type, entry.Created, entry.ParentID = log.Type, log.Created, parentID(log.Invoice)
	case *infra.IssuingStockLog:
		entry.Type, entry.Created, entry.ParentID = log.Type, log.Created, parentID(log.Stock)
	case *infra.IssuingEmbossingRequestLog:
		entry.Type, entry.Created, entry.ParentID = log.Type, log.Created, parentID(log.Request)
	case *infra.PixKeyLog:
		entry.Type, entry.Created, entry.ParentID = log.Type, log.Created, parentID(log.Key)
	case *infra.PixClaimLog:
		entry.Type, entry.Created, entry.ParentID = log.Type, log.Created, parentID(log.Claim)
	case *infra.PixReversalLog:
		entry.Type, entry.Created, entry.ParentID = log.Type, log.Created, parentID(log.Reversal)
	}

	return entry
}

func parentID[T infra.Resource](parent T) string {
	var zero T
	if any(parent) == any(zero) {
		return ""
	}

	return parent.GetID()
}

// NewLogsCommand creates the logs command group.
func NewLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logs",
		Aliases: []string{"log"},
		Short:   "Read resource logs",
		Long: `Read the append-only change logs of a resource.

Resources: ` + strings.Join(logResourceNames(), ", "),
	}

	cmd.PersistentFlags().StringP("resource", "r", "card", "resource whose logs to read")

	cmd.AddCommand(newLogsListCommand())
	cmd.AddCommand(newLogsPageCommand())
	cmd.AddCommand(newLogsGetCommand())

	return cmd
}

type logFilterFlags struct {
	ids       []string
	types     []string
	parentIDs []string
	after     string
	before    string
}

func (f *logFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.ids, "ids", nil, "filter by log IDs")
	cmd.Flags().StringSliceVar(&f.types, "types", nil, "filter by log types")
	cmd.Flags().StringSliceVar(&f.parentIDs, "parent-ids", nil, "filter by the IDs of the logged entities")
	cmd.Flags().StringVar(&f.after, "after", "", "only logs created after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.before, "before", "", "only logs created before this date (YYYY-MM-DD)")
}

func (f *logFilterFlags) query(parentKey string) (infra.Query, error) {
	filter := infra.LogFilter{IDs: f.ids, Types: f.types, ParentIDs: f.parentIDs}

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

	return filter.Query(parentKey), nil
}

func resourceFlag(cmd *cobra.Command) (logResource, error) {
	flag := cmd.Flag("resource")
	if flag == nil {
		return lookupLogResource("card")
	}

	return lookupLogResource(flag.Value.String())
}

func newLogsListCommand() *cobra.Command {
	var (
		filters logFilterFlags
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logs",
		Long:  "List the logs of a resource, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			resource, err := resourceFlag(cmd)
			if err != nil {
				return err
			}

			query, err := filters.query(resource.parentKey)
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			logs, err := client.Resources().Query(ctx, resource.name, query, limit).All()
			if err != nil {
				return fmt.Errorf("failed to list logs: %w", err)
			}

			return renderLogs(cmd, logs, "")
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", constants.MaxPageSize, "maximum number of logs (0 for all)")

	return cmd
}

func newLogsPageCommand() *cobra.Command {
	var (
		filters logFilterFlags
		cursor  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Fetch one page of logs",
		Long:  "Fetch a single page of logs and print the cursor of the next one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			resource, err := resourceFlag(cmd)
			if err != nil {
				return err
			}

			query, err := filters.query(resource.parentKey)
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			page, err := client.Resources().Page(ctx, resource.name, query, cursor, limit)
			if err != nil {
				return fmt.Errorf("failed to fetch logs page: %w", err)
			}

			return renderLogs(cmd, page.Items, page.Cursor)
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&cursor, "cursor", "", "cursor returned by the previous page")
	cmd.Flags().IntVarP(&limit, "limit", "l", constants.DefaultPageSize, "page size (at most 100)")

	return cmd
}

func newLogsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LOG_ID",
		Short: "Get a log",
		Long:  "Display a single log together with the state of the logged entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			resource, err := resourceFlag(cmd)
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			log, err := client.Resources().Get(ctx, resource.name, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get log: %w", err)
			}

			entry := logEntry(log)

			return render(cmd, log, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("ID", entry.ID)
				_ = table.Append("Resource", resource.name)
				_ = table.Append("Type", entry.Type)
				_ = table.Append("Parent ID", orNotAvailable(entry.ParentID))
				_ = table.Append("Created", formatTime(&entry.Created))

				return nil
			})
		},
	}
}

// renderLogs prints full log resources for json and yaml, and one row per log
// for tables.
func renderLogs(cmd *cobra.Command, logs []infra.Resource, cursor string) error {
	var data any = logs
	if cursor != "" {
		data = PageOutput[infra.Resource]{Items: logs, Cursor: cursor}
	}

	return render(cmd, data, func(table *tablewriter.Table) error {
		table.Header("ID", "Type", "Parent ID", "Created")

		for _, log := range logs {
			entry := logEntry(log)

			err := table.Append(entry.ID, entry.Type, orNotAvailable(entry.ParentID), formatTime(&entry.Created))
			if err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		if cursor != "" {
			table.Footer("", "", "Next cursor", cursor)
		}

		return nil
	})
}
