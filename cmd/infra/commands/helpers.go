package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// outputFormat returns the configured output format. Without one, terminals
// get a table and pipes get JSON.
func outputFormat() string {
	if format := viper.GetString("output"); format != "" {
		return strings.ToLower(format)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return constants.FormatTable
	}

	return constants.FormatJSON
}

// render writes data in the configured format. table fills the table used for
// the table format.
func render(cmd *cobra.Command, data any, table func(*tablewriter.Table) error) error {
	out := cmd.OutOrStdout()

	switch outputFormat() {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	case constants.FormatTable:
		return renderTable(out, table)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, viper.GetString("output"))
	}
}

func renderTable(out io.Writer, fill func(*tablewriter.Table) error) error {
	table := tablewriter.NewWriter(out)

	if err := fill(table); err != nil {
		return err
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// commandContext returns the command context, which is nil when RunE is
// called directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// formatAmount renders cents as units, e.g. 12345 as "123.45".
func formatAmount(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	amount := fmt.Sprintf("%s%d.%02d", sign, cents/constants.CentsPerUnit, cents%constants.CentsPerUnit)
	if currency == "" {
		return amount
	}

	return amount + " " + currency
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

func formatStatus(status string) string {
	if status == "" {
		return constants.NotAvailable
	}

	return cases.Title(language.English).String(status)
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// parseKeyValues turns key=value pairs into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", constants.KeyValueSplitParts)
		if len(parts) != constants.KeyValueSplitParts || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidKeyValue, pair)
		}

		values[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	return values, nil
}

// queryOf sends values as given, so lists stay comma separated.
func queryOf(values map[string]string) infra.Query {
	query := make(infra.Query, len(values))
	for key, value := range values {
		query[key] = value
	}

	return query
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
