package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file.
type Config struct {
	ProjectID      string `json:"project-id,omitempty"       yaml:"project-id,omitempty"`
	OrganizationID string `json:"organization-id,omitempty"  yaml:"organization-id,omitempty"`
	WorkspaceID    string `json:"workspace-id,omitempty"     yaml:"workspace-id,omitempty"`
	PrivateKeyFile string `json:"private-key-file,omitempty" yaml:"private-key-file,omitempty"`
	Environment    string `json:"environment,omitempty"      yaml:"environment,omitempty"`
	Host           string `json:"host,omitempty"             yaml:"host,omitempty"`
	Language       string `json:"language,omitempty"         yaml:"language,omitempty"`
	Retries        int    `json:"retries,omitempty"          yaml:"retries,omitempty"`
	Output         string `json:"output,omitempty"           yaml:"output,omitempty"`
	BookmarkStore  string `json:"bookmark-store,omitempty"   yaml:"bookmark-store,omitempty"`
	NATSURL        string `json:"nats-url,omitempty"         yaml:"nats-url,omitempty"`
	NATSBucket     string `json:"nats-bucket,omitempty"      yaml:"nats-bucket,omitempty"`
}

// configKeys lists the keys accepted by config set.
//
//nolint:gochecknoglobals
var configKeys = []string{
	"project-id",
	"organization-id",
	"workspace-id",
	"private-key-file",
	"environment",
	"host",
	"language",
	"retries",
	"output",
	"bookmark-store",
	"nats-url",
	"nats-bucket",
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the credential, host and output settings of the infra CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration from flags, environment and the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			return render(cmd, config, func(table *tablewriter.Table) error {
				return fillConfigTable(table, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value and save it to the config file.

Keys: ` + strings.Join(configKeys, ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if !slices.Contains(configKeys, key) {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			if key == "retries" {
				retries, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid retries value %q: %w", value, err)
				}

				viper.Set(key, retries)
			} else {
				viper.Set(key, value)
			}

			path, err := saveConfigStruct(loadFileConfig())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, path)

			return nil
		},
	}
}

// loadConfig reads the effective configuration.
func loadConfig() *Config {
	config := loadFileConfig()
	config.Output = viper.GetString("output")

	return config
}

func loadFileConfig() *Config {
	return &Config{
		ProjectID:      viper.GetString("project-id"),
		OrganizationID: viper.GetString("organization-id"),
		WorkspaceID:    viper.GetString("workspace-id"),
		PrivateKeyFile: viper.GetString("private-key-file"),
		Environment:    viper.GetString("environment"),
		Host:           viper.GetString("host"),
		Language:       viper.GetString("language"),
		Retries:        viper.GetInt("retries"),
		Output:         viper.GetString("output"),
		BookmarkStore:  viper.GetString("bookmark-store"),
		NATSURL:        viper.GetString("nats-url"),
		NATSBucket:     viper.GetString("nats-bucket"),
	}
}

// configFilePath returns the file config set writes to.
func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	if explicit := viper.GetString("config"); explicit != "" {
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".infra", "config.yml"), nil
}

// saveConfigStruct saves a Config struct to the config file.
func saveConfigStruct(config *Config) (string, error) {
	configFile, err := configFilePath()
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

func fillConfigTable(table *tablewriter.Table, config *Config) error {
	table.Header("Property", "Value")

	rows := [][]string{
		{"Project ID", orNotAvailable(config.ProjectID)},
		{"Organization ID", orNotAvailable(config.OrganizationID)},
		{"Workspace ID", orNotAvailable(config.WorkspaceID)},
		{"Private Key File", orNotAvailable(config.PrivateKeyFile)},
		{"Environment", orNotAvailable(config.Environment)},
		{"Host", orNotAvailable(config.Host)},
		{"Language", orNotAvailable(config.Language)},
		{"Retries", strconv.Itoa(config.Retries)},
		{"Output", orNotAvailable(config.Output)},
		{"Bookmark Store", orNotAvailable(config.BookmarkStore)},
		{"NATS URL", orNotAvailable(config.NATSURL)},
		{"NATS Bucket", orNotAvailable(config.NATSBucket)},
	}

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	return nil
}
