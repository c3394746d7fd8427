package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/infra-client/internal/auth"
	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/spf13/cobra"
)

// NewKeygenCommand creates the keygen command.
func NewKeygenCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a signing key pair",
		Long: `Generate a secp256k1 key pair for request signing.

The public key is printed so it can be registered with the API. The private
key is written to --out, or printed when --out is not set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, err := auth.GenerateKeyPEM()
			if err != nil {
				return fmt.Errorf("failed to generate key: %w", err)
			}

			publicKey, err := auth.PublicKeyPEM(privateKey)
			if err != nil {
				return fmt.Errorf("failed to derive public key: %w", err)
			}

			out := cmd.OutOrStdout()

			if outFile == "" {
				_, _ = fmt.Fprint(out, string(privateKey))
				_, _ = fmt.Fprint(out, string(publicKey))

				return nil
			}

			err = os.MkdirAll(filepath.Dir(outFile), constants.ConfigDirPerm)
			if err != nil {
				return fmt.Errorf("failed to create key directory: %w", err)
			}

			err = os.WriteFile(outFile, privateKey, constants.ConfigFilePerm)
			if err != nil {
				return fmt.Errorf("failed to write private key: %w", err)
			}

			_, _ = fmt.Fprintf(out, "Private key written to %s\n", outFile)
			_, _ = fmt.Fprint(out, string(publicKey))

			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "file to write the private key to")

	return cmd
}
