package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"bid-reconciler/internal/vault"

	"github.com/spf13/cobra"
)

func newEncryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt an auction-site password read from stdin for storage on a company record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			v, err := vault.New(cfg.EncryptionKey)
			if err != nil {
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read secret: %w", err)
				}
				return errors.New("no secret on stdin")
			}
			secret := strings.TrimRight(scanner.Text(), "\r")
			if secret == "" {
				return errors.New("empty secret")
			}

			encrypted, err := v.Encrypt(secret)
			if err != nil {
				return err
			}
			if !v.Verify(secret, encrypted) {
				return errors.New("encrypted secret does not round-trip")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), encrypted)
			return err
		},
	}
}
