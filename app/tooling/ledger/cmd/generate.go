package cmd

import (
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/foundation/envelope"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new account key",
	RunE:  generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) error {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(accountPath, 0755); err != nil {
		return err
	}

	if err := crypto.SaveECDSA(getPrivateKeyPath(), privateKey); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), envelope.Address(privateKey))
	return nil
}
