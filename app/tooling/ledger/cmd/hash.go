package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/spf13/cobra"
)

var hashNonce uint64

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the hash a nonce produces against the chain tip",
	RunE:  hashRun,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().Uint64VarP(&hashNonce, "nonce", "n", 0, "Nonce to hash.")
}

func hashRun(cmd *cobra.Command, args []string) error {
	jrn, err := openJournal(false)
	if err != nil {
		return err
	}

	var previousHash string
	if tip, err := jrn.Tip(); err == nil {
		previousHash = tip.Hash
	}

	hash := ledger.Hash(previousHash, hashNonce)
	fmt.Fprintf(cmd.OutOrStdout(), "%s solved=%t\n", hash, ledger.IsHashSolved(hash))

	return nil
}
