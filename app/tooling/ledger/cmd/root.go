// Package cmd contains the ledger command line tool.
package cmd

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/ledger/business/core/journal"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/storage/disk"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	chainFile   string
	accountName string
	accountPath string
	verbose     bool
)

const (
	keyExtension = ".ecdsa"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&chainFile, "file", "f", "zblock/ledger.json", "Path to the chain file.")
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private.ecdsa", "Name of the private key.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log ledger events.")
}

var rootCmd = &cobra.Command{
	Use:          "ledger",
	Short:        "Work with a hash chained ledger",
	SilenceUsage: true,
}

// Execute runs the command selected by the command line arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================

// openJournal opens the chain file named by the file flag. The directory
// holding the file is the storage root.
func openJournal(verify bool) (*journal.Journal, error) {
	strg, err := disk.New(filepath.Dir(chainFile))
	if err != nil {
		return nil, err
	}

	ev, err := eventHandler()
	if err != nil {
		return nil, err
	}

	return journal.Open(journal.Config{
		Storage:      strg,
		File:         filepath.Base(chainFile),
		VerifyOnOpen: verify,
		EvHandler:    ev,
	})
}

func eventHandler() (ledger.EventHandler, error) {
	if !verbose {
		return nil, nil
	}

	log, err := logger.New("LEDGER-CLI")
	if err != nil {
		return nil, fmt.Errorf("constructing logger: %w", err)
	}

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	return ev, nil
}

func getPrivateKeyPath() string {
	name := accountName
	if !strings.HasSuffix(name, keyExtension) {
		name += keyExtension
	}

	return filepath.Join(accountPath, name)
}

func loadPrivateKey() (*ecdsa.PrivateKey, error) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", getPrivateKeyPath(), err)
	}

	return privateKey, nil
}
