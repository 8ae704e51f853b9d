package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the blocks in the chain",
	RunE:  showRun,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func showRun(cmd *cobra.Command, args []string) error {
	jrn, err := openJournal(false)
	if err != nil {
		return err
	}

	table, err := blockTable(jrn.Blocks())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), table)
	return nil
}

func blockTable(blocks []ledger.Block) (string, error) {
	data := pterm.TableData{
		{"Index", "Timestamp", "Previous", "Hash", "Message"},
	}

	for _, blk := range blocks {
		data = append(data, []string{
			strconv.FormatUint(blk.Index, 10),
			time.UnixMilli(blk.Timestamp).UTC().Format(time.RFC3339),
			short(blk.PreviousHash),
			short(blk.Hash),
			blk.Message,
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func short(hash string) string {
	if len(hash) <= 12 {
		return hash
	}

	return hash[:12]
}
