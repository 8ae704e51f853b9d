package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var minePayload payload

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Search for a nonce and append the block",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	minePayload.flags(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	message, userData, err := minePayload.prepare()
	if err != nil {
		return err
	}

	jrn, err := openJournal(false)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	blk, mined, err := jrn.Mine(ctx, message, userData)
	if err != nil {
		return err
	}

	if !mined {
		fmt.Fprintln(cmd.OutOrStdout(), "no nonce in the search range solves the block")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "mined: blk[%d] %s\n", blk.Index, blk.Hash)
	return nil
}
