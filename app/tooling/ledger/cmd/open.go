package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/ledger/foundation/envelope"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/spf13/cobra"
)

var openIndex uint64

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Recover the signer and private data of a block",
	RunE:  openRun,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().Uint64VarP(&openIndex, "index", "i", 0, "Index of the block to open.")
}

func openRun(cmd *cobra.Command, args []string) error {
	jrn, err := openJournal(false)
	if err != nil {
		return err
	}

	blk, err := jrn.Block(openIndex)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "block:   %d\n", blk.Index)

	message, nonce, mined := ledger.SplitMinedMessage(blk.Message)
	if mined {
		fmt.Fprintf(out, "nonce:   %d\n", nonce)
	}

	// A message that doesn't carry a well formed signature was stored in the
	// clear, even when it spans several lines.
	if strings.Contains(message, "\n") {
		text, address, err := envelope.VerifyMessage(message)
		switch {
		case errors.Is(err, envelope.ErrMalformed):

		case err != nil:
			return err

		default:
			message = text
			fmt.Fprintf(out, "signer:  %s\n", address)
		}
	}
	fmt.Fprintf(out, "message: %s\n", message)

	// Sealed userdata is hex encoded. Anything else was stored in the clear.
	if !strings.HasPrefix(blk.UserData, "0x") {
		fmt.Fprintf(out, "data:    %s\n", blk.UserData)
		return nil
	}

	privateKey, err := loadPrivateKey()
	if err != nil {
		return err
	}

	userData, err := envelope.OpenUserData(blk.UserData, privateKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "data:    %s\n", userData)

	return nil
}
