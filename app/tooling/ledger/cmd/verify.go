package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the integrity of the chain file",
	RunE:  verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, args []string) error {
	jrn, err := openJournal(false)
	if err != nil {
		return err
	}

	if err := jrn.Verify(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "valid: %d blocks\n", jrn.Len())
	return nil
}
