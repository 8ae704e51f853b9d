package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save-as <destination>",
	Short: "Write a copy of the chain next to the chain file",
	Args:  cobra.ExactArgs(1),
	RunE:  saveRun,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func saveRun(cmd *cobra.Command, args []string) error {
	jrn, err := openJournal(false)
	if err != nil {
		return err
	}

	if err := jrn.SaveAs(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "saved: %d blocks to %s\n", jrn.Len(), args[0])
	return nil
}
