package cmd

import (
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	nodeURL       string
	remoteNonce   uint64
	remotePayload payload
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Work with the chain held by a running node",
}

var remoteBlocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the blocks held by the node",
	RunE:  remoteBlocksRun,
}

var remotePushCmd = &cobra.Command{
	Use:   "push",
	Short: "Ask the node to append a block using a nonce",
	RunE:  remotePushRun,
}

var remoteMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine and append a block",
	RunE:  remoteMineRun,
}

var remoteVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Ask the node to check the integrity of its chain",
	RunE:  remoteVerifyRun,
}

func init() {
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:8080", "Url of the node.")

	remoteCmd.AddCommand(remoteBlocksCmd)
	remoteCmd.AddCommand(remotePushCmd)
	remoteCmd.AddCommand(remoteMineCmd)
	remoteCmd.AddCommand(remoteVerifyCmd)

	remotePushCmd.Flags().Uint64VarP(&remoteNonce, "nonce", "n", 0, "Nonce that solves the block.")
	remotePayload.flags(remotePushCmd)
	remotePayload.flags(remoteMineCmd)
}

// =============================================================================

type remoteBlocks struct {
	Count  int            `json:"count"`
	Blocks []ledger.Block `json:"blocks"`
}

type remoteAppend struct {
	Accepted bool          `json:"accepted"`
	Mined    bool          `json:"mined"`
	Block    *ledger.Block `json:"block"`
}

type remoteVerify struct {
	Valid  bool    `json:"valid"`
	Blocks int     `json:"blocks"`
	Index  *uint64 `json:"index"`
	Reason string  `json:"reason"`
}

func client() *resty.Client {
	return resty.New().
		SetBaseURL(nodeURL).
		SetHeader("Accept", "application/json").
		SetTimeout(time.Minute)
}

func send(r *resty.Request, method string, path string) error {
	var re errs.Response
	resp, err := r.SetError(&re).Execute(method, path)
	if err != nil {
		return fmt.Errorf("calling node: %w", err)
	}

	if resp.IsError() {
		if len(re.Fields) > 0 {
			return fmt.Errorf("node: %d: %s: %v", resp.StatusCode(), re.Error, re.Fields)
		}
		return fmt.Errorf("node: %d: %s", resp.StatusCode(), re.Error)
	}

	return nil
}

// =============================================================================

func remoteBlocksRun(cmd *cobra.Command, args []string) error {
	var rb remoteBlocks
	if err := send(client().R().SetResult(&rb), resty.MethodGet, "/v1/blocks/list"); err != nil {
		return err
	}

	table, err := blockTable(rb.Blocks)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), table)
	return nil
}

func remotePushRun(cmd *cobra.Command, args []string) error {
	message, userData, err := remotePayload.prepare()
	if err != nil {
		return err
	}

	body := struct {
		Message  string `json:"message"`
		UserData string `json:"userdata"`
		Nonce    uint64 `json:"nonce"`
	}{
		Message:  message,
		UserData: userData,
		Nonce:    remoteNonce,
	}

	var ra remoteAppend
	if err := send(client().R().SetBody(body).SetResult(&ra), resty.MethodPost, "/v1/blocks/push"); err != nil {
		return err
	}

	if !ra.Accepted || ra.Block == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "rejected: nonce %d\n", remoteNonce)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "accepted: blk[%d] %s\n", ra.Block.Index, ra.Block.Hash)
	return nil
}

func remoteMineRun(cmd *cobra.Command, args []string) error {
	message, userData, err := remotePayload.prepare()
	if err != nil {
		return err
	}

	body := struct {
		Message  string `json:"message"`
		UserData string `json:"userdata"`
	}{
		Message:  message,
		UserData: userData,
	}

	var ra remoteAppend
	if err := send(client().R().SetBody(body).SetResult(&ra), resty.MethodPost, "/v1/blocks/mine"); err != nil {
		return err
	}

	if !ra.Mined || ra.Block == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no nonce in the search range solves the block")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "mined: blk[%d] %s\n", ra.Block.Index, ra.Block.Hash)
	return nil
}

func remoteVerifyRun(cmd *cobra.Command, args []string) error {
	var rv remoteVerify
	if err := send(client().R().SetResult(&rv), resty.MethodGet, "/v1/chain/verify"); err != nil {
		return err
	}

	if !rv.Valid {
		var index uint64
		if rv.Index != nil {
			index = *rv.Index
		}
		return fmt.Errorf("node chain invalid at blk[%d]: %s", index, rv.Reason)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "valid: %d blocks\n", rv.Blocks)
	return nil
}
