package cmd

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/envelope"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/spf13/cobra"
)

// payload holds the block content flags shared by push and mine.
type payload struct {
	message  string
	userData string
	sign     bool
	seal     bool
}

func (p *payload) flags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.message, "message", "m", "", "Public message for the block.")
	cmd.Flags().StringVarP(&p.userData, "userdata", "d", "", "Private data for the block.")
	cmd.Flags().BoolVar(&p.sign, "sign", false, "Sign the message with the account key.")
	cmd.Flags().BoolVar(&p.seal, "seal", false, "Encrypt the userdata to the account key.")
}

// prepare applies the account key to the message and userdata as requested.
func (p *payload) prepare() (message string, userData string, err error) {
	message, userData = p.message, p.userData
	if !p.sign && !p.seal {
		return message, userData, nil
	}

	var privateKey *ecdsa.PrivateKey
	if privateKey, err = loadPrivateKey(); err != nil {
		return "", "", err
	}

	if p.sign {
		if message, err = envelope.SignMessage(message, privateKey); err != nil {
			return "", "", err
		}
	}

	if p.seal {
		if userData, err = envelope.SealUserData(userData, &privateKey.PublicKey); err != nil {
			return "", "", err
		}
	}

	return message, userData, nil
}

// =============================================================================

var (
	pushNonce   uint64
	pushPayload payload
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Append a block using a caller supplied nonce",
	RunE:  pushRun,
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().Uint64VarP(&pushNonce, "nonce", "n", 0, "Nonce that solves the block.")
	pushPayload.flags(pushCmd)
}

func pushRun(cmd *cobra.Command, args []string) error {
	message, userData, err := pushPayload.prepare()
	if err != nil {
		return err
	}

	jrn, err := openJournal(false)
	if err != nil {
		return err
	}

	blk, accepted, err := jrn.Push(message, userData, pushNonce)
	if err != nil {
		return err
	}

	if !accepted {
		fmt.Fprintf(cmd.OutOrStdout(), "rejected: nonce %d hashes to %s\n", pushNonce, ledger.Hash(tipHash(jrn.Blocks()), pushNonce))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "accepted: blk[%d] %s\n", blk.Index, blk.Hash)
	return nil
}

func tipHash(blocks []ledger.Block) string {
	if len(blocks) == 0 {
		return ""
	}

	return blocks[len(blocks)-1].Hash
}
