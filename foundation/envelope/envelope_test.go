package envelope_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/envelope"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	ownerECDSA = "8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0"
	otherECDSA = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
)

func Test_Message(t *testing.T) {
	owner, err := crypto.HexToECDSA(ownerECDSA)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the owner key: %v", failed, err)
	}

	t.Log("Given the need to sign the public message.")
	{
		signed, err := envelope.SignMessage("hello\nworld", owner)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to sign.", success)

		msg, address, err := envelope.VerifyMessage(signed)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to verify: %v", failed, err)
		}
		if msg != "hello\nworld" {
			t.Fatalf("\t%s\tShould recover the message, got %q.", failed, msg)
		}
		if address != envelope.Address(owner) {
			t.Fatalf("\t%s\tShould recover the owner address, got %s.", failed, address)
		}
		t.Logf("\t%s\tShould recover the message and the owner address.", success)

		tampered := "hallo" + signed[len("hello"):]
		_, address, err = envelope.VerifyMessage(tampered)
		if err == nil && address == envelope.Address(owner) {
			t.Fatalf("\t%s\tShould not attribute a tampered message to the owner.", failed)
		}
		t.Logf("\t%s\tShould not attribute a tampered message to the owner.", success)

		if _, _, err := envelope.VerifyMessage("no signature here"); !errors.Is(err, envelope.ErrMalformed) {
			t.Fatalf("\t%s\tShould reject an unsigned message, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould reject an unsigned message.", success)
	}
}

func Test_UserData(t *testing.T) {
	owner, err := crypto.HexToECDSA(ownerECDSA)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the owner key: %v", failed, err)
	}

	other, err := crypto.HexToECDSA(otherECDSA)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the other key: %v", failed, err)
	}

	t.Log("Given the need to seal the private userdata.")
	{
		sealed, err := envelope.SealUserData("secret", &owner.PublicKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to seal: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to seal.", success)

		data, err := envelope.OpenUserData(sealed, owner)
		if err != nil || data != "secret" {
			t.Fatalf("\t%s\tShould open with the owner key, got %q: %v", failed, data, err)
		}
		t.Logf("\t%s\tShould open with the owner key.", success)

		if _, err := envelope.OpenUserData(sealed, other); err == nil {
			t.Fatalf("\t%s\tShould not open with another key.", failed)
		}
		t.Logf("\t%s\tShould not open with another key.", success)

		if _, err := envelope.OpenUserData("secret", owner); !errors.Is(err, envelope.ErrMalformed) {
			t.Fatalf("\t%s\tShould reject plain text, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould reject plain text.", success)
	}
}
