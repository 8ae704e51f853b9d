// Package envelope provides the caller side protection for the two payloads
// a block carries. The public message is signed with the account's private
// key so anyone holding the block can recover the signing address. The
// private userdata is encrypted to the account's public key so only the
// private key can open it. The ledger itself treats both as opaque strings.
package envelope

import (
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/ecies"
)

// ErrMalformed is returned when a sealed value can't be decoded.
var ErrMalformed = errors.New("malformed envelope")

// separator splits a signed message from its signature.
const separator = "\n"

// SignMessage signs the message with the private key and returns the message
// followed by the hex encoded signature.
func SignMessage(message string, privateKey *ecdsa.PrivateKey) (string, error) {
	sig, err := crypto.Sign(stamp(message), privateKey)
	if err != nil {
		return "", fmt.Errorf("signing message: %w", err)
	}

	return message + separator + hexutil.Encode(sig), nil
}

// VerifyMessage splits a signed message and recovers the address of the
// account that signed it.
func VerifyMessage(signed string) (message string, address string, err error) {
	i := strings.LastIndex(signed, separator)
	if i < 0 {
		return "", "", fmt.Errorf("%w: missing signature", ErrMalformed)
	}
	message = signed[:i]

	sig, err := hexutil.Decode(signed[i+len(separator):])
	if err != nil || len(sig) != crypto.SignatureLength {
		return "", "", fmt.Errorf("%w: invalid signature encoding", ErrMalformed)
	}

	publicKey, err := crypto.SigToPub(stamp(message), sig)
	if err != nil {
		return "", "", fmt.Errorf("recovering signer: %w", err)
	}

	return message, crypto.PubkeyToAddress(*publicKey).Hex(), nil
}

// SealUserData encrypts the data to the public key and returns the hex
// encoded ciphertext.
func SealUserData(data string, publicKey *ecdsa.PublicKey) (string, error) {
	ct, err := ecies.Encrypt(rand.Reader, ecies.ImportECDSAPublic(publicKey), []byte(data), nil, nil)
	if err != nil {
		return "", fmt.Errorf("sealing userdata: %w", err)
	}

	return hexutil.Encode(ct), nil
}

// OpenUserData decrypts data produced by SealUserData with the private key.
func OpenUserData(sealed string, privateKey *ecdsa.PrivateKey) (string, error) {
	ct, err := hexutil.Decode(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	pt, err := ecies.ImportECDSA(privateKey).Decrypt(ct, nil, nil)
	if err != nil {
		return "", fmt.Errorf("opening userdata: %w", err)
	}

	return string(pt), nil
}

// Address returns the account address for the private key.
func Address(privateKey *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
}

// =============================================================================

// stamp returns a 32 byte hash of the message with the ledger stamp
// embedded into the final hash.
func stamp(message string) []byte {
	msgHash := crypto.Keccak256([]byte(message))

	stamp := []byte("\x19Ledger Signed Message:\n32")

	return crypto.Keccak256(stamp, msgHash)
}
