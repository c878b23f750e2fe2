// Package program builds unsigned instructions for the on-chain cash-account
// program and derives the deterministic per-user account addresses both the
// read and write paths share.
package program

import (
	"crypto/sha256"

	"github.com/gagliardetto/solana-go"

	cerrors "github.com/solcash/cashgo/errors"
)

const (
	cashAccountSeed    = "cash-account"
	pendingRequestSeed = "pending-request"
)

// Program wraps the deployed program identity. All methods are pure; nothing
// here performs I/O.
type Program struct {
	id solana.PublicKey
}

func New(id solana.PublicKey) *Program {
	return &Program{id: id}
}

// ID returns the program identity instructions are built against.
func (p *Program) ID() solana.PublicKey {
	return p.id
}

// ParseIdentity parses a base58 wallet identity.
func ParseIdentity(s string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil || pk.IsZero() {
		return solana.PublicKey{}, cerrors.ErrInvalidIdentity
	}
	return pk, nil
}

// DeriveCashAccount computes the cash-account address for a user. The mapping
// is a pure function of {user, program}: the same inputs always yield the
// same address, so instruction building and account fetching observe one
// address.
func (p *Program) DeriveCashAccount(user solana.PublicKey) (solana.PublicKey, error) {
	if user.IsZero() {
		return solana.PublicKey{}, cerrors.ErrInvalidIdentity
	}
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(cashAccountSeed), user.Bytes()},
		p.id,
	)
	if err != nil {
		return solana.PublicKey{}, cerrors.ErrInvalidIdentity
	}
	return addr, nil
}

// DerivePendingRequest computes the pending-request address owned by a user.
func (p *Program) DerivePendingRequest(user solana.PublicKey) (solana.PublicKey, error) {
	if user.IsZero() {
		return solana.PublicKey{}, cerrors.ErrInvalidIdentity
	}
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(pendingRequestSeed), user.Bytes()},
		p.id,
	)
	if err != nil {
		return solana.PublicKey{}, cerrors.ErrInvalidIdentity
	}
	return addr, nil
}

// anchorDiscriminator is the 8-byte method selector Anchor derives from the
// instruction name.
func anchorDiscriminator(method string) []byte {
	h := sha256.Sum256([]byte("global:" + method))
	return h[:8]
}

// accountDiscriminator is the 8-byte tag Anchor stores ahead of account data.
func accountDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("account:" + name))
	return h[:8]
}
