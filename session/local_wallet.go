package session

import (
	"context"

	"github.com/gagliardetto/solana-go"

	cerrors "github.com/solcash/cashgo/errors"
)

// LocalWallet signs with an in-process keypair. It backs the CLI and test
// environments where no external wallet provider is reachable; the keypair
// never leaves the process.
type LocalWallet struct {
	key solana.PrivateKey
}

func NewLocalWallet(key solana.PrivateKey) *LocalWallet {
	return &LocalWallet{key: key}
}

// LoadLocalWallet reads a keypair in the standard solana-keygen JSON format.
func LoadLocalWallet(path string) (*LocalWallet, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, err
	}
	return &LocalWallet{key: key}, nil
}

func (w *LocalWallet) Authorize(ctx context.Context) (*AuthResult, error) {
	if w.key == nil {
		return nil, cerrors.ErrNoWalletConnected
	}
	return &AuthResult{PublicKey: w.key.PublicKey(), AuthToken: "local"}, nil
}

func (w *LocalWallet) SignTransactions(ctx context.Context, authToken string, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	owner := w.key.PublicKey()
	for _, tx := range txs {
		_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
			if key.Equals(owner) {
				return &w.key
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return txs, nil
}

func (w *LocalWallet) Deauthorize(ctx context.Context, authToken string) error {
	return nil
}
