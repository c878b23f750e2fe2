package client

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// TxStatus is the cluster-reported status of one broadcast signature. A nil
// *TxStatus from SignatureStatus means the cluster does not know the
// signature yet.
type TxStatus struct {
	Slot          uint64
	Confirmations *uint64
	// Err is the raw chain error payload, nil when execution succeeded.
	Err interface{}
	// ConfirmationStatus is "processed", "confirmed" or "finalized".
	ConfirmationStatus string
}

// AccountInfo is the subset of on-chain account state the client reads.
type AccountInfo struct {
	Lamports uint64
	Owner    solana.PublicKey
	Data     []byte
}

// ChainRPC is the boundary to the cluster. The production implementation is
// SolanaClient; tests substitute fakes.
type ChainRPC interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendRawTransaction(ctx context.Context, raw []byte, skipPreflight bool) (solana.Signature, error)
	SignatureStatus(ctx context.Context, sig solana.Signature) (*TxStatus, error)
	AccountInfo(ctx context.Context, addr solana.PublicKey) (*AccountInfo, error)
	Balance(ctx context.Context, addr solana.PublicKey) (uint64, error)
}
