// Package client wraps the Solana JSON-RPC API behind the narrow ChainRPC
// surface the rest of the module consumes.
package client

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	cerrors "github.com/solcash/cashgo/errors"
)

type Config struct {
	Endpoint   string
	Commitment string
}

// SolanaClient implements ChainRPC against a Solana JSON-RPC node.
type SolanaClient struct {
	cfg        Config
	rpc        *rpc.Client
	commitment rpc.CommitmentType
}

func NewClient(cfg Config) (*SolanaClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("client: endpoint required")
	}
	return &SolanaClient{
		cfg:        cfg,
		rpc:        rpc.New(cfg.Endpoint),
		commitment: parseCommitment(cfg.Commitment),
	}, nil
}

func parseCommitment(s string) rpc.CommitmentType {
	switch s {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}

// LatestBlockhash fetches the checkpoint a transaction envelope is valid
// against for the network-defined window.
func (c *SolanaClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	res, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, err
	}
	return res.Value.Blockhash, nil
}

// SendRawTransaction broadcasts a signed, serialized envelope.
func (c *SolanaClient) SendRawTransaction(ctx context.Context, raw []byte, skipPreflight bool) (solana.Signature, error) {
	return c.rpc.SendRawTransactionWithOpts(ctx, raw, rpc.TransactionOpts{
		SkipPreflight:       skipPreflight,
		PreflightCommitment: c.commitment,
	})
}

// SignatureStatus looks up the confirmation status of sig. It returns
// (nil, nil) while the cluster has not seen the signature.
func (c *SolanaClient) SignatureStatus(ctx context.Context, sig solana.Signature) (*TxStatus, error) {
	res, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return nil, err
	}
	if len(res.Value) == 0 || res.Value[0] == nil {
		return nil, nil
	}
	st := res.Value[0]
	return &TxStatus{
		Slot:               st.Slot,
		Confirmations:      st.Confirmations,
		Err:                st.Err,
		ConfirmationStatus: string(st.ConfirmationStatus),
	}, nil
}

// AccountInfo fetches raw account state for addr.
func (c *SolanaClient) AccountInfo(ctx context.Context, addr solana.PublicKey) (*AccountInfo, error) {
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, cerrors.ErrAccountNotFound
		}
		return nil, err
	}
	if res.Value == nil {
		return nil, cerrors.ErrAccountNotFound
	}
	info := &AccountInfo{
		Lamports: res.Value.Lamports,
		Owner:    res.Value.Owner,
	}
	if res.Value.Data != nil {
		info.Data = res.Value.Data.GetBinary()
	}
	return info, nil
}

// Balance returns the lamport balance of addr.
func (c *SolanaClient) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	res, err := c.rpc.GetBalance(ctx, addr, c.commitment)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}
