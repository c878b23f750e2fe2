// Package submitter consolidates the authorize -> checkpoint -> assemble ->
// sign -> broadcast -> confirm sequence behind one call. Screens and services
// supply instructions; everything else happens here.
package submitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	"github.com/solcash/cashgo/client"
	"github.com/solcash/cashgo/config"
	cerrors "github.com/solcash/cashgo/errors"
	"github.com/solcash/cashgo/logx"
	"github.com/solcash/cashgo/session"
	"github.com/solcash/cashgo/types"
)

type Submitter struct {
	rpc  client.ChainRPC
	auth *session.Authorizer
	cfg  config.SubmitConfig
}

func New(rpc client.ChainRPC, auth *session.Authorizer, cfg config.SubmitConfig) *Submitter {
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = config.DefaultConfirmTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = config.DefaultPollInterval
	}
	return &Submitter{rpc: rpc, auth: auth, cfg: cfg}
}

// Submit assembles, signs, broadcasts and confirms one transaction built from
// instrs.
//
// The session and the checkpoint are fetched concurrently but both must
// resolve before assembly (a join, not a race); if either fails, the call
// aborts with that component's error and nothing is broadcast. The broadcast
// skips pre-flight simulation when configured to, trading safety for latency:
// a malformed transaction then surfaces as a confirmation failure. Broadcast
// is never retried here; duplicating a financial transfer without idempotency
// tracking is the caller's decision to make.
func (s *Submitter) Submit(ctx context.Context, instrs []solana.Instruction) (types.SubmissionResult, error) {
	if len(instrs) == 0 {
		return types.SubmissionResult{}, fmt.Errorf("submit: no instructions")
	}

	var (
		sess      *session.Session
		blockhash solana.Hash
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sess, err = s.auth.GetSession(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		blockhash, err = s.rpc.LatestBlockhash(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return types.SubmissionResult{}, err
	}

	tx, err := solana.NewTransaction(instrs, blockhash, solana.TransactionPayer(sess.FeePayer()))
	if err != nil {
		return types.SubmissionResult{}, fmt.Errorf("submit: assemble envelope: %w", err)
	}

	signed, err := s.auth.SignTransaction(ctx, sess, tx)
	if err != nil {
		return types.SubmissionResult{}, err
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return types.SubmissionResult{}, fmt.Errorf("submit: serialize envelope: %w", err)
	}

	sig, err := s.rpc.SendRawTransaction(ctx, raw, s.cfg.SkipPreflight)
	if err != nil {
		return types.SubmissionResult{}, fmt.Errorf("submit: broadcast: %w", err)
	}
	logx.Info("SUBMIT", "broadcast ", sig.String())

	return s.awaitConfirmation(ctx, sig)
}

// awaitConfirmation polls the signature status until the cluster confirms,
// reports an execution error, or the wait window closes. Closing the window
// yields the timed-out outcome: the transaction may still land on chain.
func (s *Submitter) awaitConfirmation(ctx context.Context, sig solana.Signature) (types.SubmissionResult, error) {
	wctx, cancel := context.WithTimeout(ctx, s.cfg.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		res, done, err := s.checkStatus(wctx, sig)
		if done || err != nil {
			return res, err
		}
		select {
		case <-wctx.Done():
			logx.Warn("SUBMIT", "confirmation wait expired for ", sig.String())
			return types.SubmissionResult{Signature: sig, Outcome: types.OutcomeTimedOut}, nil
		case <-ticker.C:
		}
	}
}

func (s *Submitter) checkStatus(ctx context.Context, sig solana.Signature) (types.SubmissionResult, bool, error) {
	st, err := s.rpc.SignatureStatus(ctx, sig)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return types.SubmissionResult{Signature: sig, Outcome: types.OutcomeTimedOut}, true, nil
		}
		return types.SubmissionResult{Signature: sig}, false, fmt.Errorf("submit: confirm poll: %w", err)
	}
	if st == nil {
		// Cluster has not seen the signature yet.
		return types.SubmissionResult{}, false, nil
	}
	if st.Err != nil {
		reason := stringifyChainErr(st.Err)
		logx.Error("SUBMIT", "rejected ", sig.String(), ": ", reason)
		return types.SubmissionResult{
			Signature: sig,
			Outcome:   types.OutcomeFailed,
			Reason:    reason,
			Slot:      st.Slot,
		}, true, cerrors.Rejected(reason)
	}
	if confirmed(st) {
		return types.SubmissionResult{
			Signature: sig,
			Outcome:   types.OutcomeConfirmed,
			Slot:      st.Slot,
		}, true, nil
	}
	return types.SubmissionResult{}, false, nil
}

func confirmed(st *client.TxStatus) bool {
	switch st.ConfirmationStatus {
	case "confirmed", "finalized":
		return true
	}
	// A rooted signature has no confirmation count anymore.
	return st.Confirmations == nil
}

// stringifyChainErr renders the raw chain error payload for diagnostics.
func stringifyChainErr(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
