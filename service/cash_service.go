// Package service exposes the named cash-account operations to UI callers.
// Every method is one high-level operation: it resolves recipients, builds
// the instruction, and hands it to the submitter; screens stay thin.
package service

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/solcash/cashgo/logx"
	"github.com/solcash/cashgo/program"
	"github.com/solcash/cashgo/query"
	"github.com/solcash/cashgo/resolver"
	"github.com/solcash/cashgo/session"
	"github.com/solcash/cashgo/submitter"
	"github.com/solcash/cashgo/types"
)

// CashService orchestrates the cash-account program for one connected wallet.
type CashService struct {
	prog  *program.Program
	names resolver.NameResolver
	sub   *submitter.Submitter
	auth  *session.Authorizer
	cache *query.Cache
}

func NewCashService(prog *program.Program, names resolver.NameResolver, sub *submitter.Submitter, auth *session.Authorizer, cache *query.Cache) *CashService {
	return &CashService{prog: prog, names: names, sub: sub, auth: auth, cache: cache}
}

// InitializeAccount creates the connected user's cash account.
func (s *CashService) InitializeAccount(ctx context.Context) (types.SubmissionResult, error) {
	user, err := s.user(ctx)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	ix, err := s.prog.InitializeAccount(user)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	return s.submit(ctx, ix, s.touched(user))
}

// Deposit moves a display amount of SOL from the user's wallet into their
// cash account.
func (s *CashService) Deposit(ctx context.Context, displayAmount float64) (types.SubmissionResult, error) {
	user, err := s.user(ctx)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	lamports, err := program.ToBaseUnits(displayAmount)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	ix, err := s.prog.DepositFunds(user, lamports)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	return s.submit(ctx, ix, s.touched(user))
}

// Withdraw moves a display amount of SOL from the cash account back to the
// user's wallet.
func (s *CashService) Withdraw(ctx context.Context, displayAmount float64) (types.SubmissionResult, error) {
	user, err := s.user(ctx)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	lamports, err := program.ToBaseUnits(displayAmount)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	ix, err := s.prog.WithdrawFunds(user, lamports)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	return s.submit(ctx, ix, s.touched(user))
}

// Transfer sends a display amount of SOL to the cash account of whoever the
// handle resolves to right now. The resolved address is used for this
// transaction only.
func (s *CashService) Transfer(ctx context.Context, handle string, displayAmount float64) (types.SubmissionResult, error) {
	user, err := s.user(ctx)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	recipient, err := s.names.Resolve(ctx, handle)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	lamports, err := program.ToBaseUnits(displayAmount)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	ix, err := s.prog.TransferFunds(user, recipient, lamports)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	return s.submit(ctx, ix, append(s.touched(user), s.touched(recipient)...))
}

// AddFriend resolves the handle and appends its current owner to the user's
// friends list.
func (s *CashService) AddFriend(ctx context.Context, handle string) (types.SubmissionResult, error) {
	user, err := s.user(ctx)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	friend, err := s.names.Resolve(ctx, handle)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	ix, err := s.prog.AddFriend(user, friend)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	return s.submit(ctx, ix, s.touched(user))
}

// RequestPayment records a pending request asking the resolved sender for a
// display amount of SOL.
func (s *CashService) RequestPayment(ctx context.Context, senderHandle string, displayAmount float64) (types.SubmissionResult, error) {
	user, err := s.user(ctx)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	sender, err := s.names.Resolve(ctx, senderHandle)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	lamports, err := program.ToBaseUnits(displayAmount)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	ix, err := s.prog.NewPendingRequest(user, sender, lamports)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	return s.submit(ctx, ix, s.touched(user))
}

// AcceptRequest settles the user's pending request, moving the requested
// amount from the request's sender.
func (s *CashService) AcceptRequest(ctx context.Context) (types.SubmissionResult, error) {
	user, err := s.user(ctx)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	pendingAddr, err := s.prog.DerivePendingRequest(user)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	req, err := s.cache.PendingRequest(ctx, pendingAddr)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	ix, err := s.prog.AcceptRequest(user, req.Sender)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	return s.submit(ctx, ix, append(s.touched(user), s.touched(req.Sender)...))
}

// DeclineRequest closes the user's pending request without moving funds.
func (s *CashService) DeclineRequest(ctx context.Context) (types.SubmissionResult, error) {
	user, err := s.user(ctx)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	ix, err := s.prog.DeclineRequest(user)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	return s.submit(ctx, ix, nil)
}

// Account returns the connected user's cash-account record (friends list,
// request counter, balance snapshot), served through the query cache.
func (s *CashService) Account(ctx context.Context) (*types.CashAccountRecord, error) {
	user, err := s.user(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := s.prog.DeriveCashAccount(user)
	if err != nil {
		return nil, err
	}
	return s.cache.Get(ctx, addr)
}

// Balance returns the live lamport balance of addr.
func (s *CashService) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	return s.cache.Balance(ctx, addr)
}

// CashAccountAddress derives the connected user's cash-account address.
func (s *CashService) CashAccountAddress(ctx context.Context) (solana.PublicKey, error) {
	user, err := s.user(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return s.prog.DeriveCashAccount(user)
}

func (s *CashService) user(ctx context.Context) (solana.PublicKey, error) {
	sess, err := s.auth.GetSession(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return sess.FeePayer(), nil
}

// submit broadcasts one instruction and, once the cluster confirms, drops the
// cached records for every touched address so subsequent reads are not stale.
func (s *CashService) submit(ctx context.Context, ix solana.Instruction, touched []solana.PublicKey) (types.SubmissionResult, error) {
	res, err := s.sub.Submit(ctx, []solana.Instruction{ix})
	if res.Confirmed() {
		for _, addr := range touched {
			s.cache.Invalidate(addr)
		}
		logx.Info("SERVICE", "confirmed ", res.Signature.String())
	}
	return res, err
}

// touched lists the cache keys a mutation on behalf of user dirties.
func (s *CashService) touched(user solana.PublicKey) []solana.PublicKey {
	addr, err := s.prog.DeriveCashAccount(user)
	if err != nil {
		return nil
	}
	return []solana.PublicKey{addr}
}
