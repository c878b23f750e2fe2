// Package session owns the wallet authorization lifecycle. One Authorizer
// instance is injected wherever signing is needed so tests can substitute a
// fake wallet provider.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/singleflight"

	cerrors "github.com/solcash/cashgo/errors"
	"github.com/solcash/cashgo/logx"
)

// State is the authorization lifecycle position:
// Disconnected -> Authorizing -> Authorized -> (Disconnected | Revoked).
type State int32

const (
	StateDisconnected State = iota
	StateAuthorizing
	StateAuthorized
	StateRevoked
)

func (s State) String() string {
	switch s {
	case StateAuthorizing:
		return "authorizing"
	case StateAuthorized:
		return "authorized"
	case StateRevoked:
		return "revoked"
	default:
		return "disconnected"
	}
}

// AuthResult is what the wallet-authorization provider hands back on a
// successful authorize call.
type AuthResult struct {
	PublicKey solana.PublicKey
	AuthToken string
}

// Wallet is the wallet-authorization provider boundary. Implementations fail
// cleanly with an error on user denial or disconnection.
type Wallet interface {
	Authorize(ctx context.Context) (*AuthResult, error)
	SignTransactions(ctx context.Context, authToken string, txs []*solana.Transaction) ([]*solana.Transaction, error)
	Deauthorize(ctx context.Context, authToken string) error
}

// Session is one ephemeral signing authorization. It stays valid until the
// wallet disconnects or the authorizer is explicitly reset.
type Session struct {
	feePayer  solana.PublicKey
	authToken string
}

// FeePayer is the wallet account that pays fees for envelopes signed under
// this session. It doubles as the user identity for address derivation.
func (s *Session) FeePayer() solana.PublicKey {
	return s.feePayer
}

// Authorizer mediates access to the wallet session. Authorization requests
// are single-flight: concurrent callers during Authorizing share one
// underlying wallet prompt. Signing requests are deliberately not serialized;
// the wallet is the arbiter of prompt ordering.
type Authorizer struct {
	wallet Wallet

	mu      sync.RWMutex
	state   State
	current *Session

	sf singleflight.Group
}

func NewAuthorizer(wallet Wallet) *Authorizer {
	return &Authorizer{wallet: wallet}
}

// State reports the current lifecycle position.
func (a *Authorizer) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// GetSession returns the active session, authorizing with the wallet first if
// none is active. The call blocks until the wallet answers or ctx is done.
func (a *Authorizer) GetSession(ctx context.Context) (*Session, error) {
	if a.wallet == nil {
		return nil, cerrors.ErrNoWalletConnected
	}

	a.mu.RLock()
	if a.state == StateAuthorized && a.current != nil {
		sess := a.current
		a.mu.RUnlock()
		return sess, nil
	}
	a.mu.RUnlock()

	ch := a.sf.DoChan("authorize", func() (interface{}, error) {
		return a.authorize(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Session), nil
	}
}

func (a *Authorizer) authorize(ctx context.Context) (*Session, error) {
	a.mu.Lock()
	a.state = StateAuthorizing
	a.mu.Unlock()

	result, err := a.wallet.Authorize(ctx)
	if err != nil {
		a.mu.Lock()
		a.state = StateDisconnected
		a.current = nil
		a.mu.Unlock()

		var ce *cerrors.ClientError
		if errors.As(err, &ce) {
			return nil, err
		}
		// An abandoned prompt is the caller backing out, not a user denial.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logx.Warn("SESSION", "wallet authorization failed: ", err)
		return nil, cerrors.ErrAuthorizationDenied
	}

	sess := &Session{feePayer: result.PublicKey, authToken: result.AuthToken}
	a.mu.Lock()
	a.state = StateAuthorized
	a.current = sess
	a.mu.Unlock()
	return sess, nil
}

// SignTransaction asks the wallet to sign tx under sess. The session must
// still be the active one: signing against a stale or torn-down session fails
// with SessionLost instead of retrying silently.
func (a *Authorizer) SignTransaction(ctx context.Context, sess *Session, tx *solana.Transaction) (*solana.Transaction, error) {
	a.mu.RLock()
	live := a.state == StateAuthorized && a.current == sess
	a.mu.RUnlock()
	if !live {
		return nil, cerrors.ErrSessionLost
	}

	signed, err := a.wallet.SignTransactions(ctx, sess.authToken, []*solana.Transaction{tx})
	if err != nil {
		var ce *cerrors.ClientError
		if errors.As(err, &ce) {
			return nil, err
		}
		// Unclassified wallet failures mean the connection under the session
		// is gone; the session cannot be reused.
		a.mu.Lock()
		if a.current == sess {
			a.state = StateDisconnected
			a.current = nil
		}
		a.mu.Unlock()
		logx.Warn("SESSION", "signing failed, session torn down: ", err)
		return nil, cerrors.ErrSessionLost
	}
	if len(signed) != 1 {
		return nil, cerrors.ErrSessionLost
	}
	return signed[0], nil
}

// Disconnect ends the current session and best-effort deauthorizes the
// wallet-side token.
func (a *Authorizer) Disconnect(ctx context.Context) {
	a.mu.Lock()
	sess := a.current
	a.state = StateDisconnected
	a.current = nil
	a.mu.Unlock()

	if sess != nil && a.wallet != nil {
		if err := a.wallet.Deauthorize(ctx, sess.authToken); err != nil {
			logx.Warn("SESSION", "deauthorize failed: ", err)
		}
	}
}

// Revoke marks the session revoked by the wallet side. The next GetSession
// starts a fresh Authorizing cycle.
func (a *Authorizer) Revoke() {
	a.mu.Lock()
	a.state = StateRevoked
	a.current = nil
	a.mu.Unlock()
}
