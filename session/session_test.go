package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	cerrors "github.com/solcash/cashgo/errors"
)

// ----------------- Helpers / Mocks -----------------

type fakeWallet struct {
	mu sync.Mutex

	authorizeCalls   int32
	signCalls        int32
	deauthorizeCalls int32

	authorizeDelay time.Duration
	authorizeErr   error
	signErr        error

	feePayer solana.PublicKey
}

func newFakeWallet() *fakeWallet {
	var raw [32]byte
	raw[0] = 7
	return &fakeWallet{feePayer: solana.PublicKeyFromBytes(raw[:])}
}

func (w *fakeWallet) Authorize(ctx context.Context) (*AuthResult, error) {
	atomic.AddInt32(&w.authorizeCalls, 1)
	if w.authorizeDelay > 0 {
		select {
		case <-time.After(w.authorizeDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.authorizeErr != nil {
		return nil, w.authorizeErr
	}
	return &AuthResult{PublicKey: w.feePayer, AuthToken: "token-1"}, nil
}

func (w *fakeWallet) SignTransactions(ctx context.Context, authToken string, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	atomic.AddInt32(&w.signCalls, 1)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.signErr != nil {
		return nil, w.signErr
	}
	if authToken != "token-1" {
		return nil, fmt.Errorf("unknown auth token %q", authToken)
	}
	return txs, nil
}

func (w *fakeWallet) Deauthorize(ctx context.Context, authToken string) error {
	atomic.AddInt32(&w.deauthorizeCalls, 1)
	return nil
}

func dummyTx(t *testing.T, feePayer solana.PublicKey) *solana.Transaction {
	t.Helper()
	var progRaw [32]byte
	progRaw[0] = 9
	ix := solana.NewInstruction(
		solana.PublicKeyFromBytes(progRaw[:]),
		[]*solana.AccountMeta{{PublicKey: feePayer, IsWritable: true, IsSigner: true}},
		[]byte{1},
	)
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{}, solana.TransactionPayer(feePayer))
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}
	return tx
}

// ----------------- Tests -----------------

func TestGetSession_NoWallet(t *testing.T) {
	a := NewAuthorizer(nil)
	if _, err := a.GetSession(context.Background()); !errors.Is(err, cerrors.ErrNoWalletConnected) {
		t.Fatalf("expected ErrNoWalletConnected, got %v", err)
	}
}

func TestGetSession_AuthorizesOnceAndReuses(t *testing.T) {
	w := newFakeWallet()
	a := NewAuthorizer(w)

	first, err := a.GetSession(context.Background())
	if err != nil {
		t.Fatalf("first GetSession: %v", err)
	}
	if first.FeePayer() != w.feePayer {
		t.Fatalf("fee payer mismatch: %s", first.FeePayer())
	}
	if a.State() != StateAuthorized {
		t.Fatalf("expected authorized, got %s", a.State())
	}

	second, err := a.GetSession(context.Background())
	if err != nil {
		t.Fatalf("second GetSession: %v", err)
	}
	if first != second {
		t.Fatal("expected the active session to be reused")
	}
	if n := atomic.LoadInt32(&w.authorizeCalls); n != 1 {
		t.Fatalf("expected 1 authorize call, got %d", n)
	}
}

func TestGetSession_ConcurrentCallersShareOnePrompt(t *testing.T) {
	w := newFakeWallet()
	w.authorizeDelay = 50 * time.Millisecond
	a := NewAuthorizer(w)

	const callers = 8
	sessions := make([]*Session, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i], errs[i] = a.GetSession(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if sessions[i] != sessions[0] {
			t.Fatalf("caller %d got a different session", i)
		}
	}
	if n := atomic.LoadInt32(&w.authorizeCalls); n != 1 {
		t.Fatalf("expected exactly 1 wallet prompt, got %d", n)
	}
}

func TestGetSession_DenialMapsToAuthorizationDenied(t *testing.T) {
	w := newFakeWallet()
	w.authorizeErr = fmt.Errorf("user dismissed the prompt")
	a := NewAuthorizer(w)

	if _, err := a.GetSession(context.Background()); !errors.Is(err, cerrors.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}
	if a.State() != StateDisconnected {
		t.Fatalf("expected disconnected after denial, got %s", a.State())
	}

	// A later attempt starts a fresh cycle and can succeed.
	w.mu.Lock()
	w.authorizeErr = nil
	w.mu.Unlock()
	if _, err := a.GetSession(context.Background()); err != nil {
		t.Fatalf("retry after denial: %v", err)
	}
}

func TestGetSession_ContextErrorIsNotADenial(t *testing.T) {
	w := newFakeWallet()
	w.authorizeErr = context.Canceled
	a := NewAuthorizer(w)

	_, err := a.GetSession(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the context error to pass through, got %v", err)
	}
	if errors.Is(err, cerrors.ErrAuthorizationDenied) {
		t.Fatal("an abandoned prompt must not be reported as a user denial")
	}

	w.mu.Lock()
	w.authorizeErr = fmt.Errorf("wrapped: %w", context.DeadlineExceeded)
	w.mu.Unlock()
	_, err = a.GetSession(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected the deadline error to pass through, got %v", err)
	}
}

func TestSignTransaction_StaleSessionFails(t *testing.T) {
	w := newFakeWallet()
	a := NewAuthorizer(w)

	sess, err := a.GetSession(context.Background())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	a.Revoke()

	_, err = a.SignTransaction(context.Background(), sess, dummyTx(t, w.feePayer))
	if !errors.Is(err, cerrors.ErrSessionLost) {
		t.Fatalf("expected ErrSessionLost for revoked session, got %v", err)
	}
	if n := atomic.LoadInt32(&w.signCalls); n != 0 {
		t.Fatalf("wallet must not be asked to sign under a dead session, got %d calls", n)
	}
}

func TestSignTransaction_WalletFailureTearsDownSession(t *testing.T) {
	w := newFakeWallet()
	a := NewAuthorizer(w)

	sess, err := a.GetSession(context.Background())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}

	w.mu.Lock()
	w.signErr = fmt.Errorf("transport closed")
	w.mu.Unlock()

	_, err = a.SignTransaction(context.Background(), sess, dummyTx(t, w.feePayer))
	if !errors.Is(err, cerrors.ErrSessionLost) {
		t.Fatalf("expected ErrSessionLost, got %v", err)
	}
	if a.State() != StateDisconnected {
		t.Fatalf("expected teardown to disconnect, got %s", a.State())
	}
}

func TestSignTransaction_PassesThroughClassifiedErrors(t *testing.T) {
	w := newFakeWallet()
	a := NewAuthorizer(w)

	sess, err := a.GetSession(context.Background())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}

	w.mu.Lock()
	w.signErr = cerrors.ErrAuthorizationDenied
	w.mu.Unlock()

	_, err = a.SignTransaction(context.Background(), sess, dummyTx(t, w.feePayer))
	if !errors.Is(err, cerrors.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied to pass through, got %v", err)
	}
	if a.State() != StateAuthorized {
		t.Fatalf("classified denial must not tear down the session, got %s", a.State())
	}
}

func TestDisconnect_DeauthorizesToken(t *testing.T) {
	w := newFakeWallet()
	a := NewAuthorizer(w)

	if _, err := a.GetSession(context.Background()); err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	a.Disconnect(context.Background())

	if a.State() != StateDisconnected {
		t.Fatalf("expected disconnected, got %s", a.State())
	}
	if n := atomic.LoadInt32(&w.deauthorizeCalls); n != 1 {
		t.Fatalf("expected 1 deauthorize call, got %d", n)
	}
}
