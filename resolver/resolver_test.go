package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solcash/cashgo/client"
	"github.com/solcash/cashgo/config"
	cerrors "github.com/solcash/cashgo/errors"
)

// ----------------- Helpers / Mocks -----------------

type fakeRPC struct {
	accounts map[solana.PublicKey]*client.AccountInfo
	err      error
}

func (r *fakeRPC) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return solana.Hash{}, nil
}

func (r *fakeRPC) SendRawTransaction(ctx context.Context, raw []byte, skipPreflight bool) (solana.Signature, error) {
	return solana.Signature{}, nil
}

func (r *fakeRPC) SignatureStatus(ctx context.Context, sig solana.Signature) (*client.TxStatus, error) {
	return nil, nil
}

func (r *fakeRPC) AccountInfo(ctx context.Context, addr solana.PublicKey) (*client.AccountInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	info, ok := r.accounts[addr]
	if !ok {
		return nil, cerrors.ErrAccountNotFound
	}
	return info, nil
}

func (r *fakeRPC) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	return 0, nil
}

func registryData(owner solana.PublicKey) []byte {
	data := make([]byte, registryHeaderLen)
	copy(data[32:64], owner.Bytes())
	return data
}

func ownerKey(b byte) solana.PublicKey {
	var raw [32]byte
	raw[0] = b
	return solana.PublicKeyFromBytes(raw[:])
}

// register seeds the fake with a registry record for name so Resolve finds it.
func register(t *testing.T, r *SNSResolver, rpc *fakeRPC, name string, owner solana.PublicKey) {
	t.Helper()
	registry, err := r.DomainKey(name)
	require.NoError(t, err)
	rpc.accounts[registry] = &client.AccountInfo{Data: registryData(owner)}
}

// ----------------- Tests -----------------

func TestResolve_ReturnsRegisteredOwner(t *testing.T) {
	rpc := &fakeRPC{accounts: map[solana.PublicKey]*client.AccountInfo{}}
	r, err := New(rpc, config.ResolverConfig{})
	require.NoError(t, err)

	alice := ownerKey(1)
	register(t, r, rpc, "alice", alice)

	got, err := r.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, alice, got)
}

func TestResolve_NormalizesHandle(t *testing.T) {
	rpc := &fakeRPC{accounts: map[solana.PublicKey]*client.AccountInfo{}}
	r, err := New(rpc, config.ResolverConfig{})
	require.NoError(t, err)

	alice := ownerKey(1)
	register(t, r, rpc, "alice", alice)

	for _, handle := range []string{"alice", "alice.sol", "ALICE", "  Alice.sol "} {
		got, err := r.Resolve(context.Background(), handle)
		require.NoError(t, err, "handle %q", handle)
		require.Equal(t, alice, got, "handle %q", handle)
	}
}

func TestResolve_UnregisteredName(t *testing.T) {
	rpc := &fakeRPC{accounts: map[solana.PublicKey]*client.AccountInfo{}}
	r, err := New(rpc, config.ResolverConfig{})
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "nobody")
	require.ErrorIs(t, err, cerrors.ErrNameNotFound)

	_, err = r.Resolve(context.Background(), "")
	require.ErrorIs(t, err, cerrors.ErrNameNotFound)
}

func TestResolve_RegistryWithoutOwner(t *testing.T) {
	rpc := &fakeRPC{accounts: map[solana.PublicKey]*client.AccountInfo{}}
	r, err := New(rpc, config.ResolverConfig{})
	require.NoError(t, err)

	register(t, r, rpc, "ghost", solana.PublicKey{})

	_, err = r.Resolve(context.Background(), "ghost")
	require.ErrorIs(t, err, cerrors.ErrNameNotFound)
}

func TestResolve_RPCFailureMapsToTimeout(t *testing.T) {
	rpc := &fakeRPC{err: fmt.Errorf("rpc unreachable")}
	r, err := New(rpc, config.ResolverConfig{})
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "alice")
	require.ErrorIs(t, err, cerrors.ErrResolutionTimeout)
}

func TestDomainKey_Deterministic(t *testing.T) {
	rpc := &fakeRPC{accounts: map[solana.PublicKey]*client.AccountInfo{}}
	r, err := New(rpc, config.ResolverConfig{})
	require.NoError(t, err)

	a1, err := r.DomainKey("alice")
	require.NoError(t, err)
	a2, err := r.DomainKey("alice")
	require.NoError(t, err)
	require.Equal(t, a1, a2)

	b, err := r.DomainKey("bob")
	require.NoError(t, err)
	require.NotEqual(t, a1, b)
}

func TestNew_RejectsMalformedOverrides(t *testing.T) {
	rpc := &fakeRPC{}
	_, err := New(rpc, config.ResolverConfig{NameProgramID: "not-base58-0OIl"})
	require.Error(t, err)
	_, err = New(rpc, config.ResolverConfig{RootDomain: "not-base58-0OIl"})
	require.Error(t, err)
}
