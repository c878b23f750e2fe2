// Package resolver maps human-readable handles to network addresses through
// the SPL Name Service registry. Results are valid only for the transaction
// being built: a name can be re-registered at any time, so nothing here is
// cached or persisted.
package resolver

import (
	"context"
	"crypto/sha256"
	"errors"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/solcash/cashgo/client"
	"github.com/solcash/cashgo/config"
	cerrors "github.com/solcash/cashgo/errors"
	"github.com/solcash/cashgo/logx"
)

const (
	// hashPrefix salts the name hash; fixed by the name service protocol.
	hashPrefix = "SPL Name Service"

	defaultNameProgramID = "namesLPneVptA9Z5rqUDD9tMTWEJwofgaYwp8cawRkX"
	// defaultRootDomain is the .sol TLD registry account.
	defaultRootDomain = "58PwtjSDuFHuUkYjH9BYnnQKHfwo9reZhC2zMJv9JPkx"

	// registryHeaderLen covers parent(32) + owner(32) + class(32).
	registryHeaderLen = 96
)

// NameResolver resolves a handle to the address currently registered for it.
type NameResolver interface {
	Resolve(ctx context.Context, handle string) (solana.PublicKey, error)
}

// SNSResolver implements NameResolver against the on-chain name registry.
type SNSResolver struct {
	rpc         client.ChainRPC
	nameProgram solana.PublicKey
	rootDomain  solana.PublicKey
}

func New(rpc client.ChainRPC, cfg config.ResolverConfig) (*SNSResolver, error) {
	nameProgram := defaultNameProgramID
	if cfg.NameProgramID != "" {
		nameProgram = cfg.NameProgramID
	}
	rootDomain := defaultRootDomain
	if cfg.RootDomain != "" {
		rootDomain = cfg.RootDomain
	}

	np, err := solana.PublicKeyFromBase58(nameProgram)
	if err != nil {
		return nil, err
	}
	root, err := solana.PublicKeyFromBase58(rootDomain)
	if err != nil {
		return nil, err
	}
	return &SNSResolver{rpc: rpc, nameProgram: np, rootDomain: root}, nil
}

// Resolve returns the owner currently registered for handle. The handle may
// carry a ".sol" suffix; case is ignored.
func (r *SNSResolver) Resolve(ctx context.Context, handle string) (solana.PublicKey, error) {
	name := normalize(handle)
	if name == "" {
		return solana.PublicKey{}, cerrors.ErrNameNotFound
	}

	registry, err := r.DomainKey(name)
	if err != nil {
		return solana.PublicKey{}, err
	}

	info, err := r.rpc.AccountInfo(ctx, registry)
	if err != nil {
		if errors.Is(err, cerrors.ErrAccountNotFound) {
			return solana.PublicKey{}, cerrors.ErrNameNotFound
		}
		logx.Warn("RESOLVER", "registry fetch for ", name, " failed: ", err)
		return solana.PublicKey{}, cerrors.ErrResolutionTimeout
	}
	if len(info.Data) < registryHeaderLen {
		return solana.PublicKey{}, cerrors.ErrNameNotFound
	}

	owner := solana.PublicKeyFromBytes(info.Data[32:64])
	if owner.IsZero() {
		return solana.PublicKey{}, cerrors.ErrNameNotFound
	}
	return owner, nil
}

// DomainKey derives the registry account address for a normalized name.
func (r *SNSResolver) DomainKey(name string) (solana.PublicKey, error) {
	hashed := sha256.Sum256([]byte(hashPrefix + name))
	// Registry PDA seeds: hashed name, name class (none), parent registry.
	var noClass [32]byte
	addr, _, err := solana.FindProgramAddress(
		[][]byte{hashed[:], noClass[:], r.rootDomain.Bytes()},
		r.nameProgram,
	)
	return addr, err
}

func normalize(handle string) string {
	name := strings.TrimSpace(strings.ToLower(handle))
	return strings.TrimSuffix(name, ".sol")
}
