package service

import (
	"github.com/solcash/cashgo/client"
	"github.com/solcash/cashgo/config"
	"github.com/solcash/cashgo/program"
	"github.com/solcash/cashgo/query"
	"github.com/solcash/cashgo/resolver"
	"github.com/solcash/cashgo/session"
	"github.com/solcash/cashgo/submitter"
)

// New wires a CashService from a loaded config and a wallet-authorization
// provider. Tests and embedders that need finer control assemble the
// collaborators themselves and call NewCashService.
func New(cfg *config.Config, wallet session.Wallet) (*CashService, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	rpc, err := client.NewClient(client.Config{
		Endpoint:   cfg.RPC.Endpoint,
		Commitment: cfg.RPC.Commitment,
	})
	if err != nil {
		return nil, err
	}

	progID, err := program.ParseIdentity(cfg.Program.ID)
	if err != nil {
		return nil, err
	}

	names, err := resolver.New(rpc, cfg.Resolver)
	if err != nil {
		return nil, err
	}

	auth := session.NewAuthorizer(wallet)
	return NewCashService(
		program.New(progID),
		names,
		submitter.New(rpc, auth, cfg.Submit),
		auth,
		query.NewCache(rpc, cfg.Cache),
	), nil
}
