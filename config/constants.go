package config

import "time"

const (
	// BaseUnitFactor converts a display amount in SOL to lamports, the
	// smallest indivisible unit carried in instructions.
	BaseUnitFactor = 1_000_000_000

	// DefaultProgramID is the deployed cash-app program on devnet.
	DefaultProgramID = "BxCbQks4iaRvfCnUzf3utYYG9V53TDwVLxA6GGBnhci4"

	// DefaultRPCEndpoint is the cluster the mobile app talks to.
	DefaultRPCEndpoint = "https://api.devnet.solana.com"

	DefaultCommitment      = "confirmed"
	DefaultConfirmTimeout  = 60 * time.Second
	DefaultPollInterval    = 2 * time.Second
	DefaultCacheTTL        = 30 * time.Second
	DefaultCacheMaxEntries = 128
)
