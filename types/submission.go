package types

import (
	"github.com/gagliardetto/solana-go"
)

// Outcome is the terminal state of one submission attempt.
type Outcome string

const (
	// OutcomeConfirmed means the cluster confirmed the transaction.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeFailed means the chain reported an explicit execution error.
	OutcomeFailed Outcome = "failed"
	// OutcomeTimedOut means no confirmation arrived inside the wait window.
	// The transaction may still land; callers must treat this as ambiguous,
	// not as a rejection.
	OutcomeTimedOut Outcome = "timed-out"
)

// SubmissionResult pairs the broadcast signature with the confirmation
// outcome observed for it.
type SubmissionResult struct {
	Signature solana.Signature `json:"signature"`
	Outcome   Outcome          `json:"outcome"`
	// Reason holds the raw chain error payload when Outcome is failed.
	Reason string `json:"reason,omitempty"`
	// Slot is the slot the confirmation was observed at, when known.
	Slot uint64 `json:"slot,omitempty"`
}

// Confirmed reports whether the submission reached a confirmed outcome.
func (r SubmissionResult) Confirmed() bool {
	return r.Outcome == OutcomeConfirmed
}
