package types

import (
	"github.com/gagliardetto/solana-go"
)

// CashAccountRecord is the client-side copy of one on-chain cash account.
// The chain owns this state; the record is a read-only snapshot with an
// explicit staleness window managed by the query cache.
type CashAccountRecord struct {
	Address               solana.PublicKey   `json:"address"`
	Owner                 solana.PublicKey   `json:"owner"`
	Friends               []solana.PublicKey `json:"friends"`
	PendingRequestCounter uint64             `json:"pending_request_counter"`
	// Lamports is the account balance in base units at fetch time.
	Lamports uint64 `json:"lamports"`
}

// HasFriend reports whether addr is on the record's friends list.
func (r *CashAccountRecord) HasFriend(addr solana.PublicKey) bool {
	for _, f := range r.Friends {
		if f.Equals(addr) {
			return true
		}
	}
	return false
}

// PendingRequestRecord is the client-side copy of one on-chain payment
// request.
type PendingRequestRecord struct {
	Sender       solana.PublicKey `json:"sender"`
	Recipient    solana.PublicKey `json:"recipient"`
	Amount       uint64           `json:"amount"`
	RequestCount uint64           `json:"request_count"`
}
