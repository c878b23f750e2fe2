package errors

import "fmt"

// ClientErrorCode represents standardized error codes for client operations
type ClientErrorCode string

const (
	// Caller errors - not retriable, surfaced immediately
	ErrCodeInvalidIdentity      ClientErrorCode = "invalid_identity"
	ErrCodeInvalidAmount        ClientErrorCode = "invalid_amount"
	ErrCodeUnsupportedOperation ClientErrorCode = "unsupported_operation"

	// Name resolution errors
	ErrCodeNameNotFound      ClientErrorCode = "name_not_found"
	ErrCodeResolutionTimeout ClientErrorCode = "resolution_timeout"

	// Session errors - surfaced as a prompt to reconnect
	ErrCodeNoWalletConnected   ClientErrorCode = "no_wallet_connected"
	ErrCodeAuthorizationDenied ClientErrorCode = "authorization_denied"
	ErrCodeSessionLost         ClientErrorCode = "session_lost"

	// Chain-level errors
	ErrCodeTransactionRejected ClientErrorCode = "transaction_rejected"
	ErrCodeAccountNotFound     ClientErrorCode = "account_not_found"
)

// ClientError is a code-carrying error. Two ClientErrors compare equal under
// errors.Is when their codes match, so call sites can wrap freely while
// callers still dispatch on the code.
type ClientError struct {
	Code    ClientErrorCode `json:"code"`
	Message string          `json:"message"`
	// Reason carries the raw chain-reported payload for transaction_rejected.
	Reason string `json:"reason,omitempty"`
}

func (e *ClientError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	return ok && t.Code == e.Code
}

// NewError creates a new ClientError and returns it as error interface
func NewError(code ClientErrorCode, message string) error {
	return &ClientError{Code: code, Message: message}
}

var (
	ErrInvalidIdentity      = &ClientError{Code: ErrCodeInvalidIdentity, Message: "user identity is not a well-formed key"}
	ErrInvalidAmount        = &ClientError{Code: ErrCodeInvalidAmount, Message: "amount must convert to a positive base-unit value"}
	ErrUnsupportedOperation = &ClientError{Code: ErrCodeUnsupportedOperation, Message: "unknown operation kind"}
	ErrNameNotFound         = &ClientError{Code: ErrCodeNameNotFound, Message: "handle has no current registration"}
	ErrResolutionTimeout    = &ClientError{Code: ErrCodeResolutionTimeout, Message: "name service did not answer in time"}
	ErrNoWalletConnected    = &ClientError{Code: ErrCodeNoWalletConnected, Message: "no wallet is reachable"}
	ErrAuthorizationDenied  = &ClientError{Code: ErrCodeAuthorizationDenied, Message: "wallet rejected the authorization request"}
	ErrSessionLost          = &ClientError{Code: ErrCodeSessionLost, Message: "wallet connection dropped while the session was in use"}
	ErrTransactionRejected  = &ClientError{Code: ErrCodeTransactionRejected, Message: "transaction failed on chain"}
	ErrAccountNotFound      = &ClientError{Code: ErrCodeAccountNotFound, Message: "account does not exist on chain"}
)

// Rejected builds a transaction_rejected error carrying the chain-reported
// error payload verbatim.
func Rejected(reason string) error {
	return &ClientError{
		Code:    ErrCodeTransactionRejected,
		Message: "transaction failed on chain",
		Reason:  reason,
	}
}
