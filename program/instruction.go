package program

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	cerrors "github.com/solcash/cashgo/errors"
)

// Operation names one instruction of the cash-account program.
type Operation string

const (
	OpInitialize        Operation = "initialize"
	OpDeposit           Operation = "deposit"
	OpWithdraw          Operation = "withdraw"
	OpTransfer          Operation = "transfer"
	OpAddFriend         Operation = "add_friend"
	OpNewPendingRequest Operation = "new_pending_request"
	OpAcceptRequest     Operation = "accept_request"
	OpDeclineRequest    Operation = "decline_request"
)

// Args carries the operation arguments. Amount is in base units; use
// ToBaseUnits to convert a display amount first.
type Args struct {
	Recipient solana.PublicKey
	Sender    solana.PublicKey
	Amount    uint64
}

// Build constructs the unsigned instruction for op on behalf of user. It
// performs no network I/O; the returned instruction is consumed exactly once
// when assembled into a transaction.
func (p *Program) Build(op Operation, user solana.PublicKey, args Args) (solana.Instruction, error) {
	switch op {
	case OpInitialize:
		return p.InitializeAccount(user)
	case OpDeposit:
		return p.DepositFunds(user, args.Amount)
	case OpWithdraw:
		return p.WithdrawFunds(user, args.Amount)
	case OpTransfer:
		return p.TransferFunds(user, args.Recipient, args.Amount)
	case OpAddFriend:
		return p.AddFriend(user, args.Recipient)
	case OpNewPendingRequest:
		return p.NewPendingRequest(user, args.Sender, args.Amount)
	case OpAcceptRequest:
		return p.AcceptRequest(user, args.Sender)
	case OpDeclineRequest:
		return p.DeclineRequest(user)
	default:
		return nil, cerrors.ErrUnsupportedOperation
	}
}

// InitializeAccount creates the user's cash account at its derived address.
func (p *Program) InitializeAccount(user solana.PublicKey) (solana.Instruction, error) {
	cashAccount, err := p.DeriveCashAccount(user)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(
		p.id,
		signerAccounts(cashAccount, user),
		anchorDiscriminator("initialize_account"),
	), nil
}

// DepositFunds moves amount lamports from the user's wallet into the cash
// account.
func (p *Program) DepositFunds(user solana.PublicKey, amount uint64) (solana.Instruction, error) {
	cashAccount, err := p.DeriveCashAccount(user)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, cerrors.ErrInvalidAmount
	}
	data := append(anchorDiscriminator("deposit_funds"), u64LE(amount)...)
	return solana.NewInstruction(p.id, signerAccounts(cashAccount, user), data), nil
}

// WithdrawFunds moves amount lamports from the cash account back to the
// user's wallet.
func (p *Program) WithdrawFunds(user solana.PublicKey, amount uint64) (solana.Instruction, error) {
	cashAccount, err := p.DeriveCashAccount(user)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, cerrors.ErrInvalidAmount
	}
	data := append(anchorDiscriminator("withdraw_funds"), u64LE(amount)...)
	return solana.NewInstruction(p.id, signerAccounts(cashAccount, user), data), nil
}

// TransferFunds moves amount lamports between the user's and the recipient's
// cash accounts. The recipient address must come from a resolution performed
// for this transaction; resolved addresses are not stable across calls.
func (p *Program) TransferFunds(user, recipient solana.PublicKey, amount uint64) (solana.Instruction, error) {
	fromAccount, err := p.DeriveCashAccount(user)
	if err != nil {
		return nil, err
	}
	toAccount, err := p.DeriveCashAccount(recipient)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, cerrors.ErrInvalidAmount
	}

	data := append(anchorDiscriminator("transfer_funds"), recipient.Bytes()...)
	data = append(data, u64LE(amount)...)

	// Account order matches the program's TransferFunds context: the system
	// program sits between the two cash accounts and the signer.
	accounts := []*solana.AccountMeta{
		{PublicKey: fromAccount, IsWritable: true},
		{PublicKey: toAccount, IsWritable: true},
		{PublicKey: solana.SystemProgramID},
		{PublicKey: user, IsSigner: true},
	}
	return solana.NewInstruction(p.id, accounts, data), nil
}

// AddFriend appends friend to the user's on-chain friends list.
func (p *Program) AddFriend(user, friend solana.PublicKey) (solana.Instruction, error) {
	cashAccount, err := p.DeriveCashAccount(user)
	if err != nil {
		return nil, err
	}
	if friend.IsZero() {
		return nil, cerrors.ErrInvalidIdentity
	}
	data := append(anchorDiscriminator("add_friend"), friend.Bytes()...)
	return solana.NewInstruction(p.id, signerAccounts(cashAccount, user), data), nil
}

// NewPendingRequest records a payment request from sender to the user.
func (p *Program) NewPendingRequest(user, sender solana.PublicKey, amount uint64) (solana.Instruction, error) {
	pendingRequest, err := p.DerivePendingRequest(user)
	if err != nil {
		return nil, err
	}
	cashAccount, err := p.DeriveCashAccount(user)
	if err != nil {
		return nil, err
	}
	if sender.IsZero() {
		return nil, cerrors.ErrInvalidIdentity
	}
	if amount == 0 {
		return nil, cerrors.ErrInvalidAmount
	}

	data := append(anchorDiscriminator("new_pending_request"), sender.Bytes()...)
	data = append(data, u64LE(amount)...)

	accounts := []*solana.AccountMeta{
		{PublicKey: pendingRequest, IsWritable: true},
		{PublicKey: cashAccount, IsWritable: true},
		{PublicKey: user, IsWritable: true, IsSigner: true},
		{PublicKey: solana.SystemProgramID},
	}
	return solana.NewInstruction(p.id, accounts, data), nil
}

// AcceptRequest settles the user's pending request by moving the requested
// amount from sender's cash account into the user's.
func (p *Program) AcceptRequest(user, sender solana.PublicKey) (solana.Instruction, error) {
	pendingRequest, err := p.DerivePendingRequest(user)
	if err != nil {
		return nil, err
	}
	fromAccount, err := p.DeriveCashAccount(sender)
	if err != nil {
		return nil, err
	}
	toAccount, err := p.DeriveCashAccount(user)
	if err != nil {
		return nil, err
	}

	accounts := []*solana.AccountMeta{
		{PublicKey: pendingRequest, IsWritable: true},
		{PublicKey: fromAccount, IsWritable: true},
		{PublicKey: toAccount, IsWritable: true},
		{PublicKey: user, IsWritable: true, IsSigner: true},
		{PublicKey: solana.SystemProgramID},
	}
	return solana.NewInstruction(p.id, accounts, anchorDiscriminator("accept_request")), nil
}

// DeclineRequest closes the user's pending request without moving funds.
func (p *Program) DeclineRequest(user solana.PublicKey) (solana.Instruction, error) {
	pendingRequest, err := p.DerivePendingRequest(user)
	if err != nil {
		return nil, err
	}
	accounts := []*solana.AccountMeta{
		{PublicKey: pendingRequest, IsWritable: true},
		{PublicKey: user, IsWritable: true, IsSigner: true},
		{PublicKey: solana.SystemProgramID},
	}
	return solana.NewInstruction(p.id, accounts, anchorDiscriminator("decline_request")), nil
}

// signerAccounts is the common {cash_account, signer, system_program} layout
// shared by initialize, deposit, withdraw and add_friend.
func signerAccounts(cashAccount, signer solana.PublicKey) []*solana.AccountMeta {
	return []*solana.AccountMeta{
		{PublicKey: cashAccount, IsWritable: true},
		{PublicKey: signer, IsWritable: true, IsSigner: true},
		{PublicKey: solana.SystemProgramID},
	}
}

func u64LE(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
