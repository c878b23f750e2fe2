package program

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solcash/cashgo/types"
)

// On-chain layouts (after the 8-byte Anchor discriminator):
//
//	CashAccount:    owner(32) | friends vec: len u32 LE + n*32 | counter u64 LE
//	PendingRequest: sender(32) | recipient(32) | amount u64 LE | count u64 LE
const (
	cashAccountMinLen     = 8 + 32 + 4 + 8
	pendingRequestDataLen = 8 + 32 + 32 + 8 + 8
)

// DecodeCashAccount parses raw account data fetched from addr into a record.
// lamports is the account balance reported alongside the data.
func DecodeCashAccount(addr solana.PublicKey, data []byte, lamports uint64) (*types.CashAccountRecord, error) {
	if len(data) < cashAccountMinLen {
		return nil, fmt.Errorf("cash account %s: data too short (%d bytes)", addr, len(data))
	}
	if !bytes.Equal(data[:8], accountDiscriminator("CashAccount")) {
		return nil, fmt.Errorf("cash account %s: discriminator mismatch", addr)
	}

	owner := solana.PublicKeyFromBytes(data[8:40])
	n := binary.LittleEndian.Uint32(data[40:44])
	need := 44 + int(n)*32 + 8
	if len(data) < need {
		return nil, fmt.Errorf("cash account %s: truncated friends list (%d entries, %d bytes)", addr, n, len(data))
	}

	friends := make([]solana.PublicKey, 0, n)
	off := 44
	for i := uint32(0); i < n; i++ {
		friends = append(friends, solana.PublicKeyFromBytes(data[off:off+32]))
		off += 32
	}
	counter := binary.LittleEndian.Uint64(data[off : off+8])

	return &types.CashAccountRecord{
		Address:               addr,
		Owner:                 owner,
		Friends:               friends,
		PendingRequestCounter: counter,
		Lamports:              lamports,
	}, nil
}

// EncodeCashAccount produces the on-chain byte layout for a record. The write
// path never uses this; it exists so fakes and fixtures serve data the
// decoder accepts.
func EncodeCashAccount(rec *types.CashAccountRecord) []byte {
	data := append([]byte{}, accountDiscriminator("CashAccount")...)
	data = append(data, rec.Owner.Bytes()...)
	data = append(data, u32LE(uint32(len(rec.Friends)))...)
	for _, f := range rec.Friends {
		data = append(data, f.Bytes()...)
	}
	return append(data, u64LE(rec.PendingRequestCounter)...)
}

// DecodePendingRequest parses raw pending-request account data.
func DecodePendingRequest(addr solana.PublicKey, data []byte) (*types.PendingRequestRecord, error) {
	if len(data) < pendingRequestDataLen {
		return nil, fmt.Errorf("pending request %s: data too short (%d bytes)", addr, len(data))
	}
	if !bytes.Equal(data[:8], accountDiscriminator("PendingRequest")) {
		return nil, fmt.Errorf("pending request %s: discriminator mismatch", addr)
	}
	return &types.PendingRequestRecord{
		Sender:       solana.PublicKeyFromBytes(data[8:40]),
		Recipient:    solana.PublicKeyFromBytes(data[40:72]),
		Amount:       binary.LittleEndian.Uint64(data[72:80]),
		RequestCount: binary.LittleEndian.Uint64(data[80:88]),
	}, nil
}

// EncodePendingRequest produces the on-chain byte layout for a request record.
func EncodePendingRequest(rec *types.PendingRequestRecord) []byte {
	data := append([]byte{}, accountDiscriminator("PendingRequest")...)
	data = append(data, rec.Sender.Bytes()...)
	data = append(data, rec.Recipient.Bytes()...)
	data = append(data, u64LE(rec.Amount)...)
	return append(data, u64LE(rec.RequestCount)...)
}

func u32LE(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}
