package solana

import (
	"encoding/json"

	"github.com/xenartist/memo.rip/pkg/rpc"
)

// Commitment levels reported by getSignatureStatuses, weakest first.
const (
	CommitmentProcessed = "processed"
	CommitmentConfirmed = "confirmed"
	CommitmentFinalized = "finalized"
)

// Memo program ids (v1 and v2).
const (
	MemoProgramV1 = "Memo1UhkJRfHyvLMcVucJwxXeuD728EqVDDwQDxFMNo"
	MemoProgramV2 = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"
	memoProgram   = "spl-memo"
)

// Parsed instruction types that destroy token units.
const (
	InstructionBurn        = "burn"
	InstructionBurnChecked = "burnChecked"
)

// SignatureStatus is one entry of a getSignatureStatuses result.
type SignatureStatus struct {
	Slot               uint64          `json:"slot"`
	Confirmations      *uint64         `json:"confirmations"`
	Err                json.RawMessage `json:"err"`
	ConfirmationStatus string          `json:"confirmationStatus"`
}

// Confirmed reports whether the transaction reached confirmed or finalized.
func (s *SignatureStatus) Confirmed() bool {
	if s == nil {
		return false
	}
	return s.ConfirmationStatus == CommitmentConfirmed || s.ConfirmationStatus == CommitmentFinalized
}

// Failed reports whether the transaction landed with an execution error.
func (s *SignatureStatus) Failed() bool {
	return s != nil && !rpc.IsNull(s.Err)
}

// SignatureStatusesResult is the result member of getSignatureStatuses.
type SignatureStatusesResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value []*SignatureStatus `json:"value"`
}

// First returns the status of the first queried signature, or nil.
func (r *SignatureStatusesResult) First() *SignatureStatus {
	if r == nil || len(r.Value) == 0 {
		return nil
	}
	return r.Value[0]
}

// Transaction is the subset of a jsonParsed getTransaction result the parser reads.
type Transaction struct {
	Slot        uint64           `json:"slot"`
	BlockTime   *int64           `json:"blockTime"`
	Meta        *TransactionMeta `json:"meta"`
	Transaction struct {
		Signatures []string `json:"signatures"`
		Message    struct {
			Instructions []Instruction `json:"instructions"`
		} `json:"message"`
	} `json:"transaction"`
}

// TransactionMeta carries the execution status.
type TransactionMeta struct {
	Err json.RawMessage `json:"err"`
}

// Instruction is a top level instruction. Parsed is an object for known
// programs and a plain string for the memo program.
type Instruction struct {
	Program   string          `json:"program"`
	ProgramID string          `json:"programId"`
	Parsed    json.RawMessage `json:"parsed"`
}

type parsedInstruction struct {
	Type string          `json:"type"`
	Info json.RawMessage `json:"info"`
}

type burnInfo struct {
	Account           string          `json:"account"`
	Mint              string          `json:"mint"`
	Authority         string          `json:"authority"`
	MultisigAuthority string          `json:"multisigAuthority"`
	Amount            json.RawMessage `json:"amount"`
	TokenAmount       *struct {
		Amount string `json:"amount"`
	} `json:"tokenAmount"`
}
