package solana

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xenartist/memo.rip/pkg/burn"
	"github.com/xenartist/memo.rip/pkg/rpc"
)

var (
	// ErrNoBurnInstruction is returned for a transaction without a burn or burnChecked instruction.
	ErrNoBurnInstruction = errors.New("no burn instruction found in transaction")
	// ErrMalformedTransaction is returned when the transaction JSON lacks required fields.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrTransactionFailed is returned for a transaction that executed with an error.
	ErrTransactionFailed = errors.New("transaction failed on chain")
)

// IsParseError reports whether err is terminal for a reconciliation attempt.
func IsParseError(err error) bool {
	return errors.Is(err, ErrNoBurnInstruction) ||
		errors.Is(err, ErrMalformedTransaction) ||
		errors.Is(err, ErrTransactionFailed)
}

// ParseBurn extracts the first burn of a jsonParsed getTransaction result.
// It performs no I/O and returns the same output for the same input.
func ParseBurn(raw json.RawMessage) (*burn.Detail, error) {
	if rpc.IsNull(raw) {
		return nil, fmt.Errorf("%w: empty transaction", ErrMalformedTransaction)
	}

	var tx Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	if tx.Meta != nil && !rpc.IsNull(tx.Meta.Err) {
		return nil, fmt.Errorf("%w: %s", ErrTransactionFailed, string(tx.Meta.Err))
	}
	if len(tx.Transaction.Signatures) == 0 || tx.Transaction.Signatures[0] == "" {
		return nil, fmt.Errorf("%w: missing signature", ErrMalformedTransaction)
	}

	instructions := tx.Transaction.Message.Instructions
	info, err := findBurn(instructions)
	if err != nil {
		return nil, err
	}

	amount, err := burnAmount(info)
	if err != nil {
		return nil, err
	}
	burner := info.Authority
	if burner == "" {
		burner = info.MultisigAuthority
	}
	if burner == "" || info.Mint == "" {
		return nil, fmt.Errorf("%w: burn instruction without authority or mint", ErrMalformedTransaction)
	}
	if tx.BlockTime == nil {
		return nil, fmt.Errorf("%w: missing blockTime", ErrMalformedTransaction)
	}

	return &burn.Detail{
		Signature: tx.Transaction.Signatures[0],
		Burner:    burner,
		Amount:    amount,
		Token:     info.Mint,
		Memo:      findMemo(instructions),
		Timestamp: time.Unix(*tx.BlockTime, 0).UTC(),
	}, nil
}

func findBurn(instructions []Instruction) (*burnInfo, error) {
	for _, ix := range instructions {
		if len(ix.Parsed) == 0 || ix.Parsed[0] != '{' {
			continue
		}
		var parsed parsedInstruction
		if err := json.Unmarshal(ix.Parsed, &parsed); err != nil {
			continue
		}
		if parsed.Type != InstructionBurn && parsed.Type != InstructionBurnChecked {
			continue
		}
		var info burnInfo
		if err := json.Unmarshal(parsed.Info, &info); err != nil {
			return nil, fmt.Errorf("%w: burn info: %v", ErrMalformedTransaction, err)
		}
		return &info, nil
	}
	return nil, ErrNoBurnInstruction
}

// burnAmount reads info.amount, falling back to info.tokenAmount.amount
// which burnChecked uses.
func burnAmount(info *burnInfo) (uint64, error) {
	text := strings.Trim(string(info.Amount), `"`)
	if text == "" && info.TokenAmount != nil {
		text = info.TokenAmount.Amount
	}
	if text == "" {
		return 0, fmt.Errorf("%w: burn instruction without amount", ErrMalformedTransaction)
	}
	amount, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q: %v", ErrMalformedTransaction, text, err)
	}
	return amount, nil
}

// findMemo returns the memo text verbatim. It does not interpret JSON content.
func findMemo(instructions []Instruction) string {
	for _, ix := range instructions {
		if ix.Program != memoProgram && ix.ProgramID != MemoProgramV1 && ix.ProgramID != MemoProgramV2 {
			continue
		}
		var text string
		if err := json.Unmarshal(ix.Parsed, &text); err == nil {
			return text
		}
		if !rpc.IsNull(ix.Parsed) {
			return string(ix.Parsed)
		}
	}
	return ""
}
