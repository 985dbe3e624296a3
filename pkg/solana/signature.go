package solana

import "github.com/mr-tron/base58"

// MaxSignatureLen bounds the textual length of a transaction signature.
// A 64-byte signature encodes to at most 88 base58 characters.
const MaxSignatureLen = 128

// ValidSignature reports whether s is a non-empty base58 string of plausible length.
func ValidSignature(s string) bool {
	if s == "" || len(s) > MaxSignatureLen {
		return false
	}
	_, err := base58.Decode(s)
	return err == nil
}
