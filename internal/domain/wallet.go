package domain

import (
	"fmt"
	"math/big"
	"strings"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ErrInvalidWallet reports a malformed wallet address. This is the single
// fatal input error: nothing is derived for an address that fails here.
var ErrInvalidWallet = fmt.Errorf("invalid wallet address")

// ValidateWalletAddress checks that address is a base58-encoded 32-byte
// public key.
func ValidateWalletAddress(address string) error {
	if len(address) < 32 || len(address) > 44 {
		return fmt.Errorf("%w: %q has unexpected length %d", ErrInvalidWallet, address, len(address))
	}
	decoded, err := decodeBase58(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWallet, err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("%w: %q decodes to %d bytes, want 32", ErrInvalidWallet, address, len(decoded))
	}
	return nil
}

func decodeBase58(s string) ([]byte, error) {
	n := new(big.Int)
	radix := big.NewInt(58)
	for _, r := range s {
		idx := strings.IndexRune(base58Alphabet, r)
		if idx < 0 {
			return nil, fmt.Errorf("character %q is not base58", r)
		}
		n.Mul(n, radix)
		n.Add(n, big.NewInt(int64(idx)))
	}

	decoded := n.Bytes()
	// Each leading '1' encodes a leading zero byte.
	leading := 0
	for leading < len(s) && s[leading] == '1' {
		leading++
	}
	return append(make([]byte, leading), decoded...), nil
}
