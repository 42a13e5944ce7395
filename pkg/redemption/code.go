package redemption

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const redeemCodeLength = 6

var redeemCodeSpace = big.NewInt(1_000_000)

// GenerateRedeemCode returns a uniformly random, zero-padded six digit code.
func GenerateRedeemCode() (string, error) {
	n, err := rand.Int(rand.Reader, redeemCodeSpace)
	if err != nil {
		return "", fmt.Errorf("generate redeem code: %w", err)
	}
	return fmt.Sprintf("%0*d", redeemCodeLength, n.Int64()), nil
}
