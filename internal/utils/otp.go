package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPLength is the number of digits in a generated one-time passcode.
const OTPLength = 6

// GenerateOTP returns a random passcode of [OTPLength] decimal digits,
// zero-padded on the left. Digits only; no letters or symbols.
//
// The code is drawn from crypto/rand so it cannot be predicted from earlier
// codes.
func GenerateOTP() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < OTPLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("error generating otp: %w", err)
	}

	return fmt.Sprintf("%0*d", OTPLength, n), nil
}
