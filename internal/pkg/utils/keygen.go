package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const digits = "0123456789"

// GenerateOTP returns a random numeric passcode of the given length.
func GenerateOTP(length int) (string, error) {
	var sb strings.Builder
	for range length {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(digits[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateEmployeeID mints an employee identifier with the given prefix,
// e.g. "EMP-004213".
func GenerateEmployeeID(prefix string) (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, num.Int64()), nil
}
