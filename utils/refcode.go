package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferenceCode returns an A-Z0-9 code of length n, e.g. "AB4D93KF".
// Uses crypto/rand + rand.Int (math/big) to avoid modulo bias.
func GenerateReferenceCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(refCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(refCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateBookingReference → "BK-XXXXXXXX". Uniqueness is enforced by the
// bookings.reference_code index; callers retry on collision.
func GenerateBookingReference() (string, error) {
	raw, err := GenerateReferenceCode(8)
	if err != nil {
		return "", err
	}
	return "BK-" + raw, nil
}
