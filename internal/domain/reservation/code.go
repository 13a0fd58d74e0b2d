package reservation

import (
	"crypto/rand"
	"math/big"

	"lastbite/internal/pkg/errs"
)

// Redemption codes are read aloud and scanned off printed receipts, so the
// alphabet drops characters that are easy to confuse: 0/O, 1/I/L.
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 10
)

// NewCode generates a collision-resistant redemption code.
func NewCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errs.Wrap(err, "failed to generate reservation code")
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
