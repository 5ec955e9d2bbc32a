package contract

import (
	"encoding/hex"
	"fmt"
)

// FormatVerificationId renders a bytes20 identifier as 40 lower-case hex
// characters without 0x. The zero identifier renders as "".
func FormatVerificationId(id [20]byte) string {
	if id == ([20]byte{}) {
		return ""
	}
	return hex.EncodeToString(id[:])
}

// ParseVerificationId is the inverse of FormatVerificationId. Upper-case hex
// is accepted.
func ParseVerificationId(s string) ([20]byte, error) {
	var id [20]byte
	if len(s) != 2*len(id) {
		return id, fmt.Errorf("verification id must be %d hex characters", 2*len(id))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return [20]byte{}, fmt.Errorf("verification id: %w", err)
	}
	return id, nil
}
