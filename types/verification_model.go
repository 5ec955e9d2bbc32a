package types

import "regexp"

var (
	CidPattern            = regexp.MustCompile(`^Qm[A-Za-z0-9]{44}$`)
	AddressPattern        = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	SignaturePattern      = regexp.MustCompile(`^0x[0-9a-fA-F]{130}$`)
	VerificationIdPattern = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
)

// VerificationRequest is the body of POST /api/verify.
type VerificationRequest struct {
	Cid       string `json:"cid" validate:"cid"`
	Address   string `json:"address" validate:"eth_address"`
	Signature string `json:"signature" validate:"eth_signature"`
}

// Missing reports whether any of the three fields was left empty.
func (r VerificationRequest) Missing() bool {
	return r.Cid == "" || r.Signature == "" || r.Address == ""
}
