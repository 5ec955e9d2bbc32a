package types

import (
	"encoding/json"
	"errors"
)

// CopyPayload is the "copy verification data" blob handed to users so they
// can re-submit a verification by hand.
type CopyPayload struct {
	Cid            string `json:"cid"`
	Address        string `json:"address"`
	Signature      string `json:"signature"`
	VerificationId string `json:"verificationId"`
}

func NewCopyPayload(post Post) CopyPayload {
	return CopyPayload{
		Cid:            post.Cid,
		Address:        post.Creator.Address,
		Signature:      post.Signature,
		VerificationId: post.VerificationId,
	}
}

func (p CopyPayload) String() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(data)
}

func ParseCopyPayload(s string) (CopyPayload, error) {
	var p CopyPayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return CopyPayload{}, err
	}
	if p.Cid == "" || p.Address == "" || p.Signature == "" || p.VerificationId == "" {
		return CopyPayload{}, errors.New("copy payload is missing fields")
	}
	return p, nil
}
