package verification

import "socio_verify_api/types"

// VerifyResult is either Verified or NotVerified.
type VerifyResult interface {
	isVerifyResult()
}

type Verified struct {
	VerificationId string
}

// NotVerified is the contract answering "no". It is not an error.
type NotVerified struct{}

func (Verified) isVerifyResult()    {}
func (NotVerified) isVerifyResult() {}

// LookupResult is either Found or NotVerified.
type LookupResult interface {
	isLookupResult()
}

type Found struct {
	Post    *types.Post
	Content *types.Content
}

func (Found) isLookupResult()       {}
func (NotVerified) isLookupResult() {}
