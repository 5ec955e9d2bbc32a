// Package verification orchestrates the two operations the API exposes:
// submitting content for verification and looking a verification up.
package verification

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"socio_verify_api/contract"
	"socio_verify_api/metrics"
	"socio_verify_api/store"
	"socio_verify_api/tools"
	"socio_verify_api/types"

	"cloud.google.com/go/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
)

type ContractGateway interface {
	VerifyContent(ctx context.Context, cid string, signature []byte, user common.Address) ([20]byte, error)
	GetVerificationStatus(ctx context.Context, id [20]byte) (bool, error)
}

type PostStore interface {
	FindByVerificationId(ctx context.Context, id string) (*types.Post, error)
}

type ContentFetcher interface {
	FetchContent(ctx context.Context, cid string) (*types.Content, error)
}

type Service struct {
	contract ContractGateway
	posts    PostStore
	content  ContentFetcher
	validate *validator.Validate
	logger   tools.Logger
	metrics  *metrics.Metrics
}

func NewService(contract ContractGateway, posts PostStore, content ContentFetcher, logger tools.Logger, m *metrics.Metrics) *Service {
	return &Service{
		contract: contract,
		posts:    posts,
		content:  content,
		validate: newValidator(),
		logger:   logger,
		metrics:  m,
	}
}

// Verify forwards a submission to the contract once. A zero identifier from
// the contract is a NotVerified answer, not an error.
func (s *Service) Verify(ctx context.Context, req types.VerificationRequest) (result VerifyResult, err error) {
	defer func() { s.metrics.IncVerify(outcome(result, err)) }()

	if req.Missing() {
		return nil, newError(KindMissingField, MessageMissingField, nil)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidFieldError(err)
	}

	signature, err := hexutil.Decode(req.Signature)
	if err != nil {
		return nil, newError(KindInvalidField, "invalid signature", err)
	}

	id, err := s.contract.VerifyContent(ctx, req.Cid, signature, common.HexToAddress(req.Address))
	if err != nil {
		return nil, newError(KindVerificationCallFailed, MessageVerificationCallFailed, err)
	}

	verificationId := contract.FormatVerificationId(id)
	if verificationId == "" {
		s.logger.Log(logging.Entry{
			Severity: logging.Info,
			Payload:  "Verification failed",
			Labels:   map[string]string{"cid": req.Cid, "address": req.Address},
		})
		return NotVerified{}, nil
	}

	s.logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Verification id: " + verificationId,
		Labels:   map[string]string{"cid": req.Cid, "address": req.Address},
	})
	return Verified{VerificationId: verificationId}, nil
}

// Lookup checks the on-chain status first and only then reads the store and
// the content gateway, in that order.
func (s *Service) Lookup(ctx context.Context, verificationId string) (result LookupResult, err error) {
	defer func() { s.metrics.IncLookup(outcome(result, err)) }()

	if !types.VerificationIdPattern.MatchString(verificationId) {
		return nil, newError(KindInvalidField, "invalid verification id", nil)
	}
	verificationId = strings.ToLower(verificationId)

	id, err := contract.ParseVerificationId(verificationId)
	if err != nil {
		return nil, newError(KindInvalidField, "invalid verification id", err)
	}

	verified, err := s.contract.GetVerificationStatus(ctx, id)
	if err != nil {
		return nil, newError(KindStatusCallFailed, MessageStatusCallFailed, err)
	}
	if !verified {
		return NotVerified{}, nil
	}

	// TODO: a post written to the store shortly after the on-chain
	// registration can be missing here; decide with product whether to retry.
	post, err := s.posts.FindByVerificationId(ctx, verificationId)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindPostNotFound, MessagePostNotFound, err)
	}
	if err != nil {
		return nil, newError(KindStoreQueryFailed, MessageStoreQueryFailed, err)
	}

	content, err := s.content.FetchContent(ctx, post.Cid)
	if err != nil {
		return nil, newError(KindContentFetchFailed, MessageContentFetchFailed, err)
	}

	return Found{Post: post, Content: content}, nil
}

func outcome(result interface{}, err error) string {
	if err != nil {
		if kind := KindOf(err); kind != "" {
			return string(kind)
		}
		return "error"
	}
	switch result.(type) {
	case Verified, Found:
		return "verified"
	default:
		return "not_verified"
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})

	patterns := map[string]interface{ MatchString(string) bool }{
		"cid":           types.CidPattern,
		"eth_address":   types.AddressPattern,
		"eth_signature": types.SignaturePattern,
	}
	for tag, pattern := range patterns {
		pattern := pattern
		// Registration only fails for empty tags or nil funcs.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return pattern.MatchString(fl.Field().String())
		})
	}
	return v
}

func invalidFieldError(err error) *Error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return newError(KindInvalidField, "invalid request", err)
	}

	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Field())
	}
	return newError(KindInvalidField, "invalid "+strings.Join(fields, ", "), err)
}
