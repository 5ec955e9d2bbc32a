package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
	"testing"

	"socio_verify_api/store"
	"socio_verify_api/tools"
	"socio_verify_api/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContract struct{ mock.Mock }

func (m *mockContract) VerifyContent(ctx context.Context, cid string, signature []byte, user common.Address) ([20]byte, error) {
	args := m.Called(ctx, cid, signature, user)
	return args.Get(0).([20]byte), args.Error(1)
}

func (m *mockContract) GetVerificationStatus(ctx context.Context, id [20]byte) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockPosts struct{ mock.Mock }

func (m *mockPosts) FindByVerificationId(ctx context.Context, id string) (*types.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*types.Post)
	return post, args.Error(1)
}

type mockContent struct{ mock.Mock }

func (m *mockContent) FetchContent(ctx context.Context, cid string) (*types.Content, error) {
	args := m.Called(ctx, cid)
	content, _ := args.Get(0).(*types.Content)
	return content, args.Error(1)
}

type fixture struct {
	contract *mockContract
	posts    *mockPosts
	content  *mockContent
	service  *Service
}

func newFixture() *fixture {
	f := &fixture{contract: &mockContract{}, posts: &mockPosts{}, content: &mockContent{}}
	f.service = NewService(f.contract, f.posts, f.content, tools.DiscardLogger{}, nil)
	return f
}

func validRequest() types.VerificationRequest {
	return types.VerificationRequest{
		Cid:       "Qm" + strings.Repeat("a", 44),
		Address:   "0x" + strings.Repeat("1", 40),
		Signature: "0x" + strings.Repeat("2", 130),
	}
}

func identifier(hexId string) [20]byte {
	var id [20]byte
	copy(id[:], common.FromHex(hexId))
	return id
}

var verificationIdPattern = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)

func TestVerify_ConcreteScenario(t *testing.T) {
	f := newFixture()
	req := validRequest()
	f.contract.On("VerifyContent", mock.Anything, req.Cid, common.FromHex(req.Signature), common.HexToAddress(req.Address)).
		Return(identifier(strings.Repeat("3", 40)), nil).Once()

	result, err := f.service.Verify(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, Verified{VerificationId: strings.Repeat("3", 40)}, result)
	f.contract.AssertExpectations(t)
}

func TestVerify_IdentifierShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		var id [20]byte
		_, err := rand.Read(id[:])
		require.NoError(t, err)
		id[0] |= 1

		f := newFixture()
		f.contract.On("VerifyContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(id, nil)

		result, err := f.service.Verify(context.Background(), validRequest())
		require.NoError(t, err)

		verified, ok := result.(Verified)
		require.True(t, ok)
		assert.Regexp(t, verificationIdPattern, verified.VerificationId)
	}
}

func TestVerify_EmptyIdentifierIsNotVerified(t *testing.T) {
	f := newFixture()
	f.contract.On("VerifyContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([20]byte{}, nil)

	result, err := f.service.Verify(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, NotVerified{}, result)
}

func TestVerify_MissingFieldNeverCallsContract(t *testing.T) {
	tests := map[string]func(*types.VerificationRequest){
		"cid":       func(r *types.VerificationRequest) { r.Cid = "" },
		"address":   func(r *types.VerificationRequest) { r.Address = "" },
		"signature": func(r *types.VerificationRequest) { r.Signature = "" },
		"all":       func(r *types.VerificationRequest) { *r = types.VerificationRequest{} },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			mutate(&req)

			result, err := f.service.Verify(context.Background(), req)

			assert.Nil(t, result)
			require.ErrorIs(t, err, ErrMissingField)
			assert.Equal(t, "cid, signature and address are required", err.Error())
			assert.Equal(t, 400, KindOf(err).Status())
			f.contract.AssertNumberOfCalls(t, "VerifyContent", 0)
		})
	}
}

func TestVerify_MalformedFieldNeverCallsContract(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.VerificationRequest)
		message string
	}{
		{"short cid", func(r *types.VerificationRequest) { r.Cid = "Qm123" }, "invalid cid"},
		{"cid wrong prefix", func(r *types.VerificationRequest) { r.Cid = "bafy" + strings.Repeat("a", 42) }, "invalid cid"},
		{"address without 0x", func(r *types.VerificationRequest) { r.Address = strings.Repeat("1", 42) }, "invalid address"},
		{"signature not hex", func(r *types.VerificationRequest) { r.Signature = "0x" + strings.Repeat("z", 130) }, "invalid signature"},
		{"two fields", func(r *types.VerificationRequest) {
			r.Cid = "Qm"
			r.Signature = "0x00"
		}, "invalid cid, signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(&req)

			_, err := f.service.Verify(context.Background(), req)

			require.ErrorIs(t, err, ErrInvalidField)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
			f.contract.AssertNumberOfCalls(t, "VerifyContent", 0)
		})
	}
}

func TestVerify_ContractFailureIsNotRetried(t *testing.T) {
	f := newFixture()
	rpcErr := errors.New("execution reverted")
	f.contract.On("VerifyContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([20]byte{}, rpcErr)

	result, err := f.service.Verify(context.Background(), validRequest())

	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrVerificationCallFailed)
	assert.ErrorIs(t, err, rpcErr)
	assert.Equal(t, 500, KindOf(err).Status())
	f.contract.AssertNumberOfCalls(t, "VerifyContent", 1)
}

func samplePost(verificationId string) *types.Post {
	return &types.Post{
		Id:             "post-1",
		Creator:        types.Creator{Id: "user-1", Address: "0x" + strings.Repeat("1", 40), Username: "alice"},
		Signature:      "0x" + strings.Repeat("2", 130),
		VerificationId: verificationId,
		Cid:            "QmdSRKWwspnMPnshmLHYfteKtC8hmL68wSiuwuEWEkFkur",
	}
}

func TestLookup_NotVerifiedSkipsStoreAndContent(t *testing.T) {
	f := newFixture()
	id := strings.Repeat("4", 40)
	f.contract.On("GetVerificationStatus", mock.Anything, identifier(id)).Return(false, nil).Once()

	result, err := f.service.Lookup(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, NotVerified{}, result)
	f.contract.AssertExpectations(t)
	f.posts.AssertNumberOfCalls(t, "FindByVerificationId", 0)
	f.content.AssertNumberOfCalls(t, "FetchContent", 0)
}

func TestLookup_VerifiedButPostMissing(t *testing.T) {
	f := newFixture()
	id := strings.Repeat("5", 40)
	f.contract.On("GetVerificationStatus", mock.Anything, mock.Anything).Return(true, nil)
	f.posts.On("FindByVerificationId", mock.Anything, id).Return(nil, store.ErrNotFound)

	result, err := f.service.Lookup(context.Background(), id)

	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, 500, KindOf(err).Status())
	f.content.AssertNumberOfCalls(t, "FetchContent", 0)
}

func TestLookup_StoreFailure(t *testing.T) {
	f := newFixture()
	f.contract.On("GetVerificationStatus", mock.Anything, mock.Anything).Return(true, nil)
	f.posts.On("FindByVerificationId", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := f.service.Lookup(context.Background(), strings.Repeat("5", 40))

	require.ErrorIs(t, err, ErrStoreQueryFailed)
	assert.NotErrorIs(t, err, ErrPostNotFound)
	f.content.AssertNumberOfCalls(t, "FetchContent", 0)
}

func TestLookup_ContentFetchFailure(t *testing.T) {
	f := newFixture()
	id := strings.Repeat("6", 40)
	post := samplePost(id)
	f.contract.On("GetVerificationStatus", mock.Anything, mock.Anything).Return(true, nil)
	f.posts.On("FindByVerificationId", mock.Anything, id).Return(post, nil)
	f.content.On("FetchContent", mock.Anything, post.Cid).Return(nil, errors.New("gateway timeout"))

	_, err := f.service.Lookup(context.Background(), id)

	require.ErrorIs(t, err, ErrContentFetchFailed)
	assert.Equal(t, 500, KindOf(err).Status())
}

func TestLookup_FoundInOrder(t *testing.T) {
	f := newFixture()
	id := strings.Repeat("7", 40)
	post := samplePost(id)
	payload := &types.Content{Content: "gm", Files: []types.File{{Cid: "QmImage", FileType: types.FILE_TYPE_IMAGE}}}

	var order []string
	f.contract.On("GetVerificationStatus", mock.Anything, mock.Anything).Return(true, nil).
		Run(func(mock.Arguments) { order = append(order, "status") })
	f.posts.On("FindByVerificationId", mock.Anything, id).Return(post, nil).
		Run(func(mock.Arguments) { order = append(order, "store") })
	f.content.On("FetchContent", mock.Anything, post.Cid).Return(payload, nil).
		Run(func(mock.Arguments) { order = append(order, "content") })

	result, err := f.service.Lookup(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, Found{Post: post, Content: payload}, result)
	assert.Equal(t, []string{"status", "store", "content"}, order)
}

func TestLookup_NormalizesUpperCaseId(t *testing.T) {
	f := newFixture()
	lower := "4a5aa878184cfc30f3c38435b9c2601783fac907"
	f.contract.On("GetVerificationStatus", mock.Anything, identifier(lower)).Return(true, nil)
	f.posts.On("FindByVerificationId", mock.Anything, lower).Return(nil, store.ErrNotFound)

	_, err := f.service.Lookup(context.Background(), strings.ToUpper(lower))

	require.ErrorIs(t, err, ErrPostNotFound)
	f.posts.AssertExpectations(t)
}

func TestLookup_InvalidIdNeverCallsContract(t *testing.T) {
	for _, id := range []string{"", "4a5a", strings.Repeat("g", 40), "0x" + strings.Repeat("4", 38)} {
		f := newFixture()

		_, err := f.service.Lookup(context.Background(), id)

		require.ErrorIs(t, err, ErrInvalidField, id)
		f.contract.AssertNumberOfCalls(t, "GetVerificationStatus", 0)
	}
}

func TestLookup_StatusCallFailure(t *testing.T) {
	f := newFixture()
	f.contract.On("GetVerificationStatus", mock.Anything, mock.Anything).Return(false, errors.New("dial tcp: i/o timeout"))

	_, err := f.service.Lookup(context.Background(), strings.Repeat("8", 40))

	require.ErrorIs(t, err, ErrStatusCallFailed)
	f.contract.AssertNumberOfCalls(t, "GetVerificationStatus", 1)
	f.posts.AssertNumberOfCalls(t, "FindByVerificationId", 0)
}

func TestKindStatus(t *testing.T) {
	assert.Equal(t, 400, KindMissingField.Status())
	assert.Equal(t, 400, KindInvalidField.Status())
	for _, k := range []Kind{KindVerificationCallFailed, KindStatusCallFailed, KindPostNotFound, KindStoreQueryFailed, KindContentFetchFailed} {
		assert.Equal(t, 500, k.Status(), k)
	}
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}
