// Package contract talks to the ContentAuthenticator contract over JSON-RPC.
// Both calls are read-only eth_calls; the contract owns every verification
// decision.
package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ContentAuthenticatorABI covers the two functions this service calls.
const ContentAuthenticatorABI = `[
	{"type":"function","name":"verifyContent","stateMutability":"view",
	 "inputs":[{"name":"_cid","type":"string"},{"name":"_signature","type":"bytes"},{"name":"_userAddress","type":"address"}],
	 "outputs":[{"name":"","type":"bytes20"}]},
	{"type":"function","name":"getVerificationStatus","stateMutability":"view",
	 "inputs":[{"name":"_verificationId","type":"bytes20"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`

const (
	methodVerifyContent         = "verifyContent"
	methodGetVerificationStatus = "getVerificationStatus"
)

// ErrEmptyResponse is returned when the node answers an eth_call with no
// data, which happens when nothing is deployed at the contract address.
var ErrEmptyResponse = errors.New("contract: empty call response")

// Caller is the part of ethclient.Client the gateway needs.
type Caller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type Client struct {
	caller  Caller
	address common.Address
	abi     abi.ABI
	timeout time.Duration
}

// Dial connects to an RPC endpoint and binds the contract at address.
func Dial(ctx context.Context, rpcURL, address string, timeout time.Duration) (*Client, func(), error) {
	if !common.IsHexAddress(address) {
		return nil, nil, fmt.Errorf("contract: invalid address %q", address)
	}

	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, fmt.Errorf("contract: dial %s: %w", rpcURL, err)
	}

	client, err := New(eth, common.HexToAddress(address), timeout)
	if err != nil {
		eth.Close()
		return nil, nil, err
	}
	return client, eth.Close, nil
}

func New(caller Caller, address common.Address, timeout time.Duration) (*Client, error) {
	parsed, err := abi.JSON(strings.NewReader(ContentAuthenticatorABI))
	if err != nil {
		return nil, fmt.Errorf("contract: parse abi: %w", err)
	}
	return &Client{caller: caller, address: address, abi: parsed, timeout: timeout}, nil
}

// VerifyContent asks the contract to check signature over cid for user. An
// all-zero identifier means the contract did not verify the content.
func (c *Client) VerifyContent(ctx context.Context, cid string, signature []byte, user common.Address) ([20]byte, error) {
	values, err := c.call(ctx, methodVerifyContent, cid, signature, user)
	if err != nil {
		return [20]byte{}, err
	}

	id, ok := values[0].([20]byte)
	if !ok {
		return [20]byte{}, fmt.Errorf("contract: %s returned %T", methodVerifyContent, values[0])
	}
	return id, nil
}

func (c *Client) GetVerificationStatus(ctx context.Context, id [20]byte) (bool, error) {
	values, err := c.call(ctx, methodGetVerificationStatus, id)
	if err != nil {
		return false, err
	}

	verified, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("contract: %s returned %T", methodGetVerificationStatus, values[0])
	}
	return verified, nil
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("contract: pack %s: %w", method, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("contract: call %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyResponse
	}

	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("contract: unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("contract: %s returned %d values", method, len(values))
	}
	return values, nil
}
