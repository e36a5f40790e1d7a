package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/logger"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// ERC20Config holds the settings of the on-chain oracle
type ERC20Config struct {
	ContractAddress string
	// MaxRetries bounds the attempts after the first failed call
	MaxRetries uint64
	// InitialInterval is the first backoff delay
	InitialInterval time.Duration
	// CallTimeout bounds a single RPC call
	CallTimeout time.Duration
}

type erc20Oracle struct {
	client   adapter.EthClient
	contract common.Address
	abi      abi.ABI
	config   ERC20Config
}

// NewERC20Oracle creates an oracle that reads balances from an ERC-20 contract
func NewERC20Oracle(cfg ERC20Config, client adapter.EthClient) (BalanceOracle, error) {
	contract, err := domain.NormalizeAddress(cfg.ContractAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid token contract: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = 10 * time.Second
	}

	return &erc20Oracle{
		client:   client,
		contract: common.HexToAddress(contract),
		abi:      parsed,
		config:   cfg,
	}, nil
}

// BalanceOf calls balanceOf(address) on the token contract
func (o *erc20Oracle) BalanceOf(ctx context.Context, address string) (amount.TokenAmount, error) {
	owner, err := domain.NormalizeAddress(address)
	if err != nil {
		return amount.Zero(), err
	}
	return o.call(ctx, "balanceOf", common.HexToAddress(owner))
}

// TotalSupply calls totalSupply() on the token contract
func (o *erc20Oracle) TotalSupply(ctx context.Context) (amount.TokenAmount, error) {
	return o.call(ctx, "totalSupply")
}

func (o *erc20Oracle) call(ctx context.Context, method string, args ...interface{}) (amount.TokenAmount, error) {
	data, err := o.abi.Pack(method, args...)
	if err != nil {
		return amount.Zero(), fmt.Errorf("failed to pack data: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.config.InitialInterval
	b.MaxInterval = 10 * o.config.InitialInterval
	b.MaxElapsedTime = 0

	var result []byte
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, o.config.CallTimeout)
		defer cancel()

		result, err = o.client.CallContract(callCtx, ethereum.CallMsg{
			To:   &o.contract,
			Data: data,
		}, nil)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, d time.Duration) {
		logger.WarnCtx(ctx, "Contract call failed, retrying",
			zap.String("method", method),
			zap.Duration("retry_in", d),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, o.config.MaxRetries), ctx), notify); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return amount.Zero(), err
		}
		return amount.Zero(), fmt.Errorf("failed to call %s: %w", method, err)
	}

	var value *big.Int
	if err := o.abi.UnpackIntoInterface(&value, method, result); err != nil {
		return amount.Zero(), fmt.Errorf("failed to unpack %s result: %w", method, err)
	}

	return amount.FromBytes(value.Bytes())
}
