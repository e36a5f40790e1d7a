package oracle_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/mocks"
	"github.com/feral-file/ff-tokenomics/internal/oracle"
)

const (
	tokenContract = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	holder        = "0x8617E340B3D01FA5F11F306F4090FD50E238070D"
)

func word(n *big.Int) []byte {
	return common.LeftPadBytes(n.Bytes(), 32)
}

func newOracle(t *testing.T, client *mocks.MockEthClient, retries uint64) oracle.BalanceOracle {
	t.Helper()
	o, err := oracle.NewERC20Oracle(oracle.ERC20Config{
		ContractAddress: tokenContract,
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
	}, client)
	require.NoError(t, err)
	return o
}

func TestERC20Oracle_BalanceOf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	balance, _ := new(big.Int).SetString("1234500000000000000000", 10)

	client.
		EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, common.HexToAddress(tokenContract), *msg.To)
			assert.Equal(t, crypto.Keccak256([]byte("balanceOf(address)"))[:4], msg.Data[:4])
			assert.Equal(t, common.LeftPadBytes(common.HexToAddress(holder).Bytes(), 32), msg.Data[4:])
			return word(balance), nil
		})

	got, err := newOracle(t, client, 0).BalanceOf(context.Background(), holder)
	require.NoError(t, err)
	assert.Equal(t, "1234500000000000000000", got.String())
}

func TestERC20Oracle_TotalSupply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	client.
		EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, crypto.Keccak256([]byte("totalSupply()"))[:4], msg.Data)
			return word(big.NewInt(1_000_000)), nil
		})

	got, err := newOracle(t, client, 0).TotalSupply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, amount.FromUint64(1_000_000), got)
}

func TestERC20Oracle_Retries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	gomock.InOrder(
		client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil, errors.New("connection reset")),
		client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil, errors.New("429 too many requests")),
		client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).Return(word(big.NewInt(42)), nil),
	)

	got, err := newOracle(t, client, 3).BalanceOf(context.Background(), holder)
	require.NoError(t, err)
	assert.Equal(t, "42", got.String())
}

func TestERC20Oracle_GivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	client.
		EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, errors.New("node down")).
		Times(3)

	_, err := newOracle(t, client, 2).BalanceOf(context.Background(), holder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node down")
}

func TestERC20Oracle_InvalidAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := newOracle(t, mocks.NewMockEthClient(ctrl), 0).BalanceOf(context.Background(), "0x123")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = oracle.NewERC20Oracle(oracle.ERC20Config{ContractAddress: "token"}, mocks.NewMockEthClient(ctrl))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestERC20Oracle_MalformedResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).Return([]byte{0x01}, nil)

	_, err := newOracle(t, client, 0).BalanceOf(context.Background(), holder)
	assert.Error(t, err)
}

func TestStaticOracle(t *testing.T) {
	o := oracle.NewStaticOracle(amount.FromUint64(1000), map[string]amount.TokenAmount{
		holder: amount.FromUint64(10),
	})
	ctx := context.Background()

	b, err := o.BalanceOf(ctx, "0x8617e340b3d01fa5f11f306f4090fd50e238070d")
	require.NoError(t, err)
	assert.Equal(t, "10", b.String())

	b, err = o.BalanceOf(ctx, tokenContract)
	require.NoError(t, err)
	assert.True(t, b.IsZero())

	o.SetBalance(tokenContract, amount.FromUint64(7))
	b, err = o.BalanceOf(ctx, tokenContract)
	require.NoError(t, err)
	assert.Equal(t, "7", b.String())

	supply, err := o.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1000", supply.String())

	_, err = o.BalanceOf(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
