package tellergo_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/semaphore"

	"github.com/hmbarra/tellergo"
	"github.com/hmbarra/tellergo/mocks"
)

func TestValidationMWCreateAccount(t *testing.T) {
	t.Run("returns an error on missing holder and unknown kind", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := tellergo.NewValidationMiddleware(repo)(svc)

		req := tellergo.CreateAccountReq{
			Number: 1,
		}
		acct, err := v.CreateAccount(req)
		as.NotNil(err)
		as.ErrorAs(err, &tellergo.ErrBadRequest{})
		as.Nil(acct)
	})

	t.Run("returns an error on a negative initial balance", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := tellergo.NewValidationMiddleware(repo)(svc)

		req := tellergo.CreateAccountReq{
			Number:         1,
			Holder:         "Alice",
			Kind:           tellergo.Savings,
			InitialBalance: decimal.NewFromInt(-1),
		}
		acct, err := v.CreateAccount(req)
		as.NotNil(err)
		as.Nil(acct)
	})

	t.Run("passes a valid request through", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := tellergo.NewValidationMiddleware(repo)(svc)

		req := tellergo.CreateAccountReq{
			Number: 1,
			Holder: "Alice",
			Kind:   tellergo.Savings,
		}
		svc.EXPECT().
			CreateAccount(req).
			Return(&tellergo.Account{Number: 1, Holder: "Alice", Kind: tellergo.Savings}, nil)
		acct, err := v.CreateAccount(req)
		as.Nil(err)
		as.NotNil(acct)
	})
}

func TestValidationMWDeposit(t *testing.T) {
	t.Run("returns an error on a non-positive amount", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := tellergo.NewValidationMiddleware(repo)(svc)

		for _, amt := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-123)} {
			bal, err := v.Deposit(tellergo.ChargeReq{Number: 1, Amount: amt})
			as.ErrorAs(err, &tellergo.ErrBadRequest{})
			as.Nil(bal)
		}
	})

	t.Run("returns an error on a non-existent account", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := tellergo.NewValidationMiddleware(repo)(svc)

		repo.EXPECT().
			GetAccount(int64(999)).
			Return(nil, tellergo.ErrNotFound{Number: 999})
		bal, err := v.Deposit(tellergo.ChargeReq{Number: 999, Amount: decimal.NewFromInt(123)})
		as.ErrorAs(err, &tellergo.ErrNotFound{})
		as.Nil(bal)
	})
}

func TestValidationMWWithdraw(t *testing.T) {
	t.Run("returns an error on a non-positive amount", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := tellergo.NewValidationMiddleware(repo)(svc)

		bal, err := v.Withdraw(tellergo.ChargeReq{Number: 1, Amount: decimal.NewFromInt(-123)})
		as.ErrorAs(err, &tellergo.ErrBadRequest{})
		as.Nil(bal)
	})

	t.Run("returns an error on a non-existent account", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := tellergo.NewValidationMiddleware(repo)(svc)

		repo.EXPECT().
			GetAccount(int64(999)).
			Return(nil, tellergo.ErrNotFound{Number: 999})
		bal, err := v.Withdraw(tellergo.ChargeReq{Number: 999, Amount: decimal.NewFromInt(123)})
		as.ErrorAs(err, &tellergo.ErrNotFound{})
		as.Nil(bal)
	})
}

func TestLimitMW(t *testing.T) {
	t.Run("sheds a request when the semaphore is saturated", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)

		limits := &tellergo.ServiceLimits{
			Deposit: semaphore.NewWeighted(1),
		}
		reqrd.Nil(limits.Deposit.Acquire(context.Background(), 1))
		defer limits.Deposit.Release(1)

		l := tellergo.NewLimitMiddleware(limits, 10*time.Millisecond)(svc)
		bal, err := l.Deposit(tellergo.ChargeReq{Number: 1, Amount: decimal.NewFromInt(1)})
		as.ErrorIs(err, tellergo.ErrTooManyRequests)
		as.Nil(bal)
	})

	t.Run("passes through when a token is available", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)

		limits := &tellergo.ServiceLimits{
			Deposit: semaphore.NewWeighted(1),
		}
		bal := decimal.NewFromInt(203)
		svc.EXPECT().
			Deposit(gomock.AssignableToTypeOf(tellergo.ChargeReq{})).
			Return(&bal, nil)

		l := tellergo.NewLimitMiddleware(limits, 10*time.Millisecond)(svc)
		got, err := l.Deposit(tellergo.ChargeReq{Number: 1, Amount: decimal.NewFromInt(100)})
		as.Nil(err)
		as.True(got.Equal(bal))
	})
}

func TestCircuitBreakMW(t *testing.T) {
	t.Run("opens after consecutive internal failures", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)

		// gobreaker's default ReadyToTrip opens the circuit after more
		// than five consecutive failures.
		brkrs := tellergo.NewServiceBreaker(&tellergo.Config{})
		c := tellergo.NewCircuitBreakMiddleware(brkrs)(svc)

		svc.EXPECT().
			Withdraw(gomock.AssignableToTypeOf(tellergo.ChargeReq{})).
			Return(nil, tellergo.ErrInternalServer).
			Times(6)
		req := tellergo.ChargeReq{Number: 1, Amount: decimal.NewFromInt(1)}
		for i := 0; i < 6; i++ {
			_, err := c.Withdraw(req)
			as.ErrorIs(err, tellergo.ErrInternalServer)
		}

		_, err := c.Withdraw(req)
		as.ErrorIs(err, tellergo.ErrUnavailable)
	})

	t.Run("domain errors do not trip the breaker", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)

		brkrs := tellergo.NewServiceBreaker(&tellergo.Config{})
		c := tellergo.NewCircuitBreakMiddleware(brkrs)(svc)

		svc.EXPECT().
			Withdraw(gomock.AssignableToTypeOf(tellergo.ChargeReq{})).
			Return(nil, tellergo.ErrInsufficientFunds).
			Times(10)
		req := tellergo.ChargeReq{Number: 1, Amount: decimal.NewFromInt(1)}
		for i := 0; i < 10; i++ {
			_, err := c.Withdraw(req)
			as.ErrorIs(err, tellergo.ErrInsufficientFunds)
		}
	})
}
