package tellergo

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/semaphore"
)

var (
	_ Service = (*validationMiddleware)(nil)
)

type Middleware func(Service) Service

// validationMiddleware rejects malformed requests before they reach the
// core. Non-positive charge amounts are refused here, so the account
// policies below only ever see validated amounts.
type validationMiddleware struct {
	next Service
	repo Repository
}

func NewValidationMiddleware(repo Repository) Middleware {
	return func(svc Service) Service {
		return &validationMiddleware{
			next: svc,
			repo: repo,
		}
	}
}

func (v *validationMiddleware) CreateAccount(req CreateAccountReq) (*Account, error) {
	fields := make(map[string]string)
	if req.Number <= 0 {
		fields["account_number"] = "must be a positive integer"
	}
	if req.Holder == "" {
		fields["holder"] = "must not be empty"
	}
	if req.Kind != Savings && req.Kind != Checking {
		fields["kind"] = "must be savings or checking"
	}
	if req.InitialBalance.IsNegative() {
		fields["initial_balance"] = "must not be negative"
	}
	if len(fields) > 0 {
		return nil, ErrBadRequest{Fields: fields}
	}
	return v.next.CreateAccount(req)
}

func (v *validationMiddleware) Deposit(req ChargeReq) (*decimal.Decimal, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrBadRequest{Fields: map[string]string{"amount": "must be greater than zero"}}
	}
	if _, err := v.repo.GetAccount(req.Number); err != nil {
		return nil, err
	}
	return v.next.Deposit(req)
}

func (v *validationMiddleware) Withdraw(req ChargeReq) (*decimal.Decimal, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrBadRequest{Fields: map[string]string{"amount": "must be greater than zero"}}
	}
	if _, err := v.repo.GetAccount(req.Number); err != nil {
		return nil, err
	}
	return v.next.Withdraw(req)
}

func (v *validationMiddleware) Balance(req BalanceReq) (*decimal.Decimal, error) {
	return v.next.Balance(req)
}

func (v *validationMiddleware) Transactions() ([]Transaction, error) {
	return v.next.Transactions()
}

func (v *validationMiddleware) Statement(w io.Writer, req StatementReq) error {
	return v.next.Statement(w, req)
}

//
// Rate limiting middlewares
//

// limitMiddleware limits the number of in-flight requests to the service by using
// a weighted semaphore, i.e., x/sync/semaphore.Semaphore with an acquisition timeout.
// Requests that cannot acquire a token within the timeout are shed with
// ErrTooManyRequests.
type limitMiddleware struct {
	next    Service
	limits  *ServiceLimits
	timeout time.Duration
}

var (
	_ Service = (*limitMiddleware)(nil)
)

type ServiceLimits struct {
	CreateAccount *semaphore.Weighted
	Deposit       *semaphore.Weighted
	Withdraw      *semaphore.Weighted
	Balance       *semaphore.Weighted
	Transactions  *semaphore.Weighted
	Statement     *semaphore.Weighted
}

// NewServiceLimits builds per-operation semaphores from config weights,
// falling back to defaultLimitWeight for weights that are unset.
func NewServiceLimits(cfg *Config) *ServiceLimits {
	w := func(n int64) *semaphore.Weighted {
		if n <= 0 {
			n = defaultLimitWeight
		}
		return semaphore.NewWeighted(n)
	}
	return &ServiceLimits{
		CreateAccount: w(cfg.Limits.CreateAccount),
		Deposit:       w(cfg.Limits.Deposit),
		Withdraw:      w(cfg.Limits.Withdraw),
		Balance:       w(cfg.Limits.Balance),
		Transactions:  w(cfg.Limits.Transactions),
		Statement:     w(cfg.Limits.Statement),
	}
}

const defaultLimitWeight = 64

func NewLimitMiddleware(limits *ServiceLimits, timeout time.Duration) Middleware {
	return func(next Service) Service {
		return &limitMiddleware{
			next:    next,
			limits:  limits,
			timeout: timeout,
		}
	}
}

func (l *limitMiddleware) acquire(sem *semaphore.Weighted) (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, ErrTooManyRequests
	}
	return func() { sem.Release(1) }, nil
}

func (l *limitMiddleware) CreateAccount(req CreateAccountReq) (*Account, error) {
	release, err := l.acquire(l.limits.CreateAccount)
	if err != nil {
		return nil, err
	}
	defer release()
	return l.next.CreateAccount(req)
}

func (l *limitMiddleware) Deposit(req ChargeReq) (*decimal.Decimal, error) {
	release, err := l.acquire(l.limits.Deposit)
	if err != nil {
		return nil, err
	}
	defer release()
	return l.next.Deposit(req)
}

func (l *limitMiddleware) Withdraw(req ChargeReq) (*decimal.Decimal, error) {
	release, err := l.acquire(l.limits.Withdraw)
	if err != nil {
		return nil, err
	}
	defer release()
	return l.next.Withdraw(req)
}

func (l *limitMiddleware) Balance(req BalanceReq) (*decimal.Decimal, error) {
	release, err := l.acquire(l.limits.Balance)
	if err != nil {
		return nil, err
	}
	defer release()
	return l.next.Balance(req)
}

func (l *limitMiddleware) Transactions() ([]Transaction, error) {
	release, err := l.acquire(l.limits.Transactions)
	if err != nil {
		return nil, err
	}
	defer release()
	return l.next.Transactions()
}

func (l *limitMiddleware) Statement(w io.Writer, req StatementReq) error {
	release, err := l.acquire(l.limits.Statement)
	if err != nil {
		return err
	}
	defer release()
	return l.next.Statement(w, req)
}

type ServiceBreaker struct {
	CreateAccount *gobreaker.TwoStepCircuitBreaker[*Account]
	Deposit       *gobreaker.TwoStepCircuitBreaker[*decimal.Decimal]
	Withdraw      *gobreaker.TwoStepCircuitBreaker[*decimal.Decimal]
	Balance       *gobreaker.TwoStepCircuitBreaker[*decimal.Decimal]
	Transactions  *gobreaker.TwoStepCircuitBreaker[[]Transaction]
	Statement     *gobreaker.TwoStepCircuitBreaker[any]
}

// NewServiceBreaker builds one two-step breaker per operation from the
// shared breaker tuning in cfg.
func NewServiceBreaker(cfg *Config) *ServiceBreaker {
	st := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.Breaker.MaxRequests,
			Interval:    time.Duration(cfg.Breaker.IntervalSeconds) * time.Second,
			Timeout:     time.Duration(cfg.Breaker.TimeoutSeconds) * time.Second,
		}
	}
	return &ServiceBreaker{
		CreateAccount: gobreaker.NewTwoStepCircuitBreaker[*Account](st("create_account")),
		Deposit:       gobreaker.NewTwoStepCircuitBreaker[*decimal.Decimal](st("deposit")),
		Withdraw:      gobreaker.NewTwoStepCircuitBreaker[*decimal.Decimal](st("withdraw")),
		Balance:       gobreaker.NewTwoStepCircuitBreaker[*decimal.Decimal](st("balance")),
		Transactions:  gobreaker.NewTwoStepCircuitBreaker[[]Transaction](st("transactions")),
		Statement:     gobreaker.NewTwoStepCircuitBreaker[any](st("statement")),
	}
}

// circuitBreakMiddleware is a middleware that implements the circuit breaker pattern.
// It works in conjunction with limitMiddleware to limit the number of in-flight
// requests to the service when the circuit is not in `closed` state. Domain
// errors (not found, policy violations, bad requests) count as successes so
// that only internal failures trip the breaker.
type circuitBreakMiddleware struct {
	next  Service
	brkrs *ServiceBreaker
}

var (
	_ Service = (*circuitBreakMiddleware)(nil)
)

func NewCircuitBreakMiddleware(brkrs *ServiceBreaker) Middleware {
	return func(next Service) Service {
		return &circuitBreakMiddleware{
			next:  next,
			brkrs: brkrs,
		}
	}
}

// healthy reports whether err should count as a success for the breaker.
func healthy(err error) bool {
	return !errors.Is(err, ErrInternalServer)
}

func (c *circuitBreakMiddleware) CreateAccount(req CreateAccountReq) (*Account, error) {
	done, err := c.brkrs.CreateAccount.Allow()
	if err != nil {
		return nil, ErrUnavailable
	}
	acct, err := c.next.CreateAccount(req)
	done(healthy(err))
	return acct, err
}

func (c *circuitBreakMiddleware) Deposit(req ChargeReq) (*decimal.Decimal, error) {
	done, err := c.brkrs.Deposit.Allow()
	if err != nil {
		return nil, ErrUnavailable
	}
	bal, err := c.next.Deposit(req)
	done(healthy(err))
	return bal, err
}

func (c *circuitBreakMiddleware) Withdraw(req ChargeReq) (*decimal.Decimal, error) {
	done, err := c.brkrs.Withdraw.Allow()
	if err != nil {
		return nil, ErrUnavailable
	}
	bal, err := c.next.Withdraw(req)
	done(healthy(err))
	return bal, err
}

func (c *circuitBreakMiddleware) Balance(req BalanceReq) (*decimal.Decimal, error) {
	done, err := c.brkrs.Balance.Allow()
	if err != nil {
		return nil, ErrUnavailable
	}
	bal, err := c.next.Balance(req)
	done(healthy(err))
	return bal, err
}

func (c *circuitBreakMiddleware) Transactions() ([]Transaction, error) {
	done, err := c.brkrs.Transactions.Allow()
	if err != nil {
		return nil, ErrUnavailable
	}
	txns, err := c.next.Transactions()
	done(healthy(err))
	return txns, err
}

func (c *circuitBreakMiddleware) Statement(w io.Writer, req StatementReq) error {
	done, err := c.brkrs.Statement.Allow()
	if err != nil {
		return ErrUnavailable
	}
	err = c.next.Statement(w, req)
	done(healthy(err))
	return err
}
