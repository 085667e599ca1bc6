package tellergo

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

type CreateAccountReq struct {
	Number         int64           `json:"account_number"`
	Holder         string          `json:"holder"`
	Kind           AccountKind     `json:"kind"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type ChargeReq struct {
	Amount decimal.Decimal `json:"amount"`
	Number int64           `json:"-"`
}

type BalanceReq struct {
	Number int64
}

type StatementReq struct {
	Number int64
}

// Service is the external contract of the bank core: the five teller
// operations plus a per-account statement export. Deposit and Withdraw
// return the balance after the charge.
type Service interface {
	CreateAccount(CreateAccountReq) (*Account, error)
	Deposit(ChargeReq) (*decimal.Decimal, error)
	Withdraw(ChargeReq) (*decimal.Decimal, error)
	Balance(BalanceReq) (*decimal.Decimal, error)
	Transactions() ([]Transaction, error)
	Statement(io.Writer, StatementReq) error
}

func NewService(repo Repository, log *zerolog.Logger) *serviceImpl {
	return &serviceImpl{
		repo: repo,
		log:  log,
	}
}

type serviceImpl struct {
	repo Repository
	log  *zerolog.Logger
}

var (
	_ Service = (*serviceImpl)(nil)
)

func (s *serviceImpl) CreateAccount(req CreateAccountReq) (*Account, error) {
	acct, err := s.repo.CreateAccount(req)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("account", acct.Number).
		Str("kind", acct.Kind.String()).
		Str("balance", acct.Balance.String()).
		Msg("account created")
	return acct, nil
}

func (s *serviceImpl) Deposit(req ChargeReq) (*decimal.Decimal, error) {
	txn, bal, err := s.repo.MakeTransaction(req.Number, req.Amount, TxDeposit)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Uint64("txn", txn.ID).
		Int64("account", req.Number).
		Str("amount", req.Amount.String()).
		Msg("deposit recorded")
	return &bal, nil
}

func (s *serviceImpl) Withdraw(req ChargeReq) (*decimal.Decimal, error) {
	txn, bal, err := s.repo.MakeTransaction(req.Number, req.Amount, TxWithdrawal)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Uint64("txn", txn.ID).
		Int64("account", req.Number).
		Str("amount", req.Amount.String()).
		Msg("withdrawal recorded")
	return &bal, nil
}

func (s *serviceImpl) Balance(req BalanceReq) (*decimal.Decimal, error) {
	acct, err := s.repo.GetAccount(req.Number)
	if err != nil {
		return nil, err
	}
	return &acct.Balance, nil
}

func (s *serviceImpl) Transactions() ([]Transaction, error) {
	return s.repo.Transactions(), nil
}

func (s *serviceImpl) Statement(w io.Writer, req StatementReq) error {
	acct, err := s.repo.GetAccount(req.Number)
	if err != nil {
		return err
	}
	txns, err := s.repo.AccountTransactions(req.Number)
	if err != nil {
		return err
	}
	return writeStatement(w, acct, txns)
}
