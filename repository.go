package tellergo

import (
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository.go -package=mocks

type Repository interface {
	CreateAccount(req CreateAccountReq) (*Account, error)
	GetAccount(number int64) (*Account, error)
	MakeTransaction(number int64, amount decimal.Decimal, kind TxKind) (*Transaction, decimal.Decimal, error)
	Transactions() []Transaction
	AccountTransactions(number int64) ([]Transaction, error)
}
