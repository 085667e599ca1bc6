package tellergo

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxKind is the direction of a ledger entry.
type TxKind uint8

const (
	TxDeposit TxKind = iota + 1
	TxWithdrawal
)

func (k TxKind) String() string {
	switch k {
	case TxDeposit:
		return "deposit"
	case TxWithdrawal:
		return "withdrawal"
	}
	return "unknown"
}

func (k TxKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Transaction is one committed ledger entry. Entries are immutable once
// appended; IDs are assigned under the ledger lock and strictly increase
// by one per successful operation. Ref is an external correlation
// reference, independent of the internal sequence.
type Transaction struct {
	ID            uint64          `json:"id"`
	AccountNumber int64           `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          TxKind          `json:"kind"`
	Time          time.Time       `json:"time"`
	Ref           uuid.UUID       `json:"ref"`
}

// Ledger is the bank aggregate. It owns the account collection, the
// append-only transaction log, and the transaction counter. A single
// mutex serializes every operation so that the balance check, the
// mutation, and the ledger append are observed as one unit.
type Ledger struct {
	mu      sync.Mutex
	node    *snowflake.Node
	accts   map[int64]*Account
	custs   map[snowflake.ID]*Customer
	txns    []Transaction
	counter uint64
}

var (
	_ Repository = (*Ledger)(nil)
)

func NewLedger() (*Ledger, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		node:  node,
		accts: make(map[int64]*Account),
		custs: make(map[snowflake.ID]*Customer),
	}, nil
}

// CreateAccount registers a new account. Account numbers are unique
// within the ledger; a taken number is rejected with ErrConflict.
func (l *Ledger) CreateAccount(req CreateAccountReq) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accts[req.Number]; ok {
		return nil, ErrConflict{Number: req.Number}
	}
	a := &Account{
		Number:  req.Number,
		Holder:  req.Holder,
		Kind:    req.Kind,
		Balance: req.InitialBalance,
	}
	l.accts[req.Number] = a
	cp := *a
	return &cp, nil
}

// GetAccount returns a snapshot of the account, or ErrNotFound. The copy
// keeps callers from mutating ledger state outside the lock.
func (l *Ledger) GetAccount(number int64) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accts[number]
	if !ok {
		return nil, ErrNotFound{Number: number}
	}
	cp := *a
	return &cp, nil
}

// MakeTransaction resolves the account, applies its deposit/withdrawal
// policy, and on success appends a ledger entry under the same lock. A
// refused withdrawal consumes no transaction ID and leaves every piece of
// state untouched. Returns the committed entry and the resulting balance.
func (l *Ledger) MakeTransaction(number int64, amount decimal.Decimal, kind TxKind) (*Transaction, decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accts[number]
	if !ok {
		return nil, decimal.Zero, ErrNotFound{Number: number}
	}

	switch kind {
	case TxDeposit:
		a.Deposit(amount)
	case TxWithdrawal:
		if !a.Withdraw(amount) {
			if a.Kind == Checking {
				return nil, a.Balance, ErrOverdraftLimit
			}
			return nil, a.Balance, ErrInsufficientFunds
		}
	default:
		return nil, decimal.Zero, ErrBadRequest{Fields: map[string]string{"kind": "unknown transaction kind"}}
	}

	l.counter++
	txn := Transaction{
		ID:            l.counter,
		AccountNumber: number,
		Amount:        amount,
		Kind:          kind,
		Time:          time.Now(),
		Ref:           uuid.New(),
	}
	l.txns = append(l.txns, txn)
	return &txn, a.Balance, nil
}

// Transactions returns the full ledger in append order.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// AccountTransactions returns the ledger entries of one account in append
// order, or ErrNotFound for an unknown account.
func (l *Ledger) AccountTransactions(number int64) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accts[number]; !ok {
		return nil, ErrNotFound{Number: number}
	}
	var out []Transaction
	for _, t := range l.txns {
		if t.AccountNumber == number {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateCustomer registers a customer grouping. IDs are ledger-assigned.
func (l *Ledger) CreateCustomer(name string) (*Customer, error) {
	if name == "" {
		return nil, ErrBadRequest{Fields: map[string]string{"name": "must not be empty"}}
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	c := &Customer{
		ID:   l.node.Generate(),
		Name: name,
	}
	l.custs[c.ID] = c
	return l.copyCustomer(c), nil
}

// LinkAccount attaches an existing account to a customer. The account is
// shared, not owned; the ledger keeps sole ownership of its lifetime.
func (l *Ledger) LinkAccount(custID snowflake.ID, number int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.custs[custID]
	if !ok {
		return ErrNotFound{}
	}
	a, ok := l.accts[number]
	if !ok {
		return ErrNotFound{Number: number}
	}
	c.Accounts = append(c.Accounts, a)
	return nil
}

// GetCustomer returns a snapshot of the customer and its accounts.
func (l *Ledger) GetCustomer(id snowflake.ID) (*Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.custs[id]
	if !ok {
		return nil, ErrNotFound{}
	}
	return l.copyCustomer(c), nil
}

// copyCustomer snapshots a customer with account copies. Callers hold l.mu.
func (l *Ledger) copyCustomer(c *Customer) *Customer {
	cp := Customer{
		ID:   c.ID,
		Name: c.Name,
	}
	for _, a := range c.Accounts {
		ac := *a
		cp.Accounts = append(cp.Accounts, &ac)
	}
	return &cp
}
