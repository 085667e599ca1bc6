package tellergo_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmbarra/tellergo"
)

func newTestLedger(t *testing.T) *tellergo.Ledger {
	t.Helper()
	l, err := tellergo.NewLedger()
	require.Nil(t, err)
	return l
}

func TestLedgerCreateAccount(t *testing.T) {
	t.Run("registers and returns a snapshot", func(tt *testing.T) {
		as := assert.New(tt)
		l := newTestLedger(tt)
		acct, err := l.CreateAccount(tellergo.CreateAccountReq{
			Number:         1,
			Holder:         "Alice",
			Kind:           tellergo.Savings,
			InitialBalance: decimal.NewFromInt(100),
		})
		as.Nil(err)
		as.Equal(int64(1), acct.Number)
		as.Equal("Alice", acct.Holder)
		as.True(acct.Balance.Equal(decimal.NewFromInt(100)))

		// mutating the snapshot must not leak into the ledger
		acct.Balance = decimal.NewFromInt(999999)
		got, err := l.GetAccount(1)
		as.Nil(err)
		as.True(got.Balance.Equal(decimal.NewFromInt(100)), "balance = %s", got.Balance)
	})

	t.Run("rejects a duplicate account number", func(tt *testing.T) {
		as := assert.New(tt)
		l := newTestLedger(tt)
		_, err := l.CreateAccount(tellergo.CreateAccountReq{Number: 7, Holder: "Alice", Kind: tellergo.Savings})
		as.Nil(err)
		_, err = l.CreateAccount(tellergo.CreateAccountReq{Number: 7, Holder: "Mallory", Kind: tellergo.Checking})
		as.ErrorAs(err, &tellergo.ErrConflict{})
	})
}

func TestLedgerGetAccountNotFound(t *testing.T) {
	as := assert.New(t)
	l := newTestLedger(t)
	_, err := l.GetAccount(999)
	as.ErrorAs(err, &tellergo.ErrNotFound{})
	as.Empty(l.Transactions())
}

func TestLedgerMakeTransaction(t *testing.T) {
	t.Run("savings deposit credits bonus and records entry 1", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newTestLedger(tt)
		_, err := l.CreateAccount(tellergo.CreateAccountReq{
			Number:         1,
			Holder:         "Alice",
			Kind:           tellergo.Savings,
			InitialBalance: decimal.NewFromInt(100),
		})
		reqrd.Nil(err)

		txn, bal, err := l.MakeTransaction(1, decimal.NewFromInt(100), tellergo.TxDeposit)
		reqrd.Nil(err)
		as.Equal(uint64(1), txn.ID)
		as.Equal(tellergo.TxDeposit, txn.Kind)
		as.Equal(int64(1), txn.AccountNumber)
		as.False(txn.Time.IsZero())
		as.True(bal.Equal(decimal.NewFromInt(203)), "balance = %s", bal)
	})

	t.Run("checking overdraft is allowed down to -500 and refused past it", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newTestLedger(tt)
		_, err := l.CreateAccount(tellergo.CreateAccountReq{Number: 2, Holder: "Bob", Kind: tellergo.Checking})
		reqrd.Nil(err)

		txn, bal, err := l.MakeTransaction(2, decimal.NewFromInt(400), tellergo.TxWithdrawal)
		reqrd.Nil(err)
		as.Equal(uint64(1), txn.ID)
		as.True(bal.Equal(decimal.NewFromInt(-400)), "balance = %s", bal)

		_, _, err = l.MakeTransaction(2, decimal.NewFromInt(200), tellergo.TxWithdrawal)
		as.ErrorIs(err, tellergo.ErrOverdraftLimit)
		got, err := l.GetAccount(2)
		reqrd.Nil(err)
		as.True(got.Balance.Equal(decimal.NewFromInt(-400)), "balance = %s", got.Balance)
		as.Len(l.Transactions(), 1)
	})

	t.Run("savings refusal reports insufficient funds and appends nothing", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newTestLedger(tt)
		_, err := l.CreateAccount(tellergo.CreateAccountReq{
			Number:         3,
			Holder:         "Carol",
			Kind:           tellergo.Savings,
			InitialBalance: decimal.NewFromInt(50),
		})
		reqrd.Nil(err)

		_, _, err = l.MakeTransaction(3, decimal.NewFromInt(60), tellergo.TxWithdrawal)
		as.ErrorIs(err, tellergo.ErrInsufficientFunds)
		got, err := l.GetAccount(3)
		reqrd.Nil(err)
		as.True(got.Balance.Equal(decimal.NewFromInt(50)))
		as.Empty(l.Transactions())
	})

	t.Run("unknown account mutates nothing", func(tt *testing.T) {
		as := assert.New(tt)
		l := newTestLedger(tt)
		_, _, err := l.MakeTransaction(999, decimal.NewFromInt(10), tellergo.TxDeposit)
		as.ErrorAs(err, &tellergo.ErrNotFound{})
		as.Empty(l.Transactions())
	})
}

func TestLedgerTransactionIDsMonotonic(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	l := newTestLedger(t)
	_, err := l.CreateAccount(tellergo.CreateAccountReq{
		Number:         1,
		Holder:         "Alice",
		Kind:           tellergo.Savings,
		InitialBalance: decimal.NewFromInt(100),
	})
	reqrd.Nil(err)
	_, err = l.CreateAccount(tellergo.CreateAccountReq{Number: 2, Holder: "Bob", Kind: tellergo.Checking})
	reqrd.Nil(err)

	txn, _, err := l.MakeTransaction(1, decimal.NewFromInt(10), tellergo.TxDeposit)
	reqrd.Nil(err)
	as.Equal(uint64(1), txn.ID)

	// a refused withdrawal must not consume an ID
	_, _, err = l.MakeTransaction(1, decimal.NewFromInt(100000), tellergo.TxWithdrawal)
	as.ErrorIs(err, tellergo.ErrInsufficientFunds)

	txn, _, err = l.MakeTransaction(2, decimal.NewFromInt(20), tellergo.TxDeposit)
	reqrd.Nil(err)
	as.Equal(uint64(2), txn.ID)

	txns := l.Transactions()
	reqrd.Len(txns, 2)
	as.Equal(uint64(1), txns[0].ID)
	as.Equal(uint64(2), txns[1].ID)
	as.NotEqual(txns[0].Ref, txns[1].Ref)
}

func TestLedgerAccountTransactions(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	l := newTestLedger(t)
	_, err := l.CreateAccount(tellergo.CreateAccountReq{Number: 1, Holder: "Alice", Kind: tellergo.Checking})
	reqrd.Nil(err)
	_, err = l.CreateAccount(tellergo.CreateAccountReq{Number: 2, Holder: "Bob", Kind: tellergo.Checking})
	reqrd.Nil(err)

	for i := 0; i < 3; i++ {
		_, _, err = l.MakeTransaction(1, decimal.NewFromInt(10), tellergo.TxDeposit)
		reqrd.Nil(err)
	}
	_, _, err = l.MakeTransaction(2, decimal.NewFromInt(10), tellergo.TxDeposit)
	reqrd.Nil(err)

	txns, err := l.AccountTransactions(1)
	reqrd.Nil(err)
	as.Len(txns, 3)
	for _, txn := range txns {
		as.Equal(int64(1), txn.AccountNumber)
	}

	_, err = l.AccountTransactions(42)
	as.ErrorAs(err, &tellergo.ErrNotFound{})
}

func TestLedgerConcurrentDeposits(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	l := newTestLedger(t)
	_, err := l.CreateAccount(tellergo.CreateAccountReq{Number: 1, Holder: "Alice", Kind: tellergo.Checking})
	reqrd.Nil(err)

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, _, err := l.MakeTransaction(1, decimal.NewFromInt(1), tellergo.TxDeposit); err != nil {
				t.Errorf("deposit: %v", err)
			}
		}()
	}
	wg.Wait()

	acct, err := l.GetAccount(1)
	reqrd.Nil(err)
	as.True(acct.Balance.Equal(decimal.NewFromInt(workers)), "balance = %s", acct.Balance)

	txns := l.Transactions()
	reqrd.Len(txns, workers)
	seen := make(map[uint64]bool, workers)
	for _, txn := range txns {
		as.False(seen[txn.ID], "duplicate transaction ID %d", txn.ID)
		seen[txn.ID] = true
	}
}

func TestLedgerCustomers(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	l := newTestLedger(t)

	cust, err := l.CreateCustomer("Alice")
	reqrd.Nil(err)
	as.NotZero(cust.ID)
	as.Equal("Alice", cust.Name)

	_, err = l.CreateAccount(tellergo.CreateAccountReq{Number: 1, Holder: "Alice", Kind: tellergo.Savings})
	reqrd.Nil(err)
	reqrd.Nil(l.LinkAccount(cust.ID, 1))

	got, err := l.GetCustomer(cust.ID)
	reqrd.Nil(err)
	reqrd.Len(got.Accounts, 1)
	as.Equal(int64(1), got.Accounts[0].Number)

	as.ErrorAs(l.LinkAccount(cust.ID, 999), &tellergo.ErrNotFound{})

	_, err = l.CreateCustomer("")
	as.ErrorAs(err, &tellergo.ErrBadRequest{})
}
