package tellergo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// AccountKind selects the balance policy an account applies on deposits
// and withdrawals.
type AccountKind uint8

const (
	Savings AccountKind = iota + 1
	Checking
)

var (
	// savingsRate is the bonus credited on every savings deposit.
	savingsRate = decimal.NewFromFloat(0.03)
	// overdraftLimit is how far below zero a checking balance may go.
	overdraftLimit = decimal.NewFromInt(500)
)

func (k AccountKind) String() string {
	switch k {
	case Savings:
		return "savings"
	case Checking:
		return "checking"
	}
	return "unknown"
}

// ParseAccountKind maps the user-facing kind names to AccountKind.
func ParseAccountKind(s string) (AccountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "savings":
		return Savings, nil
	case "checking":
		return Checking, nil
	}
	return 0, fmt.Errorf("unknown account kind %q", s)
}

func (k AccountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *AccountKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	kk, err := ParseAccountKind(s)
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

// Account is a single bank account. Number and Holder are fixed at
// creation; Balance moves only through Deposit and Withdraw. The Ledger
// owning the account serializes all mutation.
type Account struct {
	Number  int64           `json:"account_number"`
	Holder  string          `json:"holder"`
	Kind    AccountKind     `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
}

// Deposit credits amt per the account kind. Savings accounts earn a 3%
// bonus on each deposit; checking accounts are credited the exact amount.
// Deposit never fails; the caller is expected to have validated amt.
func (a *Account) Deposit(amt decimal.Decimal) {
	switch a.Kind {
	case Savings:
		a.Balance = a.Balance.Add(amt).Add(amt.Mul(savingsRate))
	default:
		a.Balance = a.Balance.Add(amt)
	}
}

// Withdraw debits amt unless the resulting balance would breach the
// account's floor: zero for savings, -overdraftLimit for checking. On a
// breach it returns false and leaves the balance untouched.
func (a *Account) Withdraw(amt decimal.Decimal) bool {
	next := a.Balance.Sub(amt)
	if next.LessThan(a.floor()) {
		return false
	}
	a.Balance = next
	return true
}

func (a *Account) floor() decimal.Decimal {
	if a.Kind == Checking {
		return overdraftLimit.Neg()
	}
	return decimal.Zero
}

// Customer groups accounts by owner. Account references are shared with
// the Ledger, which remains the sole owner of account lifetime; the
// customer relation is lookup-only, not exercised by the teller flow.
type Customer struct {
	ID       snowflake.ID `json:"id"`
	Name     string       `json:"name"`
	Accounts []*Account   `json:"accounts"`
}
