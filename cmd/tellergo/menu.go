package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hmbarra/tellergo"
)

const menuText = `
--- tellergo ---
1) Create account
2) Deposit
3) Withdraw
4) View balance
5) List transactions
6) Exit
Choose an option: `

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive teller menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

			ledger, err := tellergo.NewLedger()
			if err != nil {
				return err
			}
			var svc tellergo.Service = tellergo.NewService(ledger, &logger)
			svc = tellergo.NewValidationMiddleware(ledger)(svc)

			return runMenu(os.Stdin, os.Stdout, svc)
		},
	}
}

// runMenu drives the teller loop. It only translates keystrokes into
// service calls and prints the results; malformed input is reported and
// re-prompted here, never handed to the core.
func runMenu(in io.Reader, out io.Writer, svc tellergo.Service) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, menuText)
		if !sc.Scan() {
			return sc.Err()
		}
		switch strings.TrimSpace(sc.Text()) {
		case "1":
			menuCreateAccount(sc, out, svc)
		case "2":
			menuCharge(sc, out, "Deposit amount: ", svc.Deposit)
		case "3":
			menuCharge(sc, out, "Withdrawal amount: ", svc.Withdraw)
		case "4":
			menuBalance(sc, out, svc)
		case "5":
			menuTransactions(out, svc)
		case "6":
			fmt.Fprintln(out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice.")
		}
	}
}

func menuCreateAccount(sc *bufio.Scanner, out io.Writer, svc tellergo.Service) {
	kindStr, ok := prompt(sc, out, "Account kind (savings/checking): ")
	if !ok {
		return
	}
	kind, err := tellergo.ParseAccountKind(kindStr)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	number, ok := promptInt(sc, out, "Account number: ")
	if !ok {
		return
	}
	holder, ok := prompt(sc, out, "Holder name: ")
	if !ok {
		return
	}
	balance, ok := promptDecimal(sc, out, "Initial balance: ")
	if !ok {
		return
	}

	acct, err := svc.CreateAccount(tellergo.CreateAccountReq{
		Number:         number,
		Holder:         holder,
		Kind:           kind,
		InitialBalance: balance,
	})
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprintf(out, "Created %s account %d for %s with balance %s.\n",
		acct.Kind, acct.Number, acct.Holder, acct.Balance)
}

func menuCharge(sc *bufio.Scanner, out io.Writer, amountPrompt string, op func(tellergo.ChargeReq) (*decimal.Decimal, error)) {
	number, ok := promptInt(sc, out, "Account number: ")
	if !ok {
		return
	}
	amount, ok := promptDecimal(sc, out, amountPrompt)
	if !ok {
		return
	}
	bal, err := op(tellergo.ChargeReq{Number: number, Amount: amount})
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprintf(out, "Done. New balance: %s\n", bal)
}

func menuBalance(sc *bufio.Scanner, out io.Writer, svc tellergo.Service) {
	number, ok := promptInt(sc, out, "Account number: ")
	if !ok {
		return
	}
	bal, err := svc.Balance(tellergo.BalanceReq{Number: number})
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprintf(out, "Balance: %s\n", bal)
}

func menuTransactions(out io.Writer, svc tellergo.Service) {
	txns, err := svc.Transactions()
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if len(txns) == 0 {
		fmt.Fprintln(out, "No transactions yet.")
		return
	}
	for _, t := range txns {
		fmt.Fprintf(out, "#%d  %s  %s  account %d  amount %s\n",
			t.ID, t.Time.Format("2006-01-02 15:04:05"), t.Kind, t.AccountNumber, t.Amount)
	}
}

func prompt(sc *bufio.Scanner, out io.Writer, msg string) (string, bool) {
	fmt.Fprint(out, msg)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func promptInt(sc *bufio.Scanner, out io.Writer, msg string) (int64, bool) {
	for {
		s, ok := prompt(sc, out, msg)
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			fmt.Fprintln(out, "Please enter a whole number.")
			continue
		}
		return n, true
	}
}

func promptDecimal(sc *bufio.Scanner, out io.Writer, msg string) (decimal.Decimal, bool) {
	for {
		s, ok := prompt(sc, out, msg)
		if !ok {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			fmt.Fprintln(out, "Please enter a valid amount.")
			continue
		}
		return d, true
	}
}
