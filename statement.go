package tellergo

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// writeStatement renders a PDF statement for one account: a header with
// the holder and current balance, then the account's ledger entries in
// append order.
func writeStatement(w io.Writer, acct *Account, txns []Transaction) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Account Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Account statement: %s (account %d)", acct.Holder, acct.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Kind: %s", acct.Kind), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Balance: %s", acct.Balance.String()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(txns) == 0 {
		pdf.CellFormat(0, 7, "No transactions recorded.", "", 1, "L", false, 0, "")
		return pdf.Output(w)
	}

	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{15, 40, 25, 30, 80}
	headers := []string{"ID", "Time", "Kind", "Amount", "Reference"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range txns {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(t.ID, 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[1], 6, t.Time.Format("2006-01-02 15:04:05"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, t.Kind.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, t.Amount.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, t.Ref.String(), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
