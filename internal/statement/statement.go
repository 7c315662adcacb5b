// Package statement builds the transaction history export the console offers
// as a PDF download. Amounts are shown the way the console always has:
// French number formatting with the dirham currency code.
package statement

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wafr/wafradmin/internal/models"
)

const (
	currencyCode = "MAD"
	dateLayout   = "02/01/2006"
)

// Line is a single statement row with display-ready fields
type Line struct {
	Date        time.Time                `json:"date"`
	Kind        models.TransactionKind   `json:"kind"`
	Status      models.TransactionStatus `json:"status"`
	Description string                   `json:"description"`
	Amount      string                   `json:"amount"`
}

// Statement is the assembled export for one user's history
type Statement struct {
	User        models.User `json:"-"`
	UserName    string      `json:"user_name"`
	UserPhone   string      `json:"user_phone"`
	UserEmail   string      `json:"user_email"`
	Balance     string      `json:"balance"`
	Count       int         `json:"count"`
	PeriodStart time.Time   `json:"period_start"`
	PeriodEnd   time.Time   `json:"period_end"`
	GeneratedAt time.Time   `json:"generated_at"`
	Lines       []Line      `json:"lines"`
}

// Builder formats amounts and assembles statements. Safe for concurrent use.
type Builder struct {
	printer *message.Printer
	unit    currency.Unit
}

func NewBuilder() (*Builder, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("can't parse currency code %q: %w", currencyCode, err)
	}

	return &Builder{
		printer: message.NewPrinter(language.French),
		unit:    unit,
	}, nil
}

// FormatAmount renders a decimal amount with two fraction digits, localized
// digit grouping and the fixed currency code
func (b *Builder) FormatAmount(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return b.printer.Sprintf("%.2f %s", value, b.unit)
}

// Build assembles a statement for the user. Transactions are expected newest
// first, which is how the query layer hands them over; the period runs from
// the oldest to the newest entry.
func (b *Builder) Build(user models.User, txs []models.Transaction) Statement {
	st := Statement{
		User:        user,
		UserName:    user.Name,
		UserPhone:   user.Phone,
		UserEmail:   user.Email,
		Balance:     b.FormatAmount(user.Balance),
		Count:       len(txs),
		GeneratedAt: time.Now(),
		Lines:       make([]Line, 0, len(txs)),
	}

	if len(txs) > 0 {
		st.PeriodEnd = txs[0].Date
		st.PeriodStart = txs[len(txs)-1].Date
	}

	for _, tx := range txs {
		st.Lines = append(st.Lines, Line{
			Date:        tx.Date,
			Kind:        tx.Kind,
			Status:      tx.Status,
			Description: tx.Description,
			Amount:      b.FormatAmount(tx.Amount),
		})
	}

	return st
}

// Render writes the statement as a plain text document. The console only ever
// simulated the PDF rendering step; the text document is the real artifact.
func (b *Builder) Render(w io.Writer, st Statement) error {
	write := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}

	if err := write("Relevé de transactions WafR\n\n"); err != nil {
		return err
	}
	if err := write("Utilisateur: %s\nTéléphone: %s\nEmail: %s\n", st.UserName, st.UserPhone, st.UserEmail); err != nil {
		return err
	}
	if err := write("Solde actuel: %s\n", st.Balance); err != nil {
		return err
	}
	if st.Count > 0 {
		if err := write("Période: %s - %s\n", st.PeriodStart.Format(dateLayout), st.PeriodEnd.Format(dateLayout)); err != nil {
			return err
		}
	}
	if err := write("Transactions: %d\n\n", st.Count); err != nil {
		return err
	}

	for _, line := range st.Lines {
		if err := write("%s  %-10s  %-9s  %-25s  %s\n",
			line.Date.Format(dateLayout), line.Kind, line.Status, line.Description, line.Amount); err != nil {
			return err
		}
	}

	if err := write("\nGénéré le %s\n", st.GeneratedAt.Format(dateLayout)); err != nil {
		return err
	}

	return nil
}
