// Package layouts holds remittance layouts shipped with the service.
package layouts

import (
	"fmt"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/cnab"
	"github.com/boddenberg/pj-collections-go/internal/domain"
)

const cnab400LineLength = 400

// CNAB400 is a generic 400-column collection layout: one header, one
// detail record per billet and a trailer, named CBDDMMnn.REM. Banks whose
// CNAB 400 differs only in the bank code, bank name and accepted wallets
// can use it as is.
type CNAB400 struct {
	name     string
	bankCode string
	bankName string
	wallets  []string
}

// NewCNAB400 creates the layout registered under name.
func NewCNAB400(name, bankCode, bankName string, wallets []string) *CNAB400 {
	return &CNAB400{name: name, bankCode: bankCode, bankName: bankName, wallets: wallets}
}

func (l *CNAB400) Name() string      { return l.name }
func (l *CNAB400) LineLength() int   { return cnab400LineLength }
func (l *CNAB400) Wallets() []string { return l.wallets }

func (l *CNAB400) RequiredFields() []cnab.Field {
	return []cnab.Field{
		{Name: "bank code", Value: func(*cnab.File) string { return l.bankCode }},
	}
}

func (l *CNAB400) Header(f *cnab.File) (cnab.Record, error) {
	return cnab.Record{
		"0",
		"1",
		"REMESSA",
		"01",
		cnab.Alpha("COBRANCA", 15),
		cnab.Numeric(f.Agency(), 4),
		cnab.Zeros(2),
		cnab.Numeric(f.Account(), 5),
		cnab.Numeric(f.AccountDigit(), 1),
		cnab.Blank(8),
		cnab.Alpha(f.Emitter().Name(), 30),
		cnab.Numeric(l.bankCode, 3),
		cnab.Alpha(l.bankName, 15),
		cnab.Date(f.ShippingDate()),
		cnab.Blank(287),
		cnab.Int(f.ShippingNumber(), 7),
		cnab.Int(f.Sequence(), 6),
	}, nil
}

func (l *CNAB400) Transaction(f *cnab.File, b domain.Billet) ([]cnab.Record, error) {
	if b.OurNumber == "" {
		return nil, &domain.ErrValidation{Field: "ourNumber", Message: "required"}
	}
	if b.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}

	issue := b.IssueDate
	if issue.IsZero() {
		issue = f.ShippingDate()
	}
	first, second := instructions(b.Instructions)

	return []cnab.Record{{
		"1",
		documentKind(f.Emitter()),
		cnab.Numeric(f.Emitter().DocumentNumber(), 14),
		cnab.Numeric(f.Agency(), 4),
		cnab.Zeros(2),
		cnab.Numeric(f.Account(), 5),
		cnab.Numeric(f.AccountDigit(), 1),
		cnab.Blank(4),
		cnab.Zeros(4),
		cnab.Alpha(b.DocumentNumber, 25),
		cnab.Numeric(b.OurNumber, 8),
		cnab.Zeros(13),
		cnab.Numeric(f.Wallet(), 3),
		cnab.Blank(21),
		"01", // occurrence: entry
		cnab.Alpha(b.DocumentNumber, 10),
		cnab.Date(b.DueDate),
		cnab.Money(b.Amount, 13),
		cnab.Numeric(l.bankCode, 3),
		cnab.Zeros(5),
		"01", // species: commercial invoice
		"N",
		cnab.Date(issue),
		first,
		second,
		cnab.Money(b.InterestPerDay, 13),
		cnab.Date(time.Time{}),
		cnab.Money(b.Discount, 13),
		cnab.Zeros(13),
		cnab.Zeros(13),
		documentKind(b.Payer),
		cnab.Numeric(b.Payer.DocumentNumber(), 14),
		cnab.Alpha(b.Payer.Name(), 30),
		cnab.Blank(10),
		cnab.Alpha(b.Payer.Address, 40),
		cnab.Alpha(b.Payer.District, 12),
		cnab.Numeric(b.Payer.ZipCode, 8),
		cnab.Alpha(b.Payer.City(), 15),
		cnab.Alpha(b.Payer.State, 2),
		cnab.Blank(30),
		cnab.Blank(4),
		cnab.Zeros(6),
		"00",
		cnab.Blank(2),
		cnab.Int(f.Sequence(), 6),
	}}, nil
}

func (l *CNAB400) Trailer(f *cnab.File) (cnab.Record, error) {
	return cnab.Record{"9", cnab.Blank(393), cnab.Int(f.Sequence(), 6)}, nil
}

// FileName follows the CBDDMMnn.REM convention; nn is the day count.
func (l *CNAB400) FileName(f *cnab.File, dayCount int) string {
	return fmt.Sprintf("CB%s%02d.REM", f.ShippingDate().Format("0201"), dayCount%100)
}

// documentKind is "01" for CPF and "02" for CNPJ.
func documentKind(a domain.FinancialAgent) string {
	if a != nil && a.DocumentType() == domain.DocumentCNPJ {
		return "02"
	}
	return "01"
}

func instructions(codes []string) (string, string) {
	first, second := cnab.Zeros(2), cnab.Zeros(2)
	if len(codes) > 0 {
		first = cnab.Numeric(codes[0], 2)
	}
	if len(codes) > 1 {
		second = cnab.Numeric(codes[1], 2)
	}
	return first, second
}
