package cnab_test

import (
	"errors"
	"fmt"

	"github.com/boddenberg/pj-collections-go/internal/cnab"
	"github.com/boddenberg/pj-collections-go/internal/domain"
)

// testLayout is a 60-column layout used to exercise the framework.
type testLayout struct{}

func (testLayout) Name() string      { return "testbank-60" }
func (testLayout) LineLength() int   { return 60 }
func (testLayout) Wallets() []string { return []string{"109", "112"} }

func (testLayout) RequiredFields() []cnab.Field {
	return []cnab.Field{{Name: "covenant", Value: (*cnab.File).Covenant}}
}

func (testLayout) Header(f *cnab.File) (cnab.Record, error) {
	return cnab.Record{
		"0",
		"1",
		"REMESSA",
		cnab.Numeric(f.Agency(), 4),
		cnab.Numeric(f.Account(), 8),
		cnab.Alpha(f.Emitter().Name(), 20),
		cnab.Date(f.ShippingDate()),
		cnab.Int(f.ShippingNumber(), 7),
		cnab.Int(f.Sequence(), 6),
	}, nil
}

func (testLayout) Transaction(f *cnab.File, b domain.Billet) ([]cnab.Record, error) {
	if b.OurNumber == "" {
		return nil, errors.New("our number is required")
	}
	records := []cnab.Record{{
		"1",
		cnab.Numeric(b.OurNumber, 10),
		cnab.Alpha(b.DocumentNumber, 10),
		cnab.Date(b.DueDate),
		cnab.Money(b.Amount, 13),
		cnab.Alpha(b.Payer.Name(), 13),
		cnab.Blank(1),
		cnab.Int(f.Sequence(), 6),
	}}
	if msg := b.Fields["message"]; msg != "" {
		records = append(records, cnab.Record{
			"2",
			cnab.Alpha(msg, 53),
			cnab.Int(f.Sequence()+1, 6),
		})
	}
	return records, nil
}

func (testLayout) Trailer(f *cnab.File) (cnab.Record, error) {
	return cnab.Record{
		"9",
		cnab.Int(f.Count(), 6),
		cnab.Blank(47),
		cnab.Int(f.Sequence(), 6),
	}, nil
}

func (testLayout) FileName(f *cnab.File, dayCount int) string {
	return fmt.Sprintf("CB%s%02d.REM", f.ShippingDate().Format("0201"), dayCount)
}

// shortHeaderLayout writes a header one column short.
type shortHeaderLayout struct{ testLayout }

func (shortHeaderLayout) Header(f *cnab.File) (cnab.Record, error) {
	return cnab.Record{"0", cnab.Blank(58)}, nil
}
