package service_test

import (
	"fmt"

	"github.com/boddenberg/pj-collections-go/internal/cnab"
	"github.com/boddenberg/pj-collections-go/internal/domain"
)

// testLayout is a 40-column layout used to drive the service.
type testLayout struct{}

func (testLayout) Name() string                 { return "testbank-40" }
func (testLayout) LineLength() int              { return 40 }
func (testLayout) Wallets() []string            { return []string{"17"} }
func (testLayout) RequiredFields() []cnab.Field { return nil }

func (testLayout) Header(f *cnab.File) (cnab.Record, error) {
	return cnab.Record{
		"0",
		cnab.Alpha(f.Emitter().Name(), 20),
		cnab.Int(f.ShippingNumber(), 7),
		cnab.Date(f.ShippingDate()),
		cnab.Int(f.Sequence(), 6),
	}, nil
}

func (testLayout) Transaction(f *cnab.File, b domain.Billet) ([]cnab.Record, error) {
	return []cnab.Record{{
		"1",
		cnab.Numeric(b.OurNumber, 10),
		cnab.Money(b.Amount, 13),
		cnab.Blank(10),
		cnab.Int(f.Sequence(), 6),
	}}, nil
}

func (testLayout) Trailer(f *cnab.File) (cnab.Record, error) {
	return cnab.Record{"9", cnab.Blank(33), cnab.Int(f.Sequence(), 6)}, nil
}

func (testLayout) FileName(f *cnab.File, dayCount int) string {
	return fmt.Sprintf("TB%s%02d.REM", f.ShippingDate().Format("0201"), dayCount)
}
