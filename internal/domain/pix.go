package domain

import (
	"fmt"
	"math"
)

// ============================================================
// PIX payment description
// ============================================================

// Cents is a BRL amount in centavos. It keeps the two fractional digits
// exact all the way to the BR Code.
type Cents int64

// MaxAmount is the largest amount a BR Code carries: tag 54 holds at most
// 13 characters ("9999999999.99").
const MaxAmount Cents = 999_999_999_999

// CentsFromFloat converts a decimal amount in reais, rounding half away
// from zero. NaN, infinities and values outside the int64 range fail with
// *ErrValidation instead of wrapping.
func CentsFromFloat(v float64) (Cents, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ErrValidation{Field: "amount", Message: "must be a finite number"}
	}
	r := math.Round(v * 100)
	if r >= math.MaxInt64 || r < math.MinInt64 {
		return 0, &ErrValidation{Field: "amount", Message: "out of range"}
	}
	return Cents(r), nil
}

// String renders the amount with exactly two decimals, no thousands
// separator ("10.00").
func (c Cents) String() string {
	sign := ""
	u := uint64(c)
	if c < 0 {
		sign = "-"
		u = -u
	}
	return fmt.Sprintf("%s%d.%02d", sign, u/100, u%100)
}

// Payload describes one PIX payment. It is a plain value; the builder
// never mutates it.
type Payload struct {
	Amount        Cents
	Description   string
	TransactionID string
	Emitter       FinancialAgent
	UniquePayment bool
	URL           string
}

// ============================================================
// BR Code API types
// ============================================================

// BRCodeRequest is the body for POST /v1/pix/brcode.
type BRCodeRequest struct {
	IdempotencyKey string  `json:"idempotencyKey,omitempty"`
	Emitter        Agent   `json:"emitter"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description,omitempty"`
	TransactionID  string  `json:"transactionId,omitempty"`
	UniquePayment  bool    `json:"uniquePayment"`
	URL            string  `json:"url,omitempty"`
}

// Payload maps the request to the builder input.
func (r *BRCodeRequest) Payload() (Payload, error) {
	amount, err := CentsFromFloat(r.Amount)
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		Amount:        amount,
		Description:   r.Description,
		TransactionID: r.TransactionID,
		Emitter:       r.Emitter,
		UniquePayment: r.UniquePayment,
		URL:           r.URL,
	}, nil
}

// BRCode is a generated PIX copy-and-paste string.
type BRCode struct {
	Payload       string `json:"payload"`
	TransactionID string `json:"transactionId"`
	Amount        string `json:"amount"`
	CRC           string `json:"crc"`
	CreatedAt     string `json:"createdAt"`
}

// BRCodeBatchResponse is returned by POST /v1/pix/brcode/batch.
type BRCodeBatchResponse struct {
	Items []BRCode `json:"items"`
}
