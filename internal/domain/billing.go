package domain

import "time"

// ============================================================
// Billets (boletos) consumed by remittance layouts
// ============================================================

// Billet carries the values a bank layout needs to write one transaction
// record. Barcodes, digitable lines and check digits are computed
// upstream; layouts only place these values.
type Billet struct {
	OurNumber      string            `json:"ourNumber"`
	DocumentNumber string            `json:"documentNumber"`
	IssueDate      time.Time         `json:"issueDate"`
	DueDate        time.Time         `json:"dueDate"`
	Amount         Cents             `json:"amount"`
	FineAmount     Cents             `json:"fineAmount,omitempty"`
	InterestPerDay Cents             `json:"interestPerDay,omitempty"`
	Discount       Cents             `json:"discount,omitempty"`
	Instructions   []string          `json:"instructions,omitempty"`
	Payer          Agent             `json:"payer"`
	Fields         map[string]string `json:"fields,omitempty"`
}

// ============================================================
// Remittance API types
// ============================================================

// RemittanceRequest is the body for POST /v1/remittances/{bank}.
type RemittanceRequest struct {
	Emitter        Agent     `json:"emitter"`
	Wallet         string    `json:"wallet"`
	Agency         string    `json:"agency"`
	Account        string    `json:"account"`
	AccountDigit   string    `json:"accountDigit,omitempty"`
	Covenant       string    `json:"covenant,omitempty"`
	ShippingNumber int       `json:"shippingNumber"`
	ShippingDate   time.Time `json:"shippingDate,omitempty"`
	DayCount       int       `json:"dayCount"`
	Billets        []Billet  `json:"billets"`
}

// Remittance describes a generated and saved remittance file.
type Remittance struct {
	Bank       string `json:"bank"`
	FileName   string `json:"fileName"`
	Path       string `json:"path"`
	ArchiveURL string `json:"archiveUrl,omitempty"`
	Billets    int    `json:"billets"`
	Bytes      int    `json:"bytes"`
	Content    string `json:"content,omitempty"`
}
