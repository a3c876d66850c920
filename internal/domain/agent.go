package domain

import "strings"

// FinancialAgent identifies the emitter or payer of a payment instrument.
// Implementations are read-only for the duration of an encoding call.
type FinancialAgent interface {
	Name() string
	City() string
	DocumentNumber() string
	DocumentType() string
	PixKey() string
}

// Agent is the concrete FinancialAgent used by the API and the CLI.
type Agent struct {
	FullName string `json:"name"`
	CityName string `json:"city"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	Address  string `json:"address,omitempty"`
	District string `json:"district,omitempty"`
	Document string `json:"document,omitempty"`
	Key      string `json:"pixKey,omitempty"`
}

func (a Agent) Name() string   { return a.FullName }
func (a Agent) City() string   { return a.CityName }
func (a Agent) PixKey() string { return a.Key }

// DocumentNumber returns the document with punctuation removed.
func (a Agent) DocumentNumber() string {
	return onlyDigits(a.Document)
}

// DocumentType returns "cpf" or "cnpj" based on the digit count, or "" when
// the document is missing or malformed.
func (a Agent) DocumentType() string {
	switch len(a.DocumentNumber()) {
	case 11:
		return DocumentCPF
	case 14:
		return DocumentCNPJ
	}
	return ""
}

// Document types.
const (
	DocumentCPF  = "cpf"
	DocumentCNPJ = "cnpj"
)

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
