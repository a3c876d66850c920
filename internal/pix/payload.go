package pix

import (
	"fmt"
	"strings"

	"github.com/boddenberg/pj-collections-go/internal/domain"
)

// Top-level field IDs.
const (
	idPayloadFormatIndicator      = "00"
	idPointOfInitiationMethod     = "01"
	idMerchantAccountInformation  = "26"
	idMerchantCategoryCode        = "52"
	idTransactionCurrency         = "53"
	idTransactionAmount           = "54"
	idCountryCode                 = "58"
	idMerchantName                = "59"
	idMerchantCity                = "60"
	idAdditionalDataFieldTemplate = "62"
	idCRC16                       = "63"
)

// Merchant Account Information sub-field IDs.
const (
	idMerchantAccountGUI         = "00"
	idMerchantAccountKey         = "01"
	idMerchantAccountDescription = "02"
	idMerchantAccountURL         = "25"
)

// Additional Data Field Template sub-field IDs.
const idAdditionalDataTxID = "05"

const (
	payloadFormatIndicator = "01"
	uniquePaymentMethod    = "12"
	merchantAccountGUI     = "br.gov.bcb.pix"
	merchantCategoryCode   = "0000"
	currencyBRL            = "986"
	countryCode            = "BR"

	// crcHeader is the CRC field's own tag and length. It is hashed
	// together with the payload; the checksum value is not.
	crcHeader = idCRC16 + "04"
)

// Build encodes p into a BR Code string. Fields are emitted in the order
// PIX readers expect and the string ends with "6304" plus the CRC16 of
// everything before it.
//
// Build does not check business completeness (emitter name, city); callers
// validate before building.
func Build(p domain.Payload) (string, error) {
	var b strings.Builder

	emit := func(name, tag, value string) error {
		f, err := Encode(tag, value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		b.WriteString(f)
		return nil
	}

	if err := emit("payload format indicator", idPayloadFormatIndicator, payloadFormatIndicator); err != nil {
		return "", err
	}
	if p.UniquePayment {
		if err := emit("point of initiation method", idPointOfInitiationMethod, uniquePaymentMethod); err != nil {
			return "", err
		}
	}

	account, err := merchantAccountInformation(p)
	if err != nil {
		return "", err
	}
	if err := emit("merchant account information", idMerchantAccountInformation, account); err != nil {
		return "", err
	}

	var name, city string
	if p.Emitter != nil {
		name, city = p.Emitter.Name(), p.Emitter.City()
	}

	fields := []struct{ name, tag, value string }{
		{"merchant category code", idMerchantCategoryCode, merchantCategoryCode},
		{"transaction currency", idTransactionCurrency, currencyBRL},
		{"transaction amount", idTransactionAmount, p.Amount.String()},
		{"country code", idCountryCode, countryCode},
		{"merchant name", idMerchantName, name},
		{"merchant city", idMerchantCity, city},
	}
	for _, f := range fields {
		if err := emit(f.name, f.tag, f.value); err != nil {
			return "", err
		}
	}

	additional, err := additionalDataFieldTemplate(p)
	if err != nil {
		return "", err
	}
	if err := emit("additional data field template", idAdditionalDataFieldTemplate, additional); err != nil {
		return "", err
	}

	b.WriteString(crcHeader)
	b.WriteString(ChecksumHex(b.String()))
	return b.String(), nil
}

// merchantAccountInformation builds the value of field 26. Only the GUI is
// mandatory; the key, description and URL are skipped when empty.
func merchantAccountInformation(p domain.Payload) (string, error) {
	var key string
	if p.Emitter != nil {
		key = p.Emitter.PixKey()
	}

	subfields := []struct{ name, tag, value string }{
		{"gui", idMerchantAccountGUI, merchantAccountGUI},
		{"pix key", idMerchantAccountKey, key},
		{"description", idMerchantAccountDescription, p.Description},
		{"url", idMerchantAccountURL, stripScheme(p.URL)},
	}

	var b strings.Builder
	for _, f := range subfields {
		if f.value == "" {
			continue
		}
		enc, err := Encode(f.tag, f.value)
		if err != nil {
			return "", fmt.Errorf("merchant account %s: %w", f.name, err)
		}
		b.WriteString(enc)
	}
	return b.String(), nil
}

// additionalDataFieldTemplate builds the value of field 62. The txid
// sub-field is always present, even when empty.
func additionalDataFieldTemplate(p domain.Payload) (string, error) {
	txid, err := Encode(idAdditionalDataTxID, p.TransactionID)
	if err != nil {
		return "", fmt.Errorf("transaction id: %w", err)
	}
	return txid, nil
}

func stripScheme(url string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if len(url) >= len(scheme) && strings.EqualFold(url[:len(scheme)], scheme) {
			return url[len(scheme):]
		}
	}
	return url
}
