package pix_test

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/pix"
)

type tlv struct {
	tag   string
	value string
}

// splitTLV walks a flat TLV string. It fails the test on malformed input.
func splitTLV(t *testing.T, s string) []tlv {
	t.Helper()
	var out []tlv
	for len(s) > 0 {
		if len(s) < 4 {
			t.Fatalf("truncated field: %q", s)
		}
		n, err := strconv.Atoi(s[2:4])
		if err != nil {
			t.Fatalf("bad length in %q: %v", s, err)
		}
		if len(s) < 4+n {
			t.Fatalf("value overflows input: %q", s)
		}
		out = append(out, tlv{tag: s[:2], value: s[4 : 4+n]})
		s = s[4+n:]
	}
	return out
}

func tags(fields []tlv) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.tag
	}
	return out
}

func storePayload() domain.Payload {
	return domain.Payload{
		Amount:        1000,
		Description:   "Pagamento",
		TransactionID: "ABC123",
		Emitter: domain.Agent{
			FullName: "LOJA TESTE",
			CityName: "SAO PAULO",
			Key:      "11144477735",
		},
	}
}

func TestBuild_StaticPayload(t *testing.T) {
	got, err := pix.Build(storePayload())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "00020126460014br.gov.bcb.pix0111111444777350209Pagamento" +
		"520400005303986540510.005802BR5910LOJA TESTE6009SAO PAULO" +
		"62100506ABC1236304E3F9"
	if got != want {
		t.Errorf("unexpected BR Code\nwant %s\ngot  %s", want, got)
	}
}

func TestBuild_FieldOrder(t *testing.T) {
	got, err := pix.Build(storePayload())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	fields := splitTLV(t, got)
	wantTags := []string{"00", "26", "52", "53", "54", "58", "59", "60", "62", "63"}
	if strings.Join(tags(fields), ",") != strings.Join(wantTags, ",") {
		t.Fatalf("expected tags %v, got %v", wantTags, tags(fields))
	}

	account := splitTLV(t, fields[1].value)
	if strings.Join(tags(account), ",") != "00,01,02" {
		t.Errorf("expected merchant account tags 00,01,02, got %v", tags(account))
	}
	if account[0].value != "br.gov.bcb.pix" {
		t.Errorf("expected GUI br.gov.bcb.pix, got '%s'", account[0].value)
	}

	if fields[3].value != "986" {
		t.Errorf("expected currency '986', got '%s'", fields[3].value)
	}
	if fields[4].value != "10.00" {
		t.Errorf("expected amount '10.00', got '%s'", fields[4].value)
	}

	additional := splitTLV(t, fields[8].value)
	if len(additional) != 1 || additional[0].tag != "05" || additional[0].value != "ABC123" {
		t.Errorf("expected single txid sub-field, got %+v", additional)
	}
}

func TestBuild_UniquePayment(t *testing.T) {
	p := storePayload()

	without, err := pix.Build(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, f := range splitTLV(t, without) {
		if f.tag == "01" {
			t.Fatal("expected no point of initiation field when uniquePayment is false")
		}
	}

	p.UniquePayment = true
	with, err := pix.Build(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(with, "000201"+"010212") {
		t.Errorf("expected '010212' right after the format indicator, got '%s'", with[:12])
	}
}

func TestBuild_DynamicURL(t *testing.T) {
	p := domain.Payload{
		TransactionID: "***",
		UniquePayment: true,
		URL:           "https://pix.example.com/qr/v2/9d36b84f",
		Emitter:       domain.Agent{FullName: "LOJA TESTE", CityName: "SAO PAULO"},
	}

	got, err := pix.Build(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "00020101021226520014br.gov.bcb.pix2530pix.example.com/qr/v2/9d36b84f" +
		"52040000530398654040.005802BR5910LOJA TESTE6009SAO PAULO62070503***6304E855"
	if got != want {
		t.Errorf("unexpected BR Code\nwant %s\ngot  %s", want, got)
	}
}

func TestBuild_SkipsEmptyMerchantSubfields(t *testing.T) {
	p := storePayload()
	p.Description = ""
	p.Emitter = domain.Agent{FullName: "LOJA TESTE", CityName: "SAO PAULO"}

	got, err := pix.Build(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	account := splitTLV(t, splitTLV(t, got)[1].value)
	if len(account) != 1 || account[0].tag != "00" {
		t.Errorf("expected only the GUI sub-field, got %+v", account)
	}
}

func TestBuild_EmptyTransactionIDStillEmitted(t *testing.T) {
	p := storePayload()
	p.TransactionID = ""

	got, err := pix.Build(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(got, "62040500") {
		t.Errorf("expected empty txid field '62040500' in '%s'", got)
	}
}

func TestBuild_CRCSelfConsistent(t *testing.T) {
	trailer := regexp.MustCompile(`6304[0-9A-F]{4}$`)

	payloads := []domain.Payload{storePayload()}
	p := storePayload()
	p.UniquePayment = true
	p.Amount = 123456789
	payloads = append(payloads, p)

	for _, p := range payloads {
		got, err := pix.Build(p)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !trailer.MatchString(got) {
			t.Fatalf("expected CRC trailer, got '%s'", got)
		}
		body, crc := got[:len(got)-4], got[len(got)-4:]
		if pix.ChecksumHex(body) != crc {
			t.Errorf("CRC mismatch: computed %s, embedded %s", pix.ChecksumHex(body), crc)
		}
	}
}

func TestBuild_OversizedFieldFails(t *testing.T) {
	p := storePayload()
	p.Emitter = domain.Agent{FullName: strings.Repeat("N", 100), CityName: "SAO PAULO"}

	_, err := pix.Build(p)
	var exceeded *domain.ErrFieldLengthExceeded
	if !errors.As(err, &exceeded) {
		t.Fatalf("expected ErrFieldLengthExceeded, got %v", err)
	}
	if exceeded.Tag != "59" {
		t.Errorf("expected tag 59, got %s", exceeded.Tag)
	}
}

func TestBuild_OversizedCompositeFails(t *testing.T) {
	p := storePayload()
	// Each sub-field fits, but the encoded field 26 does not.
	p.Description = strings.Repeat("d", 80)

	_, err := pix.Build(p)
	var exceeded *domain.ErrFieldLengthExceeded
	if !errors.As(err, &exceeded) {
		t.Fatalf("expected ErrFieldLengthExceeded, got %v", err)
	}
	if exceeded.Tag != "26" {
		t.Errorf("expected tag 26, got %s", exceeded.Tag)
	}
}
