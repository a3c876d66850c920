package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/boddenberg/pj-collections-go/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	out, err := run(t, "generate",
		"--name", "LOJA TESTE",
		"--city", "SAO PAULO",
		"--key", "11144477735",
		"--amount", "10",
		"--description", "Pagamento",
		"--txid", "ABC123",
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "00020126460014br.gov.bcb.pix0111111444777350209Pagamento" +
		"520400005303986540510.005802BR5910LOJA TESTE6009SAO PAULO" +
		"62100506ABC1236304E3F9"
	if strings.TrimSpace(out) != want {
		t.Errorf("unexpected output\nwant %s\ngot  %s", want, out)
	}
}

func TestGenerate_JSON(t *testing.T) {
	out, err := run(t, "generate", "--name", "LOJA", "--city", "RIO", "--key", "k", "--json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var code domain.BRCode
	if err := json.Unmarshal([]byte(out), &code); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if code.TransactionID != "***" {
		t.Errorf("expected static txid, got %s", code.TransactionID)
	}
}

func TestGenerate_RequiresName(t *testing.T) {
	if _, err := run(t, "generate", "--city", "RIO", "--key", "k"); err == nil {
		t.Fatal("expected missing --name to fail")
	}
}

func TestGenerate_ValidationError(t *testing.T) {
	_, err := run(t, "generate", "--name", "LOJA", "--city", "RIO")
	if err == nil || !strings.Contains(err.Error(), "pixKey") {
		t.Fatalf("expected key-or-url validation error, got %v", err)
	}
}
