package pix_test

import (
	"testing"

	"github.com/boddenberg/pj-collections-go/internal/pix"
)

func TestChecksum_ReferenceVector(t *testing.T) {
	if got := pix.Checksum([]byte("123456789")); got != 0x29B1 {
		t.Errorf("expected 0x29B1, got 0x%04X", got)
	}
}

func TestChecksum_Empty(t *testing.T) {
	if got := pix.Checksum(nil); got != 0xFFFF {
		t.Errorf("expected initial register 0xFFFF for empty input, got 0x%04X", got)
	}
}

func TestChecksumHex_UppercasePadded(t *testing.T) {
	got := pix.ChecksumHex("123456789")
	if got != "29B1" {
		t.Errorf("expected '29B1', got '%s'", got)
	}
	if len(pix.ChecksumHex("")) != 4 {
		t.Error("expected 4 hex digits")
	}
}
