// Package cnab provides the bank-independent part of CNAB remittance files:
// fixed-width record composition, required-field checks, sequential record
// numbering and persistence. Bank layouts plug in through Layout.
package cnab

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/domain"
)

// DefaultEOL terminates every record unless Config.EOL is set.
const DefaultEOL = "\n"

// Record is the ordered list of pre-formatted fields of one line.
type Record []string

// Field is a named accessor checked by (*File).IsValid.
type Field struct {
	Name  string
	Value func(f *File) string
}

// Layout is the bank-specific half of a remittance file.
type Layout interface {
	// Name identifies the bank layout, e.g. "itau-400".
	Name() string
	// LineLength is the fixed size of every record (240 or 400).
	LineLength() int
	// Wallets lists the wallet codes the bank accepts.
	Wallets() []string
	// RequiredFields are checked after the framework's own fields.
	RequiredFields() []Field
	Header(f *File) (Record, error)
	// Transaction returns one or more records for a billet.
	Transaction(f *File, b domain.Billet) ([]Record, error)
	Trailer(f *File) (Record, error)
	// FileName names the file; dayCount disambiguates same-day files.
	FileName(f *File, dayCount int) string
}

// Config holds the parameters of one remittance file.
type Config struct {
	Emitter        domain.FinancialAgent
	Wallet         string
	Agency         string
	Account        string
	AccountDigit   string
	Covenant       string
	ShippingNumber int
	ShippingDate   time.Time
	EOL            string
	// EOF is written after the last record (some banks expect "\x1a").
	EOF string
}

// File is one remittance file. It is not safe for concurrent use; build
// one File per generation request.
type File struct {
	layout       Layout
	cfg          Config
	required     []Field
	transactions []string
	billets      int
	seq          int
}

// NewFile validates cfg against layout. A wallet outside the layout's
// allowed set fails immediately with *domain.ErrInvalidWallet.
func NewFile(layout Layout, cfg Config) (*File, error) {
	if cfg.Wallet != "" && !slices.Contains(layout.Wallets(), cfg.Wallet) {
		return nil, &domain.ErrInvalidWallet{Bank: layout.Name(), Wallet: cfg.Wallet, Allowed: layout.Wallets()}
	}
	if cfg.ShippingDate.IsZero() {
		cfg.ShippingDate = time.Now()
	}
	if cfg.EOL == "" {
		cfg.EOL = DefaultEOL
	}

	f := &File{layout: layout, cfg: cfg}
	f.required = append(baseRequired(), layout.RequiredFields()...)
	return f, nil
}

func baseRequired() []Field {
	return []Field{
		{Name: "emitter name", Value: func(f *File) string { return agentValue(f.cfg.Emitter, domain.FinancialAgent.Name) }},
		{Name: "emitter document", Value: func(f *File) string {
			return agentValue(f.cfg.Emitter, domain.FinancialAgent.DocumentNumber)
		}},
		{Name: "wallet", Value: (*File).Wallet},
		{Name: "agency", Value: (*File).Agency},
		{Name: "account", Value: (*File).Account},
		{Name: "shipping number", Value: func(f *File) string {
			if f.cfg.ShippingNumber <= 0 {
				return ""
			}
			return strconv.Itoa(f.cfg.ShippingNumber)
		}},
	}
}

func agentValue(a domain.FinancialAgent, get func(domain.FinancialAgent) string) string {
	if a == nil {
		return ""
	}
	return get(a)
}

func (f *File) Emitter() domain.FinancialAgent { return f.cfg.Emitter }
func (f *File) Wallet() string                 { return f.cfg.Wallet }
func (f *File) Agency() string                 { return f.cfg.Agency }
func (f *File) Account() string                { return f.cfg.Account }
func (f *File) AccountDigit() string           { return f.cfg.AccountDigit }
func (f *File) Covenant() string               { return f.cfg.Covenant }
func (f *File) ShippingNumber() int            { return f.cfg.ShippingNumber }
func (f *File) ShippingDate() time.Time        { return f.cfg.ShippingDate }
func (f *File) Layout() Layout                 { return f.layout }

// Sequence is the record number of the record being built: 1 for the
// header, then one per transaction record. Layouts writing several
// records per billet number them Sequence(), Sequence()+1, ...
func (f *File) Sequence() int { return f.seq }

// Count is the number of billets added so far.
func (f *File) Count() int { return f.billets }

// Records is the total number of records in the generated file, header
// and trailer included.
func (f *File) Records() int { return len(f.transactions) + 2 }

// AddBillet composes the transaction records of b and appends them.
func (f *File) AddBillet(b domain.Billet) error {
	f.seq = len(f.transactions) + 2

	records, err := f.layout.Transaction(f, b)
	if err != nil {
		return fmt.Errorf("billet %s: %w", b.OurNumber, err)
	}

	lines := make([]string, 0, len(records))
	for i, r := range records {
		line, err := composeRecord(fmt.Sprintf("transaction %d", f.seq+i), r, f.layout.LineLength())
		if err != nil {
			return fmt.Errorf("billet %s: %w", b.OurNumber, err)
		}
		lines = append(lines, line)
	}

	f.transactions = append(f.transactions, lines...)
	f.billets++
	return nil
}

// IsValid reports whether every required field is set. It stops at the
// first empty field and returns a message naming it. The check is
// advisory: Generate does not call it.
func (f *File) IsValid() (bool, []string) {
	for _, field := range f.required {
		if strings.TrimSpace(field.Value(f)) == "" {
			return false, []string{fmt.Sprintf("required field %q is empty", field.Name)}
		}
	}
	return true, nil
}

// Generate renders header, transactions and trailer, each terminated by
// the configured EOL. It is deterministic for a given set of billets.
func (f *File) Generate() (string, error) {
	size := f.layout.LineLength()

	f.seq = 1
	header, err := f.layout.Header(f)
	if err != nil {
		return "", fmt.Errorf("header: %w", err)
	}
	headerLine, err := composeRecord("header", header, size)
	if err != nil {
		return "", err
	}

	f.seq = len(f.transactions) + 2
	trailer, err := f.layout.Trailer(f)
	if err != nil {
		return "", fmt.Errorf("trailer: %w", err)
	}
	trailerLine, err := composeRecord("trailer", trailer, size)
	if err != nil {
		return "", err
	}

	eol := f.cfg.EOL
	var b strings.Builder
	b.Grow((size + len(eol)) * f.Records())
	b.WriteString(headerLine)
	b.WriteString(eol)
	for _, line := range f.transactions {
		b.WriteString(line)
		b.WriteString(eol)
	}
	b.WriteString(trailerLine)
	b.WriteString(eol)
	b.WriteString(f.cfg.EOF)

	return b.String(), nil
}

// Save generates the file and writes it to dir under the layout's file
// name. The size on disk is checked against the generated content. An
// existing file with the same name is left untouched and reported as
// *domain.ErrConflict; callers pick another day count.
func (f *File) Save(dir string, dayCount int) (string, error) {
	content, err := f.Generate()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to ensure remittance dir %q: %w", dir, err)
	}

	path := filepath.Join(dir, filepath.Base(f.layout.FileName(f, dayCount)))
	if err := writeFile(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// fileHandle is the part of *os.File that Save uses.
type fileHandle interface {
	io.StringWriter
	Sync() error
	Stat() (os.FileInfo, error)
	Close() error
}

// openFile creates path and fails if it already exists.
var openFile = func(path string) (fileHandle, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	return fh, nil
}

// writeFile never replaces an earlier remittance: a name already on disk
// fails with *domain.ErrConflict. A partially written file is removed.
func writeFile(path, content string) (err error) {
	fh, err := openFile(path)
	if errors.Is(err, fs.ErrExist) {
		return &domain.ErrConflict{Message: fmt.Sprintf("remittance file %s already exists", path)}
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if _, err := fh.WriteString(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := fh.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}

	info, err := fh.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() != int64(len(content)) {
		return &domain.ErrIncompleteWrite{Path: path, Expected: int64(len(content)), Written: info.Size()}
	}
	return nil
}
