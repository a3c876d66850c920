package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/cnab"
	"github.com/boddenberg/pj-collections-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// CNAB Remittances
// ============================================================

// unknownBank labels metrics for banks without a registered layout, so
// arbitrary path values never become series.
const unknownBank = "unknown"

// GenerateRemittance builds, validates and saves a remittance file with
// the layout registered as bank. When an archiver is configured the saved
// file is also archived; archive failures are logged and do not undo the
// local file.
func (s *CollectionService) GenerateRemittance(ctx context.Context, bank string, req *domain.RemittanceRequest) (*domain.Remittance, error) {
	ctx, span := collectionTracer.Start(ctx, "CollectionService.GenerateRemittance")
	defer span.End()
	span.SetAttributes(
		attribute.String("cnab.bank", bank),
		attribute.Int("cnab.billets", len(req.Billets)),
	)

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("remittance", time.Since(start)) }()

	label := bank
	if _, ok := s.layouts[bank]; !ok {
		label = unknownBank
	}

	rem, err := s.generateRemittance(ctx, bank, req)
	if err != nil {
		s.metrics.IncrRemittance(label, "error")
		s.logger.Error("remittance generation failed",
			zap.String("bank", bank),
			zap.Int("shipping_number", req.ShippingNumber),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrRemittance(label, "success")
	s.metrics.AddRemittanceBillets(rem.Billets)
	s.logger.Info("remittance generated",
		zap.String("bank", bank),
		zap.String("file", rem.FileName),
		zap.Int("shipping_number", req.ShippingNumber),
		zap.Int("billets", rem.Billets),
		zap.Int("bytes", rem.Bytes),
	)
	return rem, nil
}

func (s *CollectionService) generateRemittance(ctx context.Context, bank string, req *domain.RemittanceRequest) (*domain.Remittance, error) {
	layout, ok := s.layouts[bank]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "remittance layout", ID: bank}
	}
	if len(req.Billets) == 0 {
		return nil, &domain.ErrValidation{Field: "billets", Message: "at least one billet is required"}
	}

	f, err := cnab.NewFile(layout, cnab.Config{
		Emitter:        req.Emitter,
		Wallet:         req.Wallet,
		Agency:         req.Agency,
		Account:        req.Account,
		AccountDigit:   req.AccountDigit,
		Covenant:       req.Covenant,
		ShippingNumber: req.ShippingNumber,
		ShippingDate:   req.ShippingDate,
		EOL:            s.eol,
	})
	if err != nil {
		return nil, err
	}

	for _, b := range req.Billets {
		if err := f.AddBillet(b); err != nil {
			return nil, err
		}
	}

	if ok, msgs := f.IsValid(); !ok {
		return nil, &domain.ErrValidation{Field: "remittance", Message: strings.Join(msgs, "; ")}
	}

	content, err := f.Generate()
	if err != nil {
		return nil, err
	}

	dayCount := req.DayCount
	if dayCount <= 0 {
		dayCount = 1
	}

	var path string
	err = s.bulkhead.Do(ctx, func() error {
		var saveErr error
		path, saveErr = f.Save(s.remittanceDir, dayCount)
		return saveErr
	})
	if err != nil {
		return nil, err
	}

	rem := &domain.Remittance{
		Bank:     bank,
		FileName: filepath.Base(path),
		Path:     path,
		Billets:  f.Count(),
		Bytes:    len(content),
		Content:  content,
	}

	if s.archiver != nil {
		url, err := s.archiver.Put(ctx, rem.FileName, []byte(content))
		if err != nil {
			s.metrics.IncrExternalError("archive")
			s.logger.Warn("remittance archive failed",
				zap.String("file", rem.FileName),
				zap.Error(err),
			)
		} else {
			rem.ArchiveURL = url
		}
	}

	return rem, nil
}
