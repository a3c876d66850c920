package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/pix"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// PIX BR Codes
// ============================================================

// staticTxID is the BCB placeholder for codes without a transaction id.
const staticTxID = "***"

const maxTxIDLength = 25

var txidRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// GenerateBRCode validates req and returns its BR Code. Requests carrying
// an idempotency key seen within the cache TTL get the stored code back.
func (s *CollectionService) GenerateBRCode(ctx context.Context, req *domain.BRCodeRequest) (*domain.BRCode, error) {
	ctx, span := collectionTracer.Start(ctx, "CollectionService.GenerateBRCode")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("brcode", time.Since(start)) }()

	if req.IdempotencyKey != "" {
		if cached, ok := s.cache.Get(req.IdempotencyKey); ok {
			s.metrics.IncrCacheHit("brcode")
			return cached, nil
		}
		s.metrics.IncrCacheMiss("brcode")
	}

	code, err := s.buildBRCode(req)
	if err != nil {
		s.metrics.IncrBRCode("error")
		s.logger.Warn("br code rejected", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.String("pix.txid", code.TransactionID))

	if req.IdempotencyKey != "" {
		s.cache.Set(req.IdempotencyKey, code)
	}
	s.metrics.IncrBRCode("success")

	s.logger.Info("br code generated",
		zap.String("txid", code.TransactionID),
		zap.String("amount", code.Amount),
		zap.Bool("unique_payment", req.UniquePayment),
		zap.Bool("dynamic", req.URL != ""),
	)
	return code, nil
}

// GenerateBRCodes builds a batch concurrently. Results keep the input
// order; the first failure cancels the batch.
func (s *CollectionService) GenerateBRCodes(ctx context.Context, reqs []domain.BRCodeRequest) ([]domain.BRCode, error) {
	ctx, span := collectionTracer.Start(ctx, "CollectionService.GenerateBRCodes")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(reqs)))

	if len(reqs) == 0 {
		return nil, &domain.ErrValidation{Field: "items", Message: "at least one item is required"}
	}

	out := make([]domain.BRCode, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			code, err := s.GenerateBRCode(ctx, &reqs[i])
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = *code
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CollectionService) buildBRCode(req *domain.BRCodeRequest) (*domain.BRCode, error) {
	if err := validateBRCodeRequest(req); err != nil {
		return nil, err
	}

	payload, err := req.Payload()
	if err != nil {
		return nil, err
	}
	payload.TransactionID = transactionID(req)

	encoded, err := pix.Build(payload)
	if err != nil {
		return nil, err
	}

	return &domain.BRCode{
		Payload:       encoded,
		TransactionID: payload.TransactionID,
		Amount:        payload.Amount.String(),
		CRC:           encoded[len(encoded)-4:],
		CreatedAt:     s.now().Format(time.RFC3339),
	}, nil
}

// transactionID keeps the caller's txid. Unique payments without one get
// a fresh id so they can be reconciled; other codes use the static
// placeholder.
func transactionID(req *domain.BRCodeRequest) string {
	if req.TransactionID != "" {
		return req.TransactionID
	}
	if req.UniquePayment {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:maxTxIDLength]
	}
	return staticTxID
}

func validateBRCodeRequest(req *domain.BRCodeRequest) error {
	if strings.TrimSpace(req.Emitter.Name()) == "" {
		return &domain.ErrValidation{Field: "emitter.name", Message: "required"}
	}
	if strings.TrimSpace(req.Emitter.City()) == "" {
		return &domain.ErrValidation{Field: "emitter.city", Message: "required"}
	}
	if req.Emitter.PixKey() == "" && req.URL == "" {
		return &domain.ErrValidation{Field: "emitter.pixKey|url", Message: "at least one is required"}
	}
	amount, err := domain.CentsFromFloat(req.Amount)
	if err != nil {
		return err
	}
	if amount < 0 {
		return &domain.ErrValidation{Field: "amount", Message: "must not be negative"}
	}
	if amount > domain.MaxAmount {
		return &domain.ErrValidation{Field: "amount", Message: "must not exceed " + domain.MaxAmount.String()}
	}
	if txid := req.TransactionID; txid != "" && txid != staticTxID {
		if len(txid) > maxTxIDLength || !txidRegex.MatchString(txid) {
			return &domain.ErrValidation{Field: "transactionId", Message: "must be up to 25 letters or digits"}
		}
	}
	return nil
}
