// Package service orchestrates the bill scanning pipeline: image to OCR
// text to structured analysis.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hqtran/billscan/internal/domain/common"
	"github.com/hqtran/billscan/internal/domain/scan/analyzer"
	"github.com/hqtran/billscan/pkg/observability"
)

// TextExtractor is the OCR boundary. Implemented by ocr.Client.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Thresholds are advisory confidence bounds attached to every result.
// They guide the client UI; the engine itself knows nothing about them.
type Thresholds struct {
	Low        int
	AutoAccept int
}

func DefaultThresholds() Thresholds {
	return Thresholds{Low: 60, AutoAccept: 85}
}

// ScanResult is the full outcome of a scan or re-analysis.
type ScanResult struct {
	Text            string          `json:"text"`
	Analysis        analyzer.Result `json:"analysis"`
	Method          string          `json:"method"`
	ConfidenceLevel string          `json:"confidenceLevel"`
}

type Service struct {
	extractor  TextExtractor
	engine     *analyzer.Analyzer
	thresholds Thresholds
	logger     *slog.Logger
}

func NewService(extractor TextExtractor, engine *analyzer.Analyzer, thresholds Thresholds, logger *slog.Logger) *Service {
	return &Service{
		extractor:  extractor,
		engine:     engine,
		thresholds: thresholds,
		logger:     logger,
	}
}

// ScanBill runs OCR over the image and analyzes the recognized text.
func (s *Service) ScanBill(ctx context.Context, image []byte) (*ScanResult, error) {
	text, err := s.extractor.ExtractText(ctx, image)
	if err != nil {
		observability.RecordScan("ocr", "extract_failed")
		return nil, err
	}
	result, err := s.analyze(ctx, text, "ocr")
	if err != nil {
		observability.RecordScan("ocr", "no_text")
		return nil, err
	}
	observability.RecordScan("ocr", "ok")
	return result, nil
}

// Reanalyze re-runs the engine over user-edited text. It is side-effect
// free, so editing and re-running converges without surprises.
func (s *Service) Reanalyze(ctx context.Context, text string) (*ScanResult, error) {
	result, err := s.analyze(ctx, text, "text")
	if err != nil {
		observability.RecordScan("text", "no_text")
		return nil, err
	}
	observability.RecordScan("text", "ok")
	return result, nil
}

func (s *Service) analyze(ctx context.Context, text, method string) (*ScanResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrNoText
	}

	analysis := s.engine.AnalyzeBillText(text)
	observability.ObserveConfidence(analysis.Confidence)

	s.logger.InfoContext(ctx, "bill text analyzed",
		slog.String("method", method),
		slog.Int64("amount", analysis.Amount),
		slog.String("currency", string(analysis.Currency)),
		slog.String("category", analysis.Category),
		slog.Int("confidence", analysis.Confidence),
	)

	return &ScanResult{
		Text:            text,
		Analysis:        analysis,
		Method:          method,
		ConfidenceLevel: s.confidenceLevel(analysis.Confidence),
	}, nil
}

func (s *Service) confidenceLevel(score int) string {
	switch {
	case score >= s.thresholds.AutoAccept:
		return "auto"
	case score < s.thresholds.Low:
		return "low"
	default:
		return "review"
	}
}
