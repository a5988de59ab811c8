package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hqtran/billscan/internal/domain/common"
	"github.com/hqtran/billscan/internal/domain/scan/analyzer"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

func newTestService(extractor TextExtractor) *Service {
	cfg := analyzer.DefaultConfig()
	cfg.Now = func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	logger := slog.New(slog.NewTextHandler(new(bytes.Buffer), nil))
	return NewService(extractor, analyzer.New(cfg), DefaultThresholds(), logger)
}

func TestScanBill(t *testing.T) {
	extractor := new(mockExtractor)
	svc := newTestService(extractor)

	image := []byte("fake-image")
	text := "NHA HANG ABC\nTong cong: 150.000 VND\n01/03/2024"
	extractor.On("ExtractText", mock.Anything, image).Return(text, nil)

	result, err := svc.ScanBill(context.Background(), image)
	require.NoError(t, err)

	assert.Equal(t, text, result.Text)
	assert.Equal(t, "ocr", result.Method)
	assert.Equal(t, int64(150000), result.Analysis.Amount)
	assert.Equal(t, common.VND, result.Analysis.Currency)
	assert.Equal(t, "food", result.Analysis.Category)
	assert.Equal(t, "auto", result.ConfidenceLevel)
	extractor.AssertExpectations(t)
}

func TestScanBillExtractorError(t *testing.T) {
	extractor := new(mockExtractor)
	svc := newTestService(extractor)

	extractor.On("ExtractText", mock.Anything, mock.Anything).Return("", common.ErrNoText)

	_, err := svc.ScanBill(context.Background(), []byte("blank"))
	assert.ErrorIs(t, err, common.ErrNoText)
}

func TestScanBillBlankTextNeverReachesEngine(t *testing.T) {
	extractor := new(mockExtractor)
	svc := newTestService(extractor)

	extractor.On("ExtractText", mock.Anything, mock.Anything).Return("   \n  ", nil)

	_, err := svc.ScanBill(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, common.ErrNoText)
}

func TestReanalyze(t *testing.T) {
	svc := newTestService(new(mockExtractor))

	result, err := svc.Reanalyze(context.Background(), "Cua hang ABC\n50000")
	require.NoError(t, err)

	assert.Equal(t, "text", result.Method)
	assert.Equal(t, int64(50000), result.Analysis.Amount)
	assert.Equal(t, "other", result.Analysis.Category)
	assert.Equal(t, "low", result.ConfidenceLevel)
}

func TestReanalyzeIdempotent(t *testing.T) {
	svc := newTestService(new(mockExtractor))
	text := "WinMart\nTong cong: 55.000 d\n12/05/2024"

	first, err := svc.Reanalyze(context.Background(), text)
	require.NoError(t, err)
	second, err := svc.Reanalyze(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReanalyzeEmptyText(t *testing.T) {
	svc := newTestService(new(mockExtractor))

	_, err := svc.Reanalyze(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrNoText)
}

func TestConfidenceLevels(t *testing.T) {
	svc := newTestService(new(mockExtractor))
	tests := []struct {
		score int
		want  string
	}{
		{5, "low"},
		{59, "low"},
		{60, "review"},
		{84, "review"},
		{85, "auto"},
		{100, "auto"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.confidenceLevel(tt.score), "score %d", tt.score)
	}
}
