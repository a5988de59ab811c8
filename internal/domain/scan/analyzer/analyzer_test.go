package analyzer

import (
	"testing"
	"time"

	"github.com/hqtran/billscan/internal/domain/common"
)

func testAnalyzer() *Analyzer {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return New(cfg)
}

func TestAnalyzeVietnameseReceipt(t *testing.T) {
	a := testAnalyzer()
	text := "NHA HANG ABC\n123 Nguyen Trai\nPho bo: 80.000\nCom rang: 70.000\nTong cong: 150.000 VND\n01/03/2024"

	got := a.AnalyzeBillText(text)

	if got.Amount != 150000 {
		t.Errorf("Amount = %d, want 150000", got.Amount)
	}
	if got.Currency != common.VND {
		t.Errorf("Currency = %s, want VND", got.Currency)
	}
	if got.Category != "food" {
		t.Errorf("Category = %s, want food", got.Category)
	}
	if got.BillType != "restaurant" {
		t.Errorf("BillType = %s, want restaurant", got.BillType)
	}
	if got.Date != "2024-03-01" {
		t.Errorf("Date = %s, want 2024-03-01", got.Date)
	}
	if got.Description != "NHA HANG ABC" {
		t.Errorf("Description = %q, want store header", got.Description)
	}
	if got.Confidence < 80 {
		t.Errorf("Confidence = %d, want >= 80", got.Confidence)
	}
}

func TestAnalyzeUnrecognizedStore(t *testing.T) {
	a := testAnalyzer()
	got := a.AnalyzeBillText("Cua hang ABC\n50000")

	if got.Amount != 50000 {
		t.Errorf("Amount = %d, want 50000", got.Amount)
	}
	if got.Currency != common.VND {
		t.Errorf("Currency = %s, want VND default", got.Currency)
	}
	// "Cua hang" without accents is too ambiguous to classify.
	if got.Category != "other" {
		t.Errorf("Category = %s, want other", got.Category)
	}
	if got.BillType != "" {
		t.Errorf("BillType = %s, want empty", got.BillType)
	}
	if got.Date != "2024-06-15" {
		t.Errorf("Date = %s, want today fallback", got.Date)
	}
	if got.Confidence != 55 {
		t.Errorf("Confidence = %d, want 55", got.Confidence)
	}
}

func TestAnalyzeEnglishReceipt(t *testing.T) {
	a := testAnalyzer()
	got := a.AnalyzeBillText("Coffee Shop\nTotal: $45.90\nDate: 2023-11-05")

	if got.Amount != 4590 {
		t.Errorf("Amount = %d, want 4590 cents", got.Amount)
	}
	if got.Currency != common.USD {
		t.Errorf("Currency = %s, want USD", got.Currency)
	}
	if got.Category != "food" {
		t.Errorf("Category = %s, want food", got.Category)
	}
	if got.Date != "2023-11-05" {
		t.Errorf("Date = %s, want 2023-11-05", got.Date)
	}
	if got.Description != "Coffee Shop" {
		t.Errorf("Description = %q, want Coffee Shop", got.Description)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	a := testAnalyzer()
	got := a.AnalyzeBillText("")

	if got.Amount != 0 {
		t.Errorf("Amount = %d, want 0", got.Amount)
	}
	if got.Currency != common.VND {
		t.Errorf("Currency = %s, want VND default", got.Currency)
	}
	if got.Category != "other" {
		t.Errorf("Category = %s, want other", got.Category)
	}
	if got.Date != "2024-06-15" {
		t.Errorf("Date = %s, want today fallback", got.Date)
	}
	if got.Confidence != 5 {
		t.Errorf("Confidence = %d, want 5", got.Confidence)
	}
	if got.Description == "" {
		t.Error("Description empty, want synthesized label")
	}
}

func TestAnalyzePhoneAndDateOnly(t *testing.T) {
	a := testAnalyzer()
	got := a.AnalyzeBillText("Hotline: 0912345678\nNgay giao: 01/02/2024")

	if got.Amount != 0 {
		t.Errorf("Amount = %d, want 0: phone and date digits are not amounts", got.Amount)
	}
	if got.Date != "2024-02-01" {
		t.Errorf("Date = %s, want 2024-02-01", got.Date)
	}
	if got.Confidence != 15 {
		t.Errorf("Confidence = %d, want 15", got.Confidence)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := testAnalyzer()
	text := "WinMart\nSua tuoi: 35.000\nBanh mi: 20.000\nTong cong: 55.000 d\n12/05/2024"

	first := a.AnalyzeBillText(text)
	for i := 0; i < 50; i++ {
		if got := a.AnalyzeBillText(text); got != first {
			t.Fatalf("run %d diverged: %+v != %+v", i, got, first)
		}
	}
}

func TestAnalyzeConfidenceBounds(t *testing.T) {
	a := testAnalyzer()
	texts := []string{
		"",
		"x",
		"Cua hang ABC\n50000",
		"NHA HANG ABC\nTong cong: 150.000 VND\n01/03/2024",
		"Hotline: 0912345678",
		"CGV Vincom\nVe xem phim: 90.000 d\n2024-01-20",
	}
	for _, text := range texts {
		got := a.AnalyzeBillText(text)
		if got.Confidence < 0 || got.Confidence > 100 {
			t.Errorf("Confidence = %d for %q, want within [0,100]", got.Confidence, text)
		}
	}
}

func TestFoldDiacritics(t *testing.T) {
	tests := []struct{ in, want string }{
		{"tổng cộng", "tong cong"},
		{"nhà hàng", "nha hang"},
		{"đồng", "dong"},
		{"siêu thị", "sieu thi"},
		{"already ascii", "already ascii"},
	}
	for _, tt := range tests {
		if got := foldDiacritics(tt.in); got != tt.want {
			t.Errorf("foldDiacritics(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
