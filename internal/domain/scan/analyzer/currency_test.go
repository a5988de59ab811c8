package analyzer

import (
	"strings"
	"testing"

	"github.com/hqtran/billscan/internal/domain/common"
)

func TestDetectCurrency(t *testing.T) {
	a := testAnalyzer()
	tests := []struct {
		name string
		text string
		want common.Currency
	}{
		{"vnd word", "Tong cong: 150.000 VND", common.VND},
		{"dong symbol", "Tong cong: 99.000 ₫", common.VND},
		{"dollar", "Total: $45.90", common.USD},
		{"usd suffix", "Total: 45.90 USD", common.USD},
		{"euro symbol", "Total: €25.50", common.EUR},
		{"yen symbol", "Total: ¥1500", common.JPY},
		{"pound symbol", "Total: £12.50", common.GBP},
		{"vn grouping no marker", "Thanh tien: 150.000", common.VND},
		{"no evidence", "Cua hang ABC\n50000", common.VND},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, pos := a.extractAmount(tt.text)
			if got := a.detectCurrency(tt.text, amount, pos); got != tt.want {
				t.Errorf("detectCurrency = %s, want %s (amount=%d pos=%d)", got, tt.want, amount, pos)
			}
		})
	}
}

func TestDetectCurrencyDefaultConfigurable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultCurrency = common.USD
	a := New(cfg)
	if got := a.detectCurrency("no markers here", 0, -1); got != common.USD {
		t.Errorf("detectCurrency = %s, want configured USD default", got)
	}
}

func TestDetectCurrencyDollarAmbiguity(t *testing.T) {
	a := testAnalyzer()
	// A lone "$" OCR artifact must not beat explicit dong markers.
	text := "Quan Com 123 $\nCam on quy khach\n" + strings.Repeat("...\n", 3) + "Tong: 45.000 dong"
	amount, pos := a.extractAmount(text)
	if got := a.detectCurrency(text, amount, pos); got != common.VND {
		t.Errorf("detectCurrency = %s, want VND over bare $", got)
	}
}

func TestAmountVariations(t *testing.T) {
	got := amountVariations(1500000)
	want := []string{"1500000", "1.500.000", "1,500,000", "150000"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variation %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   string
		sep  byte
		want string
	}{
		{"150000", '.', "150.000"},
		{"1500000", ',', "1,500,000"},
		{"999", '.', "999"},
		{"1000", '.', "1.000"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.in, tt.sep); got != tt.want {
			t.Errorf("groupDigits(%q, %q) = %q, want %q", tt.in, tt.sep, got, tt.want)
		}
	}
}
