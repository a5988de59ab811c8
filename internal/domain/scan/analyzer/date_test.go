package analyzer

import "testing"

func TestExtractDate(t *testing.T) {
	a := testAnalyzer() // clock fixed at 2024-06-15
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"day month year slash", "hoa don 01/03/2024", "2024-03-01", true},
		{"day month year dot", "ngay 15.01.2024", "2024-01-15", true},
		{"day month year dash", "05-12-2023", "2023-12-05", true},
		{"iso order", "date: 2023-11-05", "2023-11-05", true},
		{"two digit year pivot", "12/05/24", "2024-05-12", true},
		{"verbal full", "ngày 1 tháng 3 năm 2024", "2024-03-01", true},
		{"verbal stripped accents", "ngay 5 thang 2 nam 2024", "2024-02-05", true},
		{"verbal comma year", "15 tháng 3, 2023", "2023-03-15", true},
		{"verbal dot year", "15 thang 3. 2023", "2023-03-15", true},
		{"verbal without year falls through", "ngay 5 thang 2", "", false},
		{"invalid calendar day", "31/02/2024", "", false},
		{"month out of range", "05/13/2024", "", false},
		{"year before window", "01/03/1999", "", false},
		{"year after window", "01/03/2026", "", false},
		{"pre-pivot years land outside window", "01/03/99", "", false},
		{"no date", "tong cong 150.000", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.extractDate(tt.text)
			if got != tt.want || ok != tt.ok {
				t.Errorf("extractDate(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractDateFirstValidWins(t *testing.T) {
	a := testAnalyzer()
	got, ok := a.extractDate("in hoa don 32/01/2024, mua ngay 02/01/2024")
	if !ok || got != "2024-01-02" {
		t.Errorf("extractDate = (%q, %v), want first valid date 2024-01-02", got, ok)
	}
}

func TestExtractDateRejectsFarFuture(t *testing.T) {
	a := testAnalyzer()
	// Next year is allowed only up to one year out from the clock.
	if got, ok := a.extractDate("01/01/2025"); !ok || got != "2025-01-01" {
		t.Errorf("extractDate = (%q, %v), want 2025-01-01 accepted", got, ok)
	}
	if _, ok := a.extractDate("30/06/2025"); ok {
		t.Error("extractDate accepted a date more than a year ahead")
	}
}
