package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hqtran/billscan/internal/domain/common"
)

var (
	numericLineRe = regexp.MustCompile(`^[\d.,\s]+$`)
	dateLineRe    = regexp.MustCompile(`^[\d/\-.\s:]+$`)
)

// buildDescription picks a human-readable label for the transaction. A known
// merchant's own header line is best, then the first substantive line of the
// receipt, then a synthesized label from the category.
func buildDescription(text, category, merchant string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	if merchant != "" {
		needle := foldDiacritics(strings.ToLower(merchant))
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if !strings.Contains(foldDiacritics(strings.ToLower(trimmed)), needle) {
				continue
			}
			if n := utf8.RuneCountInString(trimmed); n >= 3 && n <= 100 {
				return trimmed
			}
		}
		return merchant
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		n := utf8.RuneCountInString(trimmed)
		if n <= 5 || n >= 100 {
			continue
		}
		if numericLineRe.MatchString(trimmed) || dateLineRe.MatchString(trimmed) {
			continue
		}
		if containsTotalKeyword(trimmed) {
			continue
		}
		return trimmed
	}

	name := "Khác"
	if c, ok := common.ExpenseCategoryByID(category); ok {
		name = c.Name
	}
	return "Hóa đơn " + name
}

func containsTotalKeyword(line string) bool {
	folded := foldDiacritics(strings.ToLower(line))
	for _, kw := range totalKeywords {
		if strings.Contains(folded, foldDiacritics(kw)) {
			return true
		}
	}
	return false
}
