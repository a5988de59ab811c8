// Package analyzer recovers a structured transaction record from raw OCR text.
// It layers keyword, currency-marker and position heuristics over noisy,
// mixed-language receipt text and scores how many extraction signals succeeded.
package analyzer

import (
	"strings"
	"time"

	"github.com/hqtran/billscan/internal/domain/common"
)

// Config carries the tunable policy values of the engine. The zero value is
// usable after New fills in defaults.
type Config struct {
	// DefaultCurrency is returned when no currency marker scores at all.
	DefaultCurrency common.Currency
	// MinAmount is the smallest plausible transaction magnitude. Candidates
	// below it only win when nothing larger was found.
	MinAmount int64
	// Now supplies "today" for the missing-date fallback and the future-date
	// validation bound. Injectable so tests are deterministic.
	Now func() time.Time
}

// DefaultConfig returns the policy used for Vietnamese receipts.
func DefaultConfig() Config {
	return Config{
		DefaultCurrency: common.VND,
		MinAmount:       10_000,
		Now:             time.Now,
	}
}

// Result is the structured record extracted from one bill text.
//
// Amount is an integer in the currency's smallest practical unit: group
// separators are stripped and a trailing two-digit decimal part keeps its
// digits, so "45.90" USD becomes 4590 cents while "150.000" VND stays 150000
// (VND has no minor unit).
type Result struct {
	Amount       int64           `json:"amount"`
	Currency     common.Currency `json:"currency"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	Confidence   int             `json:"confidence"`
	BillType     string          `json:"billType,omitempty"`
	MerchantName string          `json:"merchantName,omitempty"`
}

// Analyzer extracts transaction fields from bill text. It holds only
// immutable configuration and precompiled tables, so a single instance is
// safe for concurrent use.
type Analyzer struct {
	cfg Config

	keywordAmounts []keywordAmountMatcher
	billTypes      []billTypeMatcher
	categories     []categoryMatcher
	delivery       deliveryMatcher
}

// New builds an Analyzer, compiling its keyword tables once.
func New(cfg Config) *Analyzer {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = common.VND
	}
	if cfg.MinAmount <= 0 {
		cfg.MinAmount = 10_000
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Analyzer{
		cfg:            cfg,
		keywordAmounts: compileKeywordAmountMatchers(totalKeywords),
		billTypes:      compileBillTypeMatchers(billTypeTable),
		categories:     compileCategoryMatchers(categoryKeywordTable, strongCategoryKeywords),
		delivery:       compileDeliveryMatcher(deliveryKeywords, deliveryFoodTerms),
	}
}

// AnalyzeBillText runs the full extraction pipeline over one bill text.
// It never fails: missing signals degrade to zero/default sentinel values
// and are reflected in the confidence score.
func (a *Analyzer) AnalyzeBillText(text string) Result {
	normalized := strings.ToLower(text)
	folded := foldDiacritics(normalized)

	amount, amountPos := a.extractAmount(text)
	currency := a.detectCurrency(text, amount, amountPos)
	billType, merchant := a.identifyBillType(folded)
	category := a.categorize(normalized, folded, billType)
	date, dateFromText := a.extractDate(normalized)
	if !dateFromText {
		date = a.cfg.Now().Format("2006-01-02")
	}
	description := buildDescription(text, category, merchant)
	confidence := scoreConfidence(amount, category, billType, dateFromText)

	return Result{
		Amount:       amount,
		Currency:     currency,
		Category:     category,
		Description:  description,
		Date:         date,
		Confidence:   confidence,
		BillType:     billType,
		MerchantName: merchant,
	}
}

// foldDiacritics maps Vietnamese diacritic letters to their ASCII base so
// keyword tables still match OCR output that lost its accents.
func foldDiacritics(s string) string {
	return strings.Map(func(r rune) rune {
		if folded, ok := diacriticFold[r]; ok {
			return folded
		}
		return r
	}, s)
}

var diacriticFold = buildDiacriticFold()

func buildDiacriticFold() map[rune]rune {
	groups := map[rune]string{
		'a': "áàảãạăắằẳẵặâấầẩẫậ",
		'd': "đ",
		'e': "éèẻẽẹêếềểễệ",
		'i': "íìỉĩị",
		'o': "óòỏõọôốồổỗộơớờởỡợ",
		'u': "úùủũụưứừửữự",
		'y': "ýỳỷỹỵ",
	}
	fold := make(map[rune]rune)
	for base, variants := range groups {
		for _, r := range variants {
			fold[r] = base
		}
	}
	return fold
}
