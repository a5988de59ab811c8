package analyzer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// amountCandidate is one number found in the text, scored by how strong the
// surrounding evidence is and remembering where it was found.
type amountCandidate struct {
	amount   int64
	priority int
	position int
}

// Keywords that label a receipt's grand total. Matched in their accented
// form and in a diacritic-stripped variant, since OCR drops accents often.
var totalKeywords = []string{
	"tổng cộng",
	"tổng tiền",
	"tổng thanh toán",
	"thành tiền",
	"thanh toán",
	"tổng",
	"cộng",
	"grand total",
	"total",
	"amount due",
	"sum",
}

// Weaker price labels, scored far below the total keywords.
var genericAmountKeywords = []string{
	"số tiền",
	"giá",
	"tiền",
	"price",
	"cost",
	"amount",
}

const currencyMarkerAlt = `(?:₫|vnđ|vnd|đồng|đ|dong|usd|\$|eur|€|jpy|¥|gbp|£|cny)`

var (
	// Applied to the 50 chars after a keyword hit.
	keywordCurrencyRe = regexp.MustCompile(`(?i)^[\s:]*([\d.,\s]{4,}?)\s*` + currencyMarkerAlt)
	keywordNumberRe   = regexp.MustCompile(`^[\s:]*([\d.,\s]{6,})`)

	// Per-line currency-adjacent forms. Word markers consume a non-letter
	// follower instead of \b, which is ASCII-only and never fires after đ.
	lineCurrencyRes = []*regexp.Regexp{
		regexp.MustCompile(`([\d.,\s]{4,})\s*₫`),
		regexp.MustCompile(`(?i)([\d.,\s]{4,})\s*vn[dđ](?:[^\p{L}\p{N}]|$)`),
		regexp.MustCompile(`(?i)([\d.,\s]{4,})\s*(?:đồng|dong)(?:[^\p{L}\p{N}]|$)`),
		regexp.MustCompile(`(?i)([\d.,\s]{4,})\s*đ(?:[^\p{L}\p{N}]|$)`),
		regexp.MustCompile(`\$\s*([\d.,\s]{2,})`),
		regexp.MustCompile(`(?i)([\d.,\s]{2,})\s*usd`),
		regexp.MustCompile(`(?i)(?:€|£|¥)\s*([\d.,\s]{2,})`),
	}

	trailingNumberRe = regexp.MustCompile(`([\d.,\s]{4,})`)

	// Locale-grouped numbers: 1.500.000 (vi) and 1,500,000 (en).
	dotGroupedRe   = regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})+\b`)
	commaGroupedRe = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+\b`)

	currencySuffixRe = regexp.MustCompile(`(?i)([\d.,\s]{4,})\s*(?:vnđ|vnd|₫|đồng|đ)`)
)

type keywordAmountMatcher struct {
	re               *regexp.Regexp
	currencyPriority int
	plainPriority    int
}

// keywordPattern builds a case-insensitive pattern matching kw in accented
// form plus, when it differs, a word-bounded diacritic-stripped variant.
// Searching the original text keeps byte positions honest.
func keywordPattern(kw string) string {
	folded := foldDiacritics(kw)
	if folded == kw {
		return `\b` + regexp.QuoteMeta(kw) + `\b`
	}
	return regexp.QuoteMeta(kw) + `|\b` + regexp.QuoteMeta(folded) + `\b`
}

func compileKeywordAmountMatchers(keywords []string) []keywordAmountMatcher {
	out := make([]keywordAmountMatcher, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, keywordAmountMatcher{
			re:               regexp.MustCompile(`(?i)` + keywordPattern(kw)),
			currencyPriority: 55,
			plainPriority:    50,
		})
	}
	return out
}

var genericKeywordMatchers = func() []keywordAmountMatcher {
	out := make([]keywordAmountMatcher, 0, len(genericAmountKeywords))
	for _, kw := range genericAmountKeywords {
		out = append(out, keywordAmountMatcher{
			re:               regexp.MustCompile(`(?i)` + keywordPattern(kw)),
			currencyPriority: 12,
			plainPriority:    11,
		})
	}
	return out
}()

// extractAmount finds every plausible money value in the text, scores each
// by evidence strength and position, and picks the winner. The returned
// position is the byte offset of the evidence, -1 when nothing was found.
func (a *Analyzer) extractAmount(text string) (int64, int) {
	var cands []amountCandidate

	cands = append(cands, a.keywordCandidates(text, a.keywordAmounts)...)
	cands = append(cands, lineCurrencyCandidates(text)...)
	cands = append(cands, a.trailingLineCandidates(text)...)
	cands = append(cands, a.keywordCandidates(text, genericKeywordMatchers)...)
	cands = append(cands, a.groupedNumberCandidates(text)...)
	cands = append(cands, a.bareRunCandidates(text)...)
	cands = append(cands, a.currencySuffixCandidates(text)...)

	if len(cands) == 0 {
		if c, ok := lastResortCandidate(text); ok {
			cands = append(cands, c)
		}
	}
	return a.selectAmount(text, cands)
}

// keywordCandidates scans a 50-char window after each keyword hit for a
// number, preferring one followed by a currency marker.
func (a *Analyzer) keywordCandidates(text string, matchers []keywordAmountMatcher) []amountCandidate {
	var out []amountCandidate
	for _, m := range matchers {
		for _, loc := range m.re.FindAllStringIndex(text, -1) {
			windowEnd := loc[1] + 50
			if windowEnd > len(text) {
				windowEnd = len(text)
			}
			window := text[loc[1]:windowEnd]

			if sub := keywordCurrencyRe.FindStringSubmatch(window); sub != nil {
				if n, ok := parseAmount(sub[1]); ok && n >= a.cfg.MinAmount {
					out = append(out, amountCandidate{amount: n, priority: m.currencyPriority, position: loc[0]})
					continue
				}
			}
			if sub := keywordNumberRe.FindStringSubmatch(window); sub != nil {
				if n, ok := parseAmount(sub[1]); ok && n >= a.cfg.MinAmount {
					out = append(out, amountCandidate{amount: n, priority: m.plainPriority, position: loc[0]})
				}
			}
		}
	}
	return out
}

// lineCurrencyCandidates finds numbers glued to a currency marker on each
// line. No minimum threshold applies: a marker next to a small number is
// still the best signal the text may have.
func lineCurrencyCandidates(text string) []amountCandidate {
	var out []amountCandidate
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		for _, re := range lineCurrencyRes {
			for _, idx := range re.FindAllStringSubmatchIndex(line, -1) {
				if idx[2] < 0 {
					continue
				}
				if n, ok := parseAmount(line[idx[2]:idx[3]]); ok {
					out = append(out, amountCandidate{amount: n, priority: 35, position: offset + idx[0]})
				}
			}
		}
		offset += len(line) + 1
	}
	return out
}

// trailingLineCandidates scores numbers on total-keyword lines among the
// last eight, weighting lines nearer the bottom higher since totals close a
// receipt. Unlabeled trailing numbers are left to the weaker tiers: down
// here they are as likely to be a phone number as a price.
func (a *Analyzer) trailingLineCandidates(text string) []amountCandidate {
	lines := strings.Split(text, "\n")
	start := 0
	if len(lines) > 8 {
		start = len(lines) - 8
	}
	offset := 0
	for _, line := range lines[:start] {
		offset += len(line) + 1
	}

	var out []amountCandidate
	for i, line := range lines[start:] {
		if !containsTotalKeyword(line) {
			offset += len(line) + 1
			continue
		}
		for _, idx := range trailingNumberRe.FindAllStringSubmatchIndex(line, -1) {
			if n, ok := parseAmount(line[idx[2]:idx[3]]); ok && n >= a.cfg.MinAmount {
				out = append(out, amountCandidate{amount: n, priority: 25 + i*2, position: offset + idx[0]})
			}
		}
		offset += len(line) + 1
	}
	return out
}

func (a *Analyzer) groupedNumberCandidates(text string) []amountCandidate {
	var out []amountCandidate
	for _, g := range []struct {
		re       *regexp.Regexp
		priority int
	}{{dotGroupedRe, 5}, {commaGroupedRe, 4}} {
		for _, loc := range g.re.FindAllStringIndex(text, -1) {
			if n, ok := parseAmount(text[loc[0]:loc[1]]); ok && n >= a.cfg.MinAmount {
				out = append(out, amountCandidate{amount: n, priority: g.priority, position: loc[0]})
			}
		}
	}
	return out
}

// bareRunCandidates picks up ungrouped 6-9 digit runs, the common OCR
// rendering of VND totals, guarded against phone numbers and date parts.
func (a *Analyzer) bareRunCandidates(text string) []amountCandidate {
	var out []amountCandidate
	for _, r := range digitRuns(text) {
		if n := r.end - r.start; n < 6 || n > 9 {
			continue
		}
		if !plausibleBareRun(text, r) {
			continue
		}
		if n, ok := parseAmount(text[r.start:r.end]); ok && n >= a.cfg.MinAmount {
			out = append(out, amountCandidate{amount: n, priority: 3, position: r.start})
		}
	}
	return out
}

func (a *Analyzer) currencySuffixCandidates(text string) []amountCandidate {
	var out []amountCandidate
	for _, idx := range currencySuffixRe.FindAllStringSubmatchIndex(text, -1) {
		if n, ok := parseAmount(text[idx[2]:idx[3]]); ok && n >= a.cfg.MinAmount {
			out = append(out, amountCandidate{amount: n, priority: 8, position: idx[0]})
		}
	}
	return out
}

// lastResortCandidate runs only when every tier came up empty: the largest
// guarded 4-9 digit run in the plausible range, at the lowest priority.
func lastResortCandidate(text string) (amountCandidate, bool) {
	best := amountCandidate{priority: 1}
	found := false
	for _, r := range digitRuns(text) {
		if n := r.end - r.start; n < 4 || n > 9 {
			continue
		}
		if !plausibleBareRun(text, r) {
			continue
		}
		if n, ok := parseAmount(text[r.start:r.end]); ok && n > best.amount {
			best.amount = n
			best.position = r.start
			found = true
		}
	}
	return best, found
}

// selectAmount orders candidates by priority descending, breaking ties on the
// larger amount, then prefers above-threshold candidates in the final 40% of
// the text where receipts put their totals. Sub-threshold candidates win only
// when nothing above the threshold exists.
func (a *Analyzer) selectAmount(text string, cands []amountCandidate) (int64, int) {
	if len(cands) == 0 {
		return 0, -1
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].priority != cands[j].priority {
			return cands[i].priority > cands[j].priority
		}
		return cands[i].amount > cands[j].amount
	})

	var aboveMin []amountCandidate
	for _, c := range cands {
		if c.amount >= a.cfg.MinAmount {
			aboveMin = append(aboveMin, c)
		}
	}
	if len(aboveMin) == 0 {
		return cands[0].amount, cands[0].position
	}

	cutoff := int(float64(len(text)) * 0.6)
	var tail []amountCandidate
	for _, c := range aboveMin {
		if c.position >= cutoff {
			tail = append(tail, c)
		}
	}
	if len(tail) > 0 {
		sort.SliceStable(tail, func(i, j int) bool {
			if tail[i].priority != tail[j].priority {
				return tail[i].priority > tail[j].priority
			}
			return tail[i].amount > tail[j].amount
		})
		return tail[0].amount, tail[0].position
	}
	return aboveMin[0].amount, aboveMin[0].position
}

type digitRun struct{ start, end int }

// digitRuns returns the maximal runs of ASCII digits in text.
func digitRuns(text string) []digitRun {
	var runs []digitRun
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, digitRun{start, i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, digitRun{start, len(text)})
	}
	return runs
}

// plausibleBareRun rejects digit runs that look like fragments of phone
// numbers, dates or grouped numbers rather than standalone amounts.
func plausibleBareRun(text string, r digitRun) bool {
	if text[r.start] == '0' {
		return false
	}
	if r.start > 0 {
		switch text[r.start-1] {
		case '+', '/', '-', '.', ',':
			return false
		}
	}
	if r.end < len(text) {
		switch text[r.end] {
		case '/', '-', '.', ',':
			return false
		}
	}
	return true
}

// parseAmount normalizes a captured number to an integer in the currency's
// smallest practical unit: whitespace and separators are stripped, so a
// trailing two-digit decimal keeps its digits ("45.90" -> 4590) and grouped
// values keep their magnitude ("150.000" -> 150000). Values outside
// [1_000, 1_000_000_000) are rejected as OCR noise.
func parseAmount(raw string) (int64, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r':
		default:
			return 0, false
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if n < 1_000 || n >= 1_000_000_000 {
		return 0, false
	}
	return n, true
}
