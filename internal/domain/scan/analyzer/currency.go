package analyzer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hqtran/billscan/internal/domain/common"
)

// currencyPattern is one piece of currency evidence. Number-adjacent symbol
// forms outrank number-adjacent words, which outrank bare mentions.
type currencyPattern struct {
	re       *regexp.Regexp
	currency common.Currency
	priority int
}

var currencyPatterns = []currencyPattern{
	{regexp.MustCompile(`[\d.,\s]\s*₫`), common.VND, 40},
	{regexp.MustCompile(`₫\s*[\d.,\s]`), common.VND, 39},
	{regexp.MustCompile(`(?i)[\d.,\s]\s*vn[dđ](?:[^\p{L}\p{N}]|$)`), common.VND, 30},
	{regexp.MustCompile(`(?i)[\d.,\s]\s*đồng(?:[^\p{L}\p{N}]|$)`), common.VND, 29},
	{regexp.MustCompile(`(?i)[\d.,\s]\s*đ(?:[^\p{L}\p{N}]|$)`), common.VND, 28},
	{regexp.MustCompile(`₫`), common.VND, 25},
	{regexp.MustCompile(`(?i)\bvnd\b`), common.VND, 18},
	{regexp.MustCompile(`(?i)vnđ`), common.VND, 17},
	{regexp.MustCompile(`(?i)đồng`), common.VND, 16},
	{regexp.MustCompile(`(?i)\bdong\b`), common.VND, 15},

	{regexp.MustCompile(`\$\s*[\d.,\s]`), common.USD, 20},
	{regexp.MustCompile(`(?i)[\d.,\s]\s*usd\b`), common.USD, 18},
	{regexp.MustCompile(`(?i)\busd\b`), common.USD, 10},
	{regexp.MustCompile(`(?i)\bdollars?\b`), common.USD, 9},
	{regexp.MustCompile(`\$`), common.USD, 8},

	{regexp.MustCompile(`€\s*[\d.,\s]|[\d.,\s]\s*€`), common.EUR, 20},
	{regexp.MustCompile(`(?i)[\d.,\s]\s*eur\b|\beur\s*[\d.,\s]`), common.EUR, 18},
	{regexp.MustCompile(`€`), common.EUR, 15},
	{regexp.MustCompile(`(?i)\beuros?\b`), common.EUR, 12},

	{regexp.MustCompile(`¥\s*[\d.,\s]|[\d.,\s]\s*¥`), common.JPY, 20},
	{regexp.MustCompile(`(?i)[\d.,\s]\s*jpy\b|\bjpy\s*[\d.,\s]`), common.JPY, 18},
	{regexp.MustCompile(`¥`), common.JPY, 15},
	{regexp.MustCompile(`(?i)\byen\b`), common.JPY, 12},

	{regexp.MustCompile(`£\s*[\d.,\s]|[\d.,\s]\s*£`), common.GBP, 20},
	{regexp.MustCompile(`(?i)[\d.,\s]\s*gbp\b|\bgbp\s*[\d.,\s]`), common.GBP, 18},
	{regexp.MustCompile(`£`), common.GBP, 15},
	{regexp.MustCompile(`(?i)\bpounds?\b`), common.GBP, 12},

	{regexp.MustCompile(`(?i)[\d.,\s]\s*(?:cny|rmb)\b`), common.CNY, 18},
	{regexp.MustCompile(`(?i)\b(?:cny|rmb)\b`), common.CNY, 15},
	{regexp.MustCompile(`(?i)\byuan\b`), common.CNY, 12},
}

var (
	vndNearAmountRe = regexp.MustCompile(`(?i)[\d.,\s]{4,}\s*(?:vnđ|vnd|₫|đồng|đ)`)
	usdAmountRe     = regexp.MustCompile(`\$\s*[\d.,\s]{2,}`)
	usdAnyMentionRe = regexp.MustCompile(`(?i)\$|usd|dollar`)
)

type currencyEvidence struct {
	currency common.Currency
	score    int
	distance int
}

// detectCurrency decides the currency for an extracted amount. Evidence
// closest to the amount wins; ambiguous "$"-only texts with Vietnamese
// markers resolve to VND; no evidence at all yields the configured default.
func (a *Analyzer) detectCurrency(text string, amount int64, pos int) common.Currency {
	if amount == 0 || pos < 0 {
		if vndNearAmountRe.MatchString(text) || strings.Contains(text, "₫") {
			return common.VND
		}
		return a.cfg.DefaultCurrency
	}

	exactPos := pos
	variations := amountVariations(amount)
	for _, v := range variations {
		if i := strings.Index(text, v); i >= 0 {
			exactPos = i
			break
		}
	}

	// Strong VND shortcuts: a dong marker glued to the amount, or a
	// Vietnamese-grouped rendering of the amount with no dollar in sight.
	near := windowAround(text, exactPos, 10, 30)
	if strings.Contains(near, "₫") || vndNearAmountRe.MatchString(near) {
		return common.VND
	}
	if amount >= 10_000 && amount < 100_000_000 &&
		strings.Contains(text, groupDigits(strconv.FormatInt(amount, 10), '.')) &&
		!usdAnyMentionRe.MatchString(text) {
		return common.VND
	}

	window := windowAround(text, exactPos, 50, 200)
	windowStart := exactPos - 50
	if windowStart < 0 {
		windowStart = 0
	}
	lineStart := strings.LastIndexByte(text[:exactPos], '\n') + 1
	lineEnd := strings.IndexByte(text[exactPos:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += exactPos
	}
	tailStart := lastLinesStart(text, 5)

	var evidence []currencyEvidence
	for _, p := range currencyPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			dist := loc[0] - exactPos
			if dist < 0 {
				dist = -dist
			}
			score := p.priority
			switch {
			case loc[0] >= windowStart && loc[0] < windowStart+len(window):
				ctx := windowAround(text, loc[0], 30, 30)
				for _, v := range variations {
					if strings.Contains(ctx, v) {
						score += 40
						break
					}
				}
				if loc[0] >= lineStart && loc[0] < lineEnd {
					score += 20
				}
				switch {
				case dist < 10:
					score += 15
				case dist < 20:
					score += 10
				case dist < 30:
					score += 5
				}
			case loc[0] >= tailStart:
				score += 15
			default:
				penalty := dist / 10
				if penalty > 5 {
					penalty = 5
				}
				score -= penalty
			}
			evidence = append(evidence, currencyEvidence{p.currency, score, dist})
		}
	}
	if len(evidence) == 0 {
		return a.cfg.DefaultCurrency
	}

	sort.SliceStable(evidence, func(i, j int) bool {
		if evidence[i].score != evidence[j].score {
			return evidence[i].score > evidence[j].score
		}
		return evidence[i].distance < evidence[j].distance
	})
	winner := evidence[0].currency

	// "$" OCR artifacts on Vietnamese receipts: only a dollar glued to a
	// number beats explicit dong markers elsewhere in the text.
	if winner == common.USD && !usdAmountRe.MatchString(text) {
		for _, e := range evidence {
			if e.currency == common.VND {
				return common.VND
			}
		}
	}
	return winner
}

// amountVariations renders amount the ways it may appear verbatim in the
// text: plain digits, Vietnamese dot grouping, English comma grouping, and
// a leading-digits prefix for values OCR split midway.
func amountVariations(amount int64) []string {
	plain := strconv.FormatInt(amount, 10)
	vars := []string{plain, groupDigits(plain, '.'), groupDigits(plain, ',')}
	if len(plain) > 6 {
		vars = append(vars, plain[:6])
	}
	return vars
}

func groupDigits(digits string, sep byte) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func windowAround(text string, pos, before, after int) string {
	start := pos - before
	if start < 0 {
		start = 0
	}
	end := pos + after
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}
	return text[start:end]
}

func lastLinesStart(text string, n int) int {
	pos := len(text)
	for i := 0; i < n; i++ {
		idx := strings.LastIndexByte(text[:pos], '\n')
		if idx < 0 {
			return 0
		}
		pos = idx
	}
	return pos + 1
}
