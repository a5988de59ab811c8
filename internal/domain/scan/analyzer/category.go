package analyzer

import (
	"regexp"
	"strings"
)

// billTypeToCategory short-circuits classification when the venue type is
// already known.
var billTypeToCategory = map[string]string{
	"restaurant":  "food",
	"supermarket": "shopping",
	"gas_station": "transport",
	"pharmacy":    "health",
	"cinema":      "entertainment",
}

type categoryDef struct {
	id       string
	keywords []string
}

// categoryKeywordTable drives keyword scoring. Unlike the venue table these
// are matched against the text as written, accents included: a generic word
// like "cửa hàng" stripped of its accents is too ambiguous to act on.
var categoryKeywordTable = []categoryDef{
	{"food", []string{
		"nhà hàng", "quán ăn", "cà phê", "cafe", "coffee", "restaurant",
		"đồ ăn", "thức ăn", "ăn uống", "phở", "cơm", "bún", "trà sữa",
		"bánh", "món",
	}},
	{"transport", []string{
		"taxi", "grab", "gojek", "be", "xăng", "xe buýt", "xe bus", "vé xe",
		"gửi xe", "đỗ xe", "parking", "petrol", "fuel",
	}},
	{"shopping", []string{
		"siêu thị", "supermarket", "cửa hàng", "mua sắm", "quần áo", "giày",
		"thời trang", "shop", "store", "mart",
	}},
	{"bills", []string{
		"tiền điện", "tiền nước", "internet", "wifi", "truyền hình",
		"điện thoại", "cước", "electricity", "water bill",
	}},
	{"entertainment", []string{
		"phim", "cinema", "karaoke", "game", "concert", "ca nhạc", "movie",
		"vé xem",
	}},
	{"health", []string{
		"bệnh viện", "phòng khám", "nhà thuốc", "thuốc", "khám bệnh",
		"pharmacy", "hospital", "clinic",
	}},
	{"education", []string{
		"học phí", "khóa học", "trường", "sách", "tuition", "school",
		"course", "textbook",
	}},
}

// strongCategoryKeywords get a half-point bonus on top of the regular hit.
var strongCategoryKeywords = map[string]bool{
	"nhà hàng":   true,
	"restaurant": true,
	"siêu thị":   true,
	"supermarket": true,
	"taxi":       true,
	"grab":       true,
}

// deliveryKeywords plus a food term anywhere in the text classify as food
// even when no venue matched: delivery receipts rarely name the restaurant.
var deliveryKeywords = []string{
	"shopeefood", "grabfood", "baemin", "gofood", "befood", "delivery",
	"giao hàng", "giao đồ ăn",
}

var deliveryFoodTerms = []string{
	"food", "đồ ăn", "món", "cơm", "phở", "bún", "ăn",
}

type categoryMatcher struct {
	id    string
	res   []*regexp.Regexp
	bonus []bool
}

// wholeWord wraps kw so it only matches as a full word. \b is ASCII-only
// and dead next to Vietnamese letters, so the boundary is spelled out.
func wholeWord(kw string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(kw) + `(?:[^\p{L}\p{N}]|$)`)
}

func compileCategoryMatchers(table []categoryDef, strong map[string]bool) []categoryMatcher {
	out := make([]categoryMatcher, 0, len(table))
	for _, entry := range table {
		m := categoryMatcher{id: entry.id}
		for _, kw := range entry.keywords {
			m.res = append(m.res, wholeWord(kw))
			m.bonus = append(m.bonus, strong[kw])
		}
		out = append(out, m)
	}
	return out
}

type deliveryMatcher struct {
	brands []string
	foods  []*regexp.Regexp
}

// Both brand and food matching run on folded text: a delivery brand is a
// strong enough anchor that accent loss should not defeat the rule.
func compileDeliveryMatcher(brands, foods []string) deliveryMatcher {
	m := deliveryMatcher{}
	for _, b := range brands {
		m.brands = append(m.brands, foldDiacritics(strings.ToLower(b)))
	}
	for _, f := range foods {
		m.foods = append(m.foods, wholeWord(foldDiacritics(f)))
	}
	return m
}

// categorize maps the text to a spending category. Scores are in half-point
// units: 2 per keyword hit plus 1 for a strong keyword. "other" only when
// every category scores zero.
func (a *Analyzer) categorize(normalized, folded, billType string) string {
	if c, ok := billTypeToCategory[billType]; ok {
		return c
	}

	for _, brand := range a.delivery.brands {
		if !strings.Contains(folded, brand) {
			continue
		}
		for _, food := range a.delivery.foods {
			if food.MatchString(folded) {
				return "food"
			}
		}
	}

	bestScore := 0
	bestID := "other"
	for _, m := range a.categories {
		score := 0
		for i, re := range m.res {
			if re.MatchString(normalized) {
				score += 2
				if m.bonus[i] {
					score++
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestID = m.id
		}
	}
	return bestID
}
