package analyzer

import "strings"

// billTypeDef declares one venue type. Order matters: on equal scores the
// earlier entry wins, so the table is deterministic regardless of input.
type billTypeDef struct {
	name      string
	keywords  []string
	merchants []string
}

// billTypeTable is matched against diacritic-folded text, so "NHA HANG"
// still reads as a restaurant. Multi-word brands stay specific enough that
// folding does not cause cross-type collisions.
var billTypeTable = []billTypeDef{
	{
		name: "restaurant",
		keywords: []string{
			"nhà hàng", "quán ăn", "quán cơm", "quán nhậu", "cà phê", "cafe",
			"coffee", "restaurant", "trà sữa", "phở", "bún", "lẩu", "nướng",
		},
		merchants: []string{
			"Highlands", "Starbucks", "Phúc Long", "The Coffee House", "KFC",
			"Lotteria", "McDonald", "Jollibee", "Pizza Hut", "Domino",
			"Haidilao", "Gogi", "Kichi",
		},
	},
	{
		name: "supermarket",
		keywords: []string{
			"siêu thị", "supermarket", "cửa hàng tiện lợi", "tạp hóa",
			"bách hóa", "grocery", "minimart",
		},
		merchants: []string{
			"WinMart", "VinMart", "Co.opmart", "Coopmart", "Big C", "Lotte Mart",
			"AEON", "Mega Market", "Bách Hóa Xanh", "Circle K", "FamilyMart",
			"Ministop", "7-Eleven", "GS25",
		},
	},
	{
		name: "gas_station",
		keywords: []string{
			"cây xăng", "trạm xăng", "xăng dầu", "nhiên liệu", "gas station",
			"petrol", "fuel",
		},
		merchants: []string{
			"Petrolimex", "PVOIL", "PV Oil", "Shell", "Caltex", "Esso",
		},
	},
	{
		name: "pharmacy",
		keywords: []string{
			"nhà thuốc", "hiệu thuốc", "quầy thuốc", "dược phẩm", "pharmacy",
			"drugstore",
		},
		merchants: []string{
			"Pharmacity", "Long Châu", "An Khang", "Guardian", "Medicare",
			"Watsons",
		},
	},
	{
		name: "cinema",
		keywords: []string{
			"rạp chiếu phim", "rạp phim", "vé xem phim", "cinema", "movie ticket",
		},
		merchants: []string{
			"CGV", "Lotte Cinema", "Galaxy Cinema", "BHD Star", "Mega GS",
			"Cinestar", "Beta Cinemas",
		},
	},
}

type merchantEntry struct {
	folded  string
	display string
}

type billTypeMatcher struct {
	name      string
	keywords  []string
	merchants []merchantEntry
}

func compileBillTypeMatchers(defs []billTypeDef) []billTypeMatcher {
	out := make([]billTypeMatcher, 0, len(defs))
	for _, d := range defs {
		m := billTypeMatcher{name: d.name}
		for _, kw := range d.keywords {
			m.keywords = append(m.keywords, foldDiacritics(strings.ToLower(kw)))
		}
		for _, mer := range d.merchants {
			m.merchants = append(m.merchants, merchantEntry{
				folded:  foldDiacritics(strings.ToLower(mer)),
				display: mer,
			})
		}
		out = append(out, m)
	}
	return out
}

// identifyBillType scores every venue type against the folded text: +2 per
// keyword present, +5 per known merchant. The first strictly-highest scorer
// wins; a zero best score means no venue type at all.
func (a *Analyzer) identifyBillType(folded string) (string, string) {
	bestScore := 0
	bestType := ""
	bestMerchant := ""
	for _, m := range a.billTypes {
		score := 0
		merchant := ""
		for _, kw := range m.keywords {
			if strings.Contains(folded, kw) {
				score += 2
			}
		}
		for _, mer := range m.merchants {
			if strings.Contains(folded, mer.folded) {
				score += 5
				if merchant == "" {
					merchant = mer.display
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestType = m.name
			bestMerchant = merchant
		}
	}
	return bestType, bestMerchant
}
