package analyzer

// scoreConfidence adds up the extraction signals that succeeded. An amount
// in the everyday receipt range earns a bonus over one that merely exists;
// a date synthesized from "today" is worth a token 5.
func scoreConfidence(amount int64, category, billType string, dateFromText bool) int {
	score := 0
	if amount > 0 {
		score += 40
		if amount >= 10_000 && amount < 50_000_000 {
			score += 10
		}
	}
	if category != "other" {
		score += 25
	}
	if billType != "" {
		score += 10
	}
	if dateFromText {
		score += 15
	} else {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}
