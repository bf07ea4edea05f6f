package validate

import "strings"

// confusionPairs are the OCR misread classes the corrector knows how to
// reverse. Each pair is tried independently; combinations are not explored.
var confusionPairs = []struct {
	letter rune
	digit  rune
}{
	{'O', '0'},
	{'I', '1'},
	{'S', '5'},
	{'B', '8'},
}

// correctRoutingCode attempts to repair a misread IFSC code. The raw value
// is trimmed and uppercased, then each confusion class is applied across the
// whole string with direction chosen by position: the four-letter bank
// prefix gets digits restored to letters, the branch suffix gets letters
// restored to digits. The first variant passing the format rule wins.
// Returns the best value and whether it satisfies the format rule.
func (v *Validator) correctRoutingCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if v.rules.RoutingCode.MatchString(code) {
		return code, true
	}
	for _, pair := range confusionPairs {
		candidate := applyConfusionPair(code, pair.letter, pair.digit)
		if v.rules.RoutingCode.MatchString(candidate) {
			return candidate, true
		}
	}
	return code, false
}

func applyConfusionPair(code string, letter, digit rune) string {
	runes := []rune(code)
	for i, r := range runes {
		if i < 4 {
			if r == digit {
				runes[i] = letter
			}
		} else if r == letter {
			runes[i] = digit
		}
	}
	return string(runes)
}
