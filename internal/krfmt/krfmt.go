// Package krfmt converts Korean-style price and area strings used by the
// Naver Land payloads. Prices are denominated in manwon (10,000 KRW); the
// 억 unit is 100,000,000 KRW, i.e. 10,000 manwon.
package krfmt

import (
	"math"
	"strconv"
	"strings"
)

const pyeongPerM2 = 0.3025

// Placeholder rendered for "no value" (zero, empty, unparseable).
const Dash = "-"

// ParsePriceToManwon parses strings like "2억 5,000", "5000만" or "7500"
// into a manwon amount. ok is false for empty, unparseable or zero input;
// zero is "no price", not a valid price.
func ParsePriceToManwon(s string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return 0, false
	}

	var num float64
	switch {
	case strings.Contains(cleaned, "억"):
		left, right, _ := strings.Cut(cleaned, "억")
		eok, ok := leadingFloat(left)
		if !ok {
			return 0, false
		}
		num = eok * 10000
		if r := strings.TrimSpace(strings.ReplaceAll(right, "만", "")); r != "" {
			// malformed remainders silently contribute 0
			if man, ok := leadingFloat(r); ok {
				num += man
			}
		}
	case strings.Contains(cleaned, "만"):
		man, ok := leadingFloat(strings.TrimSpace(strings.ReplaceAll(cleaned, "만", "")))
		if !ok {
			return 0, false
		}
		num = man
	default:
		// bare number is already manwon
		man, ok := leadingFloat(cleaned)
		if !ok {
			return 0, false
		}
		num = man
	}

	if math.IsNaN(num) || num == 0 {
		return 0, false
	}
	return num, true
}

// FormatManwon renders a manwon amount as "2억 5,000만", "5억", "3,000만".
// Zero renders the dash placeholder.
func FormatManwon(v float64) string {
	if math.IsNaN(v) || v == 0 {
		return Dash
	}
	eok := int64(math.Floor(v / 10000))
	man := int64(v) % 10000

	switch {
	case eok > 0 && man > 0:
		return strconv.FormatInt(eok, 10) + "억 " + groupThousands(man) + "만"
	case eok > 0:
		return strconv.FormatInt(eok, 10) + "억"
	case man > 0:
		return groupThousands(man) + "만"
	default:
		// sub-manwon leftovers; render the raw value
		if v > 0 {
			return strconv.FormatFloat(v, 'f', -1, 64) + "만"
		}
		return Dash
	}
}

// FormatPrice is the string-input form of FormatManwon; it accepts the
// comma-grouped manwon strings the upstream sends ("" and "0" mean no price).
func FormatPrice(s string) string {
	if s == "" || s == "0" {
		return Dash
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
	if err != nil || n == 0 {
		return Dash
	}
	return FormatManwon(float64(n))
}

// M2ToPyeong converts square meters to pyeong, rounded to 2 decimal places.
func M2ToPyeong(m2 float64) string {
	if math.IsNaN(m2) || m2 == 0 {
		return Dash
	}
	return strconv.FormatFloat(m2*pyeongPerM2, 'f', 2, 64)
}

// M2ToPyeongText is M2ToPyeong over the string-typed area fields.
func M2ToPyeongText(s string) string {
	v, ok := leadingFloat(strings.TrimSpace(s))
	if !ok || v == 0 {
		return Dash
	}
	return M2ToPyeong(v)
}

// leadingFloat parses the leading numeric prefix of s ("120.5㎡" -> 120.5),
// matching how the original dashboard read these fields.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for i, r := range s {
		if i == 0 && (r == '+' || r == '-') {
			end = i + 1
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			end = i + 1
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
