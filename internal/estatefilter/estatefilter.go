// Package estatefilter narrows aggregated complex lists by real-estate
// category. The upstream keyword search does not accept a category filter,
// so filtering happens here, after aggregation.
package estatefilter

import (
	"strings"

	"github.com/yourorg/land-api/naverland"
)

// Korean display-name substrings that identify each category code; some
// complexes carry only a localized name and no code.
var nameHints = map[string][]string{
	"APT":  {"아파트"},
	"OPST": {"오피스텔", "오피"},
	"ABYG": {"연립", "빌라"},
	"OBYG": {"단독", "다가구", "주택"},
}

// Complexes keeps entries matching any target code either literally or by
// display-name substring. A filter equal to the "all categories" sentinel
// (or empty) is an identity passthrough, entities with no code and no name
// included. Duplicates across pages are kept; order is preserved.
func Complexes(in []naverland.Complex, typeFilter string) []naverland.Complex {
	if typeFilter == "" || typeFilter == naverland.DefaultRealEstateTypes {
		return in
	}
	targets := strings.Split(typeFilter, ":")
	out := make([]naverland.Complex, 0, len(in))
	for _, c := range in {
		if matches(c, targets) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c naverland.Complex, targets []string) bool {
	for _, target := range targets {
		if c.RealEstateTypeCode != "" && c.RealEstateTypeCode == target {
			return true
		}
		if c.RealEstateTypeName == "" {
			continue
		}
		for _, hint := range nameHints[target] {
			if strings.Contains(c.RealEstateTypeName, hint) {
				return true
			}
		}
	}
	return false
}
