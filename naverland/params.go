package naverland

import (
	"net/url"
	"strings"
)

// DefaultRealEstateTypes is the portal's "all categories" sentinel; a
// category filter equal to it disables filtering entirely.
const DefaultRealEstateTypes = "APT:OPST:ABYG:OBYG"

// DefaultTradeTypes covers sale, deposit-lease, monthly-rent and
// short-term-rent.
const DefaultTradeTypes = "A1:B1:B2:B3"

// trade-type codes whose listings carry a monthly rent
const (
	TradeTypeMonthlyRent   = "B2"
	TradeTypeShortTermRent = "B3"
)

// baseArticleParams is the portal's full article-list parameter set. Only
// keys present here (plus complexNo/page) may be overridden by callers.
var baseArticleParams = map[string]string{
	"realEstateType":     DefaultRealEstateTypes,
	"tradeType":          DefaultTradeTypes,
	"tag":                "::::::::",
	"rentPriceMin":       "0",
	"rentPriceMax":       "900000000",
	"priceMin":           "0",
	"priceMax":           "900000000",
	"areaMin":            "0",
	"areaMax":            "900000000",
	"oldBuildYears":      "",
	"recentlyBuildYears": "",
	"minHouseHoldCount":  "",
	"maxHouseHoldCount":  "",
	"showArticle":        "false",
	"sameAddressGroup":   "false",
	"minMaintenanceCost": "",
	"maxMaintenanceCost": "",
	"priceType":          "RETAIL",
	"directions":         "",
	"buildingNos":        "",
	"areaNos":            "",
	"type":               "list",
	"order":              "rank",
}

// ArticleQuery builds the outgoing article-list query for a complex.
// Caller params outside the allow-list are dropped silently. The rent
// bounds are removed unless the tradeType selection includes a rent-bearing
// trade type, so sale/deposit listings are not constrained by a rent field
// that does not apply to them.
func ArticleQuery(complexNo string, caller url.Values) url.Values {
	q := url.Values{}
	for k, v := range baseArticleParams {
		q.Set(k, v)
	}
	q.Set("complexNo", complexNo)

	for k, vs := range caller {
		if len(vs) == 0 {
			continue
		}
		if _, allowed := baseArticleParams[k]; allowed || k == "complexNo" || k == "page" {
			q.Set(k, vs[0])
		}
	}

	if !tradeTypesIncludeRent(q.Get("tradeType")) {
		q.Del("rentPriceMin")
		q.Del("rentPriceMax")
	}
	return q
}

func tradeTypesIncludeRent(tradeType string) bool {
	for _, code := range strings.Split(tradeType, ":") {
		switch strings.TrimSpace(code) {
		case TradeTypeMonthlyRent, TradeTypeShortTermRent:
			return true
		}
	}
	return false
}
