package naverland

import (
	"net/url"
	"testing"
)

func TestArticleQueryDefaults(t *testing.T) {
	q := ArticleQuery("142587", nil)
	if q.Get("complexNo") != "142587" {
		t.Errorf("complexNo = %q", q.Get("complexNo"))
	}
	if q.Get("realEstateType") != DefaultRealEstateTypes {
		t.Errorf("realEstateType = %q", q.Get("realEstateType"))
	}
	if q.Get("order") != "rank" {
		t.Errorf("order = %q", q.Get("order"))
	}
	// default tradeType includes B2/B3, so rent bounds stay
	if q.Get("rentPriceMin") != "0" || q.Get("rentPriceMax") != "900000000" {
		t.Errorf("rent bounds missing from default query: %v", q)
	}
}

func TestArticleQueryDropsUnknownKeys(t *testing.T) {
	caller := url.Values{}
	caller.Set("tradeType", "B1")
	caller.Set("keyword", "injected")
	caller.Set("orderby", "price")
	q := ArticleQuery("1", caller)
	if q.Get("tradeType") != "B1" {
		t.Errorf("allowed key not applied: tradeType = %q", q.Get("tradeType"))
	}
	if q.Has("keyword") || q.Has("orderby") {
		t.Errorf("unrecognized keys forwarded upstream: %v", q)
	}
}

func TestArticleQueryPrunesRentForSale(t *testing.T) {
	caller := url.Values{}
	caller.Set("tradeType", "A1")
	caller.Set("rentPriceMin", "10")
	caller.Set("rentPriceMax", "200")
	q := ArticleQuery("1", caller)
	if q.Has("rentPriceMin") || q.Has("rentPriceMax") {
		t.Errorf("rent bounds forwarded for a sale-only query: %v", q)
	}
}

func TestArticleQueryKeepsRentForMonthlyRent(t *testing.T) {
	for _, tt := range []string{"B2", "B3", "A1:B2", "B1:B3"} {
		caller := url.Values{}
		caller.Set("tradeType", tt)
		caller.Set("rentPriceMax", "200")
		q := ArticleQuery("1", caller)
		if q.Get("rentPriceMax") != "200" {
			t.Errorf("tradeType %s: rent bound dropped, query %v", tt, q)
		}
	}
}
