package httpapi

import (
	"encoding/json"
	"strconv"

	"github.com/yourorg/land-api/internal/krfmt"
	"github.com/yourorg/land-api/naverland"
)

// enrichArticles adds derived fields next to the raw upstream ones so
// dashboard clients do not have to re-implement Korean unit handling:
// the price strings parsed into plain manwon numbers and the metric areas
// converted to pyeong.
func enrichArticles(articles []naverland.Article) {
	for i := range articles {
		a := &articles[i]
		if a.Extra == nil {
			a.Extra = map[string]json.RawMessage{}
		}
		if v, ok := krfmt.ParsePriceToManwon(a.DealOrWarrantPrc); ok {
			a.Extra["dealOrWarrantPrcManwon"] = rawNumber(v)
		}
		if v, ok := krfmt.ParsePriceToManwon(a.RentPrc); ok {
			a.Extra["rentPrcManwon"] = rawNumber(v)
		}
		a.Extra["area1Pyeong"] = rawString(krfmt.M2ToPyeong(a.Area1))
		a.Extra["area2Pyeong"] = rawString(krfmt.M2ToPyeong(a.Area2))
	}
}

func rawNumber(v float64) json.RawMessage {
	return json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))
}

func rawString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
