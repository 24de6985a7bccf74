package naverland

import "encoding/json"

// Complex is one building/development group as returned by the portal's
// complex search. Fields we do not model are kept verbatim in Extra so
// nothing is lost between the upstream and the dashboard.
type Complex struct {
	ComplexNo           string `json:"complexNo"`
	ComplexName         string `json:"complexName"`
	RealEstateTypeCode  string `json:"realEstateTypeCode"`
	RealEstateTypeName  string `json:"realEstateTypeName"`
	CortarAddress       string `json:"cortarAddress"`
	TotalHouseholdCount int    `json:"totalHouseholdCount"`
	UseApproveYmd       string `json:"useApproveYmd"` // YYYYMMDD

	Extra map[string]json.RawMessage `json:"-"`
}

// Article is one individually offered unit (매물) inside or independent of
// a complex. Both area fields are preserved verbatim; unit conversion is
// display-side only.
type Article struct {
	ArticleNo            string       `json:"articleNo"`
	ComplexNo            string       `json:"complexNo,omitempty"`
	TradeTypeName        string       `json:"tradeTypeName"`
	RealEstateTypeName   string       `json:"realEstateTypeName"`
	DealOrWarrantPrc     string       `json:"dealOrWarrantPrc"`
	RentPrc              string       `json:"rentPrc,omitempty"`
	AreaName             string       `json:"areaName"`
	Area1                float64      `json:"area1"` // supply, m2
	Area2                float64      `json:"area2"` // exclusive, m2
	FloorInfo            string       `json:"floorInfo"`
	Direction            string       `json:"direction,omitempty"`
	ArticleFeatureDesc   string       `json:"articleFeatureDesc,omitempty"`
	RepresentativeImgURL string       `json:"representativeImgUrl,omitempty"`
	ArticleConfirmYmd    string       `json:"articleConfirmYmd,omitempty"`
	RealtorName          string       `json:"realtorName,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var complexKnownKeys = []string{
	"complexNo", "complexName", "realEstateTypeCode", "realEstateTypeName",
	"cortarAddress", "totalHouseholdCount", "useApproveYmd",
}

var articleKnownKeys = []string{
	"articleNo", "complexNo", "tradeTypeName", "realEstateTypeName",
	"dealOrWarrantPrc", "rentPrc", "areaName", "area1", "area2",
	"floorInfo", "direction", "articleFeatureDesc", "representativeImgUrl",
	"articleConfirmYmd", "realtorName",
}

func (c *Complex) UnmarshalJSON(b []byte) error {
	type alias Complex
	var a struct {
		alias
		ComplexNo stringNumber `json:"complexNo"` // string or number upstream
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	a.alias.ComplexNo = string(a.ComplexNo)
	extra, err := extraFields(b, complexKnownKeys)
	if err != nil {
		return err
	}
	a.alias.Extra = extra
	*c = Complex(a.alias)
	return nil
}

func (c Complex) MarshalJSON() ([]byte, error) {
	type alias Complex
	return mergeExtra(alias(c), c.Extra)
}

func (a *Article) UnmarshalJSON(b []byte) error {
	type alias Article
	var v struct {
		alias
		ArticleNo stringNumber `json:"articleNo"`
		ComplexNo stringNumber `json:"complexNo"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	v.alias.ArticleNo = string(v.ArticleNo)
	v.alias.ComplexNo = string(v.ComplexNo)
	extra, err := extraFields(b, articleKnownKeys)
	if err != nil {
		return err
	}
	v.alias.Extra = extra
	*a = Article(v.alias)
	return nil
}

func (a Article) MarshalJSON() ([]byte, error) {
	type alias Article
	return mergeExtra(alias(a), a.Extra)
}

func extraFields(b []byte, known []string) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// mergeExtra folds the side bag back into the typed fields' JSON object.
// Typed fields win on key collision.
func mergeExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, taken := merged[k]; !taken {
			merged[k] = raw
		}
	}
	return json.Marshal(merged)
}
