package naverland

import (
	"encoding/json"
	"log"
)

// stringNumber accepts string or number JSON and stores the textual form;
// the portal is inconsistent about identifier types across endpoints.
type stringNumber string

func (s *stringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = stringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = stringNumber(num.String())
	return nil
}

// ParseSearchPage decodes one /api/search page. A missing or non-array
// complexes field is a shape anomaly, not an error: the page contributes
// zero items and more carries whatever the flag said. Entries without a
// complexNo are dropped.
func ParseSearchPage(raw []byte) (complexes []Complex, more bool, err error) {
	var root struct {
		Complexes  []json.RawMessage `json:"complexes"`
		IsMoreData bool              `json:"isMoreData"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, false, err
	}
	if root.Complexes == nil {
		log.Printf("[WARN] naverland: search page without complexes array")
		return nil, root.IsMoreData, nil
	}
	out := make([]Complex, 0, len(root.Complexes))
	for _, msg := range root.Complexes {
		var c Complex
		if err := json.Unmarshal(msg, &c); err != nil {
			log.Printf("[WARN] naverland: skipping undecodable complex entry: %v", err)
			continue
		}
		if c.ComplexNo == "" {
			continue
		}
		out = append(out, c)
	}
	return out, root.IsMoreData, nil
}

// ParseArticlesPage decodes one /api/articles/complex/{no} page; same
// tolerance rules as ParseSearchPage. Articles keep their upstream order
// and are not deduplicated here.
func ParseArticlesPage(raw []byte) (articles []Article, more bool, err error) {
	var root struct {
		ArticleList []json.RawMessage `json:"articleList"`
		IsMoreData  bool              `json:"isMoreData"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, false, err
	}
	if root.ArticleList == nil {
		log.Printf("[WARN] naverland: article page without articleList array")
		return nil, root.IsMoreData, nil
	}
	out := make([]Article, 0, len(root.ArticleList))
	for _, msg := range root.ArticleList {
		var a Article
		if err := json.Unmarshal(msg, &a); err != nil {
			log.Printf("[WARN] naverland: skipping undecodable article entry: %v", err)
			continue
		}
		if a.ArticleNo == "" {
			continue
		}
		out = append(out, a)
	}
	return out, root.IsMoreData, nil
}
