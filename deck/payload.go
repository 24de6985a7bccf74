// Package deck builds slide-deck generation requests and relays them to
// the external rendering service.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Photo is a photo reference as the dashboard sends it (upstream shape).
type Photo struct {
	ImageSrc string `json:"imageSrc"`
}

// PropertyPayload is one selected listing inside a multi-property request.
type PropertyPayload struct {
	ArticleDetail   map[string]any `json:"articleDetail"`
	ArticleAddition map[string]any `json:"articleAddition"`
}

// GenerateRequest is the dashboard's deck request.
type GenerateRequest struct {
	ArticleDetail   map[string]any    `json:"articleDetail"`
	ArticleAddition map[string]any    `json:"articleAddition"`
	ArticlePhotos   []Photo           `json:"articlePhotos"`
	DocumentTitle   string            `json:"documentTitle"`
	ClientName      string            `json:"clientName"`
	CompanyName     string            `json:"companyName"`
	CompanyLogoURL  string            `json:"companyLogoUrl"`
	Properties      []PropertyPayload `json:"properties"`
}

// ErrInvalidRequest covers every missing-required-input case; no network
// call is attempted when Validate fails.
var ErrInvalidRequest = errors.New("invalid deck request")

func (r *GenerateRequest) Validate() error {
	if r.DocumentTitle == "" || r.ClientName == "" {
		return fmt.Errorf("%w: documentTitle and clientName are required", ErrInvalidRequest)
	}
	if len(r.Properties) > 0 {
		return nil
	}
	if no, _ := r.ArticleDetail["articleNo"].(string); no == "" {
		return fmt.Errorf("%w: articleDetail.articleNo or a non-empty properties list is required", ErrInvalidRequest)
	}
	return nil
}

// MapImageProvider supplies a static map image URL for a coordinate pair.
// Providers report ok=false when unconfigured; that is never fatal.
type MapImageProvider interface {
	StaticMapURL(lat, lon string) (string, bool)
}

// StaticMap points at a key-authenticated static map endpoint.
type StaticMap struct {
	BaseURL string
	Key     string
}

func (m StaticMap) StaticMapURL(lat, lon string) (string, bool) {
	if m.BaseURL == "" || m.Key == "" || lat == "" || lon == "" {
		return "", false
	}
	return fmt.Sprintf("%s?center=%s,%s&zoom=16&size=600x400&key=%s", m.BaseURL, lat, lon, m.Key), true
}

// BuildPayload reshapes the dashboard request into the renderer's input:
// photo references become {photoUrl} entries, floor plans move under
// complexPyeongDetailList as {floorPlanUrl} entries, and a map image is
// attached when the provider and coordinates allow. The rest of each
// detail payload passes through untouched.
func BuildPayload(r *GenerateRequest, maps MapImageProvider) (map[string]any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	detail := reshapeDetail(r.ArticleDetail, photoURLs(r.ArticlePhotos))
	payload := map[string]any{
		"articleDetail":   detail,
		"articleAddition": orEmpty(r.ArticleAddition),
		"documentTitle":   r.DocumentTitle,
		"clientName":      r.ClientName,
		"companyName":     r.CompanyName,
		"companyLogoUrl":  r.CompanyLogoURL,
	}

	if maps != nil {
		lat := stringField(r.ArticleDetail, "latitude")
		lon := stringField(r.ArticleDetail, "longitude")
		if u, ok := maps.StaticMapURL(lat, lon); ok {
			payload["mapImageUrl"] = u
		}
	}

	if len(r.Properties) > 0 {
		props := make([]map[string]any, 0, len(r.Properties))
		for _, p := range r.Properties {
			props = append(props, map[string]any{
				"articleDetail":   reshapeDetail(p.ArticleDetail, nil),
				"articleAddition": orEmpty(p.ArticleAddition),
			})
		}
		payload["properties"] = props
	}
	return payload, nil
}

// reshapeDetail keeps every field of detail, replacing the photo list with
// simplified {photoUrl} entries and renaming the floor-plan list. photos
// overrides the embedded articlePhotos when non-nil.
func reshapeDetail(detail map[string]any, photos []map[string]string) map[string]any {
	out := make(map[string]any, len(detail)+2)
	for k, v := range detail {
		out[k] = v
	}
	if photos == nil {
		photos = simplifyImageList(detail["articlePhotos"], "imageSrc", "photoUrl")
	}
	out["articlePhotos"] = photos
	out["complexPyeongDetailList"] = simplifyImageList(detail["grandPlanList"], "imageSrc", "floorPlanUrl")
	delete(out, "grandPlanList")
	return out
}

func photoURLs(photos []Photo) []map[string]string {
	out := make([]map[string]string, 0, len(photos))
	for _, p := range photos {
		if p.ImageSrc == "" {
			continue
		}
		out = append(out, map[string]string{"photoUrl": p.ImageSrc})
	}
	return out
}

// simplifyImageList turns an upstream image list into [{dstKey: url}],
// dropping entries without a resolvable URL.
func simplifyImageList(v any, srcKey, dstKey string) []map[string]string {
	out := []map[string]string{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		src, _ := m[srcKey].(string)
		if src == "" {
			continue
		}
		out = append(out, map[string]string{dstKey: src})
	}
	return out
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return ""
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
