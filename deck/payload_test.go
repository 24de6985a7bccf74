package deck

import (
	"encoding/json"
	"errors"
	"testing"
)

func detailFromJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  GenerateRequest
		ok   bool
	}{
		{"single article", GenerateRequest{DocumentTitle: "t", ClientName: "c", ArticleDetail: map[string]any{"articleNo": "1"}}, true},
		{"properties list", GenerateRequest{DocumentTitle: "t", ClientName: "c", Properties: []PropertyPayload{{}}}, true},
		{"missing title", GenerateRequest{ClientName: "c", ArticleDetail: map[string]any{"articleNo": "1"}}, false},
		{"missing client", GenerateRequest{DocumentTitle: "t", ArticleDetail: map[string]any{"articleNo": "1"}}, false},
		{"no article no properties", GenerateRequest{DocumentTitle: "t", ClientName: "c"}, false},
	}
	for _, c := range cases {
		err := c.req.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("%s: err = %v, want ErrInvalidRequest", c.name, err)
		}
	}
}

func TestBuildPayloadReshapesImages(t *testing.T) {
	detail := detailFromJSON(t, `{
		"articleNo": "2491813579",
		"articleName": "역삼푸르지오",
		"grandPlanList": [
			{"imageId": "p1", "imageSrc": "https://img/plan1.png", "imageType": "14"},
			{"imageId": "p2", "imageSrc": "", "imageType": "14"}
		]
	}`)
	req := &GenerateRequest{
		DocumentTitle: "제안서",
		ClientName:    "고객",
		ArticleDetail: detail,
		ArticlePhotos: []Photo{{ImageSrc: "https://img/1.jpg"}, {ImageSrc: ""}, {ImageSrc: "https://img/2.jpg"}},
	}
	payload, err := BuildPayload(req, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := payload["articleDetail"].(map[string]any)

	photos := out["articlePhotos"].([]map[string]string)
	if len(photos) != 2 || photos[0]["photoUrl"] != "https://img/1.jpg" {
		t.Errorf("photos reshaped wrong: %v", photos)
	}
	plans := out["complexPyeongDetailList"].([]map[string]string)
	if len(plans) != 1 || plans[0]["floorPlanUrl"] != "https://img/plan1.png" {
		t.Errorf("floor plans reshaped wrong: %v", plans)
	}
	if _, stillThere := out["grandPlanList"]; stillThere {
		t.Error("grandPlanList not renamed away")
	}
	// untouched fields pass through
	if out["articleName"] != "역삼푸르지오" {
		t.Errorf("detail field lost: %v", out["articleName"])
	}
}

func TestBuildPayloadMultipleProperties(t *testing.T) {
	req := &GenerateRequest{
		DocumentTitle: "t",
		ClientName:    "c",
		Properties: []PropertyPayload{
			{ArticleDetail: detailFromJSON(t, `{"articleNo":"1","articlePhotos":[{"imageSrc":"https://img/a.jpg"}]}`)},
			{ArticleDetail: detailFromJSON(t, `{"articleNo":"2"}`)},
		},
	}
	payload, err := BuildPayload(req, nil)
	if err != nil {
		t.Fatal(err)
	}
	props := payload["properties"].([]map[string]any)
	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2", len(props))
	}
	first := props[0]["articleDetail"].(map[string]any)
	photos := first["articlePhotos"].([]map[string]string)
	if len(photos) != 1 || photos[0]["photoUrl"] != "https://img/a.jpg" {
		t.Errorf("embedded photos reshaped wrong: %v", photos)
	}
}

func TestBuildPayloadMapImage(t *testing.T) {
	detail := map[string]any{"articleNo": "1", "latitude": "37.5154881", "longitude": "127.0399418"}
	req := &GenerateRequest{DocumentTitle: "t", ClientName: "c", ArticleDetail: detail}

	payload, err := BuildPayload(req, StaticMap{BaseURL: "https://maps.example/static", Key: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := payload["mapImageUrl"]; !ok {
		t.Error("map image missing despite configured provider and coordinates")
	}

	// missing coordinates: non-fatal, just no map
	req2 := &GenerateRequest{DocumentTitle: "t", ClientName: "c", ArticleDetail: map[string]any{"articleNo": "1"}}
	payload2, err := BuildPayload(req2, StaticMap{BaseURL: "https://maps.example/static", Key: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := payload2["mapImageUrl"]; ok {
		t.Error("map image set without coordinates")
	}

	// unconfigured provider: also non-fatal
	payload3, err := BuildPayload(req, StaticMap{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := payload3["mapImageUrl"]; ok {
		t.Error("map image set without provider config")
	}
}
