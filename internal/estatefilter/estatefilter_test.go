package estatefilter

import (
	"testing"

	"github.com/yourorg/land-api/naverland"
)

func TestComplexesFiltersByCodeAndName(t *testing.T) {
	in := []naverland.Complex{
		{ComplexNo: "1", RealEstateTypeCode: "APT", RealEstateTypeName: "아파트"},
		{ComplexNo: "2", RealEstateTypeName: "오피스텔 101호"}, // no code, name match
		{ComplexNo: "3", RealEstateTypeCode: "ABYG", RealEstateTypeName: "연립주택"},
		{ComplexNo: "4"}, // neither code nor name
	}

	got := Complexes(in, "APT:OPST")
	if len(got) != 2 {
		t.Fatalf("got %d complexes, want 2: %+v", len(got), got)
	}
	if got[0].ComplexNo != "1" || got[1].ComplexNo != "2" {
		t.Errorf("wrong complexes kept: %+v", got)
	}
}

func TestComplexesExcludesNonMatchingCode(t *testing.T) {
	in := []naverland.Complex{
		{ComplexNo: "1", RealEstateTypeCode: "ABYG", RealEstateTypeName: "연립"},
	}
	if got := Complexes(in, "APT"); len(got) != 0 {
		t.Errorf("ABYG complex passed an APT-only filter: %+v", got)
	}
}

func TestComplexesDefaultFilterIsPassthrough(t *testing.T) {
	in := []naverland.Complex{
		{ComplexNo: "1", RealEstateTypeCode: "APT"},
		{ComplexNo: "2"}, // would never match any code or name
	}
	got := Complexes(in, naverland.DefaultRealEstateTypes)
	if len(got) != len(in) {
		t.Fatalf("default filter dropped entries: got %d, want %d", len(got), len(in))
	}
	if got := Complexes(in, ""); len(got) != len(in) {
		t.Fatalf("empty filter dropped entries: got %d", len(got))
	}
}

func TestComplexesNameHints(t *testing.T) {
	cases := []struct {
		name   string
		filter string
		want   bool
	}{
		{"아파트", "APT", true},
		{"주상복합 오피", "OPST", true},
		{"빌라", "ABYG", true},
		{"다가구", "OBYG", true},
		{"단독주택", "OBYG", true},
		{"아파트", "OPST", false},
	}
	for _, c := range cases {
		in := []naverland.Complex{{ComplexNo: "1", RealEstateTypeName: c.name}}
		got := Complexes(in, c.filter)
		if (len(got) == 1) != c.want {
			t.Errorf("name %q filter %q: included=%v, want %v", c.name, c.filter, len(got) == 1, c.want)
		}
	}
}

func TestComplexesKeepsDuplicates(t *testing.T) {
	in := []naverland.Complex{
		{ComplexNo: "9", RealEstateTypeCode: "APT"},
		{ComplexNo: "9", RealEstateTypeCode: "APT"},
	}
	if got := Complexes(in, "APT"); len(got) != 2 {
		t.Errorf("filter deduplicated across pages: got %d, want 2", len(got))
	}
}
