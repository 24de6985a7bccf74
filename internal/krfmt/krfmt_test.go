package krfmt

import (
	"fmt"
	"strings"
	"testing"
)

func TestParsePriceToManwon(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2억 5,000", 25000, true},
		{"10억", 100000, true},
		{"2억5000", 25000, true},
		{"5000만", 5000, true},
		{"5,000만", 5000, true},
		{"7500", 7500, true},
		{"1억 5,000만", 15000, true},
		{"3억 잘못된값", 30000, true}, // malformed remainder ignored
		{"0", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"가격미정", 0, false},
	}
	for _, c := range cases {
		got, ok := ParsePriceToManwon(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParsePriceToManwon(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFormatManwon(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{25000, "2억 5,000만"},
		{50000, "5억"},
		{3000, "3,000만"},
		{123456, "12억 3,456만"},
		{10000, "1억"},
		{500, "500만"},
		{0, "-"},
	}
	for _, c := range cases {
		if got := FormatManwon(c.in); got != c.want {
			t.Errorf("FormatManwon(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"25000", "2억 5,000만"},
		{"25,000", "2억 5,000만"},
		{"0", "-"},
		{"", "-"},
		{"abc", "-"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.in); got != c.want {
			t.Errorf("FormatPrice(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatManwonRoundTrip(t *testing.T) {
	// every amount expressible as eok/man decomposes losslessly
	for _, eok := range []int64{0, 1, 2, 15, 120} {
		for _, man := range []int64{0, 1, 500, 3000, 9999} {
			total := eok*10000 + man
			if total == 0 {
				continue
			}
			got := FormatManwon(float64(total))
			if eok > 0 && !strings.Contains(got, fmt.Sprintf("%d억", eok)) {
				t.Errorf("FormatManwon(%d) = %q, missing %d억", total, got, eok)
			}
			if man > 0 && !strings.HasSuffix(got, groupThousands(man)+"만") {
				t.Errorf("FormatManwon(%d) = %q, missing %s만", total, got, groupThousands(man))
			}
			if eok > 0 && man == 0 && strings.Contains(got, "만") {
				t.Errorf("FormatManwon(%d) = %q, unexpected 만 part", total, got)
			}
			back, ok := ParsePriceToManwon(got)
			if !ok || back != float64(total) {
				t.Errorf("round trip %d -> %q -> (%v, %v)", total, got, back, ok)
			}
		}
	}
}

func TestM2ToPyeong(t *testing.T) {
	if got := M2ToPyeong(100); got != "30.25" {
		t.Errorf("M2ToPyeong(100) = %q, want 30.25", got)
	}
	if got := M2ToPyeong(0); got != "-" {
		t.Errorf("M2ToPyeong(0) = %q, want -", got)
	}
	if got := M2ToPyeongText("84.98"); got != "25.71" {
		t.Errorf(`M2ToPyeongText("84.98") = %q, want 25.71`, got)
	}
	if got := M2ToPyeongText(""); got != "-" {
		t.Errorf(`M2ToPyeongText("") = %q, want -`, got)
	}
	if got := M2ToPyeongText("면적미상"); got != "-" {
		t.Errorf(`M2ToPyeongText("면적미상") = %q, want -`, got)
	}
}
