package v1

import (
	"strings"
	"testing"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("강남구 역삼동", "APT")
	if !strings.HasPrefix(a, "cpx:search:") {
		t.Fatalf("key = %q", a)
	}
	if a != CacheKey("강남구 역삼동", "APT") {
		t.Fatal("key not deterministic")
	}
	if a == CacheKey("강남구 역삼동", "OPST") {
		t.Fatal("filter must be part of the key")
	}
	if a == CacheKey("강남구 삼성동", "APT") {
		t.Fatal("keyword must be part of the key")
	}
}
