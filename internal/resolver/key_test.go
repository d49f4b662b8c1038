package resolver

import "testing"

func TestCacheKey_OrderAndCaseInsensitive(t *testing.T) {
	a := CacheKey("posters", []string{"a.pdf", "b.pdf", "c.pdf"})
	b := CacheKey("posters", []string{"C.PDF", "a.pdf", "B.pdf"})
	if a != b {
		t.Fatalf("ключ зависит от порядка/регистра: %q != %q", a, b)
	}
}

func TestCacheKey_DifferentSetsDiffer(t *testing.T) {
	a := CacheKey("posters", []string{"a.pdf"})
	b := CacheKey("posters", []string{"b.pdf"})
	if a == b {
		t.Fatal("разные наборы дали один ключ")
	}
}

func TestCacheKey_ScopeSeparation(t *testing.T) {
	a := CacheKey("posters", []string{"a.pdf"})
	b := CacheKey("stickers", []string{"a.pdf"})
	if a == b {
		t.Fatal("разные области поиска дали один ключ")
	}
}
