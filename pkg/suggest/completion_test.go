package suggest

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/bastiangx/phonetype/pkg/phonetic"
	"github.com/bastiangx/phonetype/pkg/ruleset"
)

func newFixtureIndexer(t testing.TB, cacheSize int) *Indexer {
	t.Helper()
	rs, err := ruleset.LoadFile("testdata/suggest.yaml")
	if err != nil {
		t.Fatalf("failed to load fixture rules: %v", err)
	}
	return NewIndexer(phonetic.New(rs), cacheSize)
}

func TestSuggest(t *testing.T) {
	ix := newFixtureIndexer(t, 0)

	testCases := []struct {
		description string
		input       string
		limit       int
		expected    []string
	}{
		{"duplicates collapse, declaration order kept", "ban", 10, []string{"বাংলা", "বানানা", "বাং"}},
		{"limit respected", "ban", 2, []string{"বাংলা", "বানানা"}},
		{"prior words are converted too", "ami ban", 2, []string{"আমি বাংলা", "আমি বানানা"}},
		{"trailing space ignored", "ban ", 5, []string{"বাংলা", "বানানা", "বাং"}},
		{"single character is too short", "b", 5, []string{}},
		{"nothing extends a full key", "bangla", 5, []string{}},
		{"unknown prefix", "zz", 5, []string{}},
		{"blank input", "   ", 5, []string{}},
		{"zero limit", "ban", 0, []string{}},
		{"negative limit", "ban", -3, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := ix.Suggest(tc.input, tc.limit)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("Suggest(%q, %d) = %q, expected %q", tc.input, tc.limit, got, tc.expected)
			}
		})
	}
}

func TestSuggestBundled(t *testing.T) {
	ix := NewIndexer(phonetic.New(nil), 0)

	got := ix.Suggest("ng", 5)
	expected := []string{"ঙ্গৌ", "ঙ্গৈ", "ঙ্ঘ", "ঙ্গ", "ঙ্গা"}
	if !slices.Equal(got, expected) {
		t.Errorf("Suggest(ng) = %q, expected %q", got, expected)
	}

	got = ix.Suggest("ami ng", 3)
	expected = []string{"আমি ঙ্গৌ", "আমি ঙ্গৈ", "আমি ঙ্ঘ"}
	if !slices.Equal(got, expected) {
		t.Errorf("Suggest(ami ng) = %q, expected %q", got, expected)
	}
}

func TestRenderCacheIsTransparent(t *testing.T) {
	uncached := newFixtureIndexer(t, 0)
	// small enough to force evictions
	cached := newFixtureIndexer(t, 2)

	inputs := []string{"ban", "ami ban", "ba", "ban", "ami ba", "ban"}
	for _, in := range inputs {
		want := uncached.Suggest(in, 10)
		got := cached.Suggest(in, 10)
		if !slices.Equal(got, want) {
			t.Errorf("Suggest(%q) with cache = %q, without = %q", in, got, want)
		}
	}

	stats := cached.Stats()
	if stats["renderCacheEntries"] > 2 {
		t.Errorf("cache grew past its bound: %v", stats)
	}
	if _, ok := uncached.Stats()["renderCacheEntries"]; ok {
		t.Error("expected no cache stats when the cache is disabled")
	}
}

func TestRenderCache(t *testing.T) {
	if NewRenderCache(0) != nil {
		t.Fatal("expected a nil cache for size 0")
	}

	rc := NewRenderCache(2)
	rc.Put("a", "1")
	rc.Put("b", "2")
	if _, ok := rc.Get("a"); !ok {
		t.Fatal("expected a hit for a")
	}
	// b is now the least recently used
	rc.Put("c", "3")

	if _, ok := rc.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if v, ok := rc.Get("a"); !ok || v != "1" {
		t.Errorf("expected a to survive, got %q, %v", v, ok)
	}
	if v, ok := rc.Get("c"); !ok || v != "3" {
		t.Errorf("expected c cached, got %q, %v", v, ok)
	}
	if rc.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", rc.Len())
	}

	stats := rc.Stats()
	if stats["renderCacheHits"] != 3 || stats["renderCacheMisses"] != 1 {
		t.Errorf("unexpected stats %v", stats)
	}
}

func TestSuggestConcurrent(t *testing.T) {
	ix := newFixtureIndexer(t, 4)
	want := ix.Suggest("ami ban", 10)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				if got := ix.Suggest("ami ban", 10); !slices.Equal(got, want) {
					errs <- fmt.Errorf("got %q", got)
					return
				}
				ix.Suggest("ba", 10)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func BenchmarkSuggest(b *testing.B) {
	ix := NewIndexer(phonetic.New(nil), 2048)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.Suggest("ami ng", 8)
	}
}
