package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func TestSplitLastWord(t *testing.T) {
	testCases := []struct {
		input string
		head  string
		last  string
	}{
		{"", "", ""},
		{"   ", "", ""},
		{"ban", "", "ban"},
		{"ami  ban", "ami", "ban"},
		{" ami\ttomake  ban ", "ami tomake", "ban"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			head, last := SplitLastWord(tc.input)
			if head != tc.head || last != tc.last {
				t.Errorf("SplitLastWord(%q) = (%q, %q), expected (%q, %q)", tc.input, head, last, tc.head, tc.last)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	testCases := []struct {
		input    string
		n        int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"hello", -1, ""},
		// each Bengali letter is three bytes
		{"বাংলা", 4, "ব"},
		{"বাংলা", 6, "বা"},
	}

	for _, tc := range testCases {
		if got := Truncate(tc.input, tc.n); got != tc.expected {
			t.Errorf("Truncate(%q, %d) = %q, expected %q", tc.input, tc.n, got, tc.expected)
		}
	}
}

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("expected empty ranks, got %v", got)
	}
	if got := CreateRankList(3); !slices.Equal(got, []uint16{1, 2, 3}) {
		t.Errorf("unexpected ranks %v", got)
	}
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter(4)
	words := []string{"বাংলা", "বাংলা", "বাঙলা", "Ban", "ban"}
	var kept []string
	for _, w := range words {
		if f.ShouldInclude(w) {
			kept = append(kept, w)
		}
	}
	expected := []string{"বাংলা", "বাঙলা", "Ban", "ban"}
	if !slices.Equal(kept, expected) {
		t.Errorf("kept %v, expected %v", kept, expected)
	}
	if f.Len() != 4 {
		t.Errorf("expected 4 entries, got %d", f.Len())
	}
}

func TestSplitTOMLSections(t *testing.T) {
	doc := "top = 1\n[a]\nx = 1\n\n[b]\ny = 2\n"
	got := SplitTOMLSections(doc)
	expected := []string{"top = 1\n", "[a]\nx = 1\n\n", "[b]\ny = 2\n"}
	if !slices.Equal(got, expected) {
		t.Errorf("SplitTOMLSections = %q, expected %q", got, expected)
	}
}

func TestPathResolver(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	pr := NewPathResolver(dir)
	if paths := pr.SearchPaths(); len(paths) == 0 || paths[0] != dir {
		t.Fatalf("expected config dir first, got %v", paths)
	}

	got, err := pr.Resolve("rules.yaml")
	if err != nil || got != target {
		t.Errorf("Resolve = %q, %v; expected %q", got, err, target)
	}
	if _, err := pr.Resolve("nope.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := pr.Resolve(""); err == nil {
		t.Error("expected an error for an empty name")
	}
	if _, err := pr.Resolve(dir); err == nil {
		t.Error("expected a directory not to resolve as a file")
	}

	info := pr.RuntimeInfo()
	if info["config_dir"] != dir || info["os"] != runtime.GOOS {
		t.Errorf("unexpected runtime info %v", info)
	}
}
