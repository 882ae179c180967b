package phonetic

import (
	"sync"
	"testing"

	"github.com/bastiangx/phonetype/pkg/ruleset"
	"github.com/bastiangx/phonetype/pkg/script"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

func loadFixture(t testing.TB) *ruleset.Ruleset {
	t.Helper()
	rs, err := ruleset.LoadFile("testdata/fixture.yaml")
	if err != nil {
		t.Fatalf("failed to load fixture rules: %v", err)
	}
	return rs
}

func TestConvertFixture(t *testing.T) {
	engine := New(loadFixture(t))

	tests := []struct {
		description string
		input       string
		expected    string
	}{
		{"empty input", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"direct beats earlier guarded", "kh", "KH"},
		{"declaration order beats length", "th", "তH"},
		{"case-sensitive rune keeps case", "O", "ও"},
		{"lower-case variant", "o", "অ"},
		{"other capitals are folded", "A", "a"},
		{"case-sensitive then passthrough", "Ob", "ওb"},
		{"no rule passes uses default", "x", "X0"},
		{"position one has no prefix", "ax", "aX0"},
		{"prefix vowel", "aax", "aaXv"},
		{"prefix consonant", "abx", "abXc"},
		{"prefix punctuation falls to default", ".x", ".X0"},
		{"suffix exact window ending at text end", "qz", "Qzz"},
		{"suffix exact window inside text", "qzz", "Qzzz"},
		{"suffix exact out of bounds", "q", "Q"},
		{"negated vowel out of bounds fails", "y", "Y"},
		{"negated vowel on vowel fails", "ya", "Ya"},
		{"negated vowel on consonant passes", "yb", "Y!b"},
		{"both boundaries count as punctuation", "w", "W."},
		{"vowels around are not punctuation", "awa", "aWa"},
		{"space counts as punctuation", "a w", "a W."},
		{"digit counts as punctuation", "w1", "W.1"},
		{"negated punctuation at start fails", "v", "V"},
		{"position one counts as punctuation", "av", "aV"},
		{"negated punctuation after vowel passes", "aav", "aaV+"},
		{"unknown scope always passes", "j", "J?"},
		{"prefix exact", "aar", "aaR2"},
		{"prefix exact too short", "ar", "aR"},
		{"negated exact with suffix vowel", "ara", "aR3a"},
		{"negated exact blocked", "era", "eRa"},
		{"first passing rule wins", "aag", "aaG1"},
		{"second rule", "abg", "abG2"},
		{"no rule at start", "g", "G"},
		{"unmatched characters copied", "123 ñ", "123 ñ"},
		{"whitespace collapsed", "   kh   x  ", "KH X0"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			result := engine.Convert(tt.input)
			if result != tt.expected {
				t.Errorf("Convert(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLegacyExactBound(t *testing.T) {
	rs := loadFixture(t)
	standard := New(rs)
	legacy := New(rs, WithLegacyExactBound())

	tests := []struct {
		input    string
		standard string
		legacy   string
	}{
		{"qz", "Qzz", "Qz"},
		{"qzz", "Qzzz", "Qzzz"},
		{"q", "Q", "Q"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := standard.Convert(tt.input); got != tt.standard {
				t.Errorf("standard Convert(%q) = %q, expected %q", tt.input, got, tt.standard)
			}
			if got := legacy.Convert(tt.input); got != tt.legacy {
				t.Errorf("legacy Convert(%q) = %q, expected %q", tt.input, got, tt.legacy)
			}
		})
	}
}

func TestInclusivePrefixBound(t *testing.T) {
	rs := loadFixture(t)
	standard := New(rs)
	inclusive := New(rs, WithInclusivePrefixBound())

	tests := []struct {
		input     string
		standard  string
		inclusive string
	}{
		{"ax", "aX0", "aXv"},
		{"bx", "bX0", "bXc"},
		{"av", "aV", "aV+"},
		{"ag", "aG", "aG1"},
		{"aax", "aaXv", "aaXv"},
		{"x", "X0", "X0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := standard.Convert(tt.input); got != tt.standard {
				t.Errorf("standard Convert(%q) = %q, expected %q", tt.input, got, tt.standard)
			}
			if got := inclusive.Convert(tt.input); got != tt.inclusive {
				t.Errorf("inclusive Convert(%q) = %q, expected %q", tt.input, got, tt.inclusive)
			}
		})
	}
}

func TestConvertBundled(t *testing.T) {
	engine := New(nil)

	tests := []struct {
		description string
		input       string
		expected    string
	}{
		{"phrase", "amar sOnar bangla", "আমার সোনার বাংলা"},
		{"initial vowel then kar", "ami", "আমি"},
		{"ra-phala", "ami kri", "আমি ক্রি"},
		{"vowel after vowel", "ai", "আই"},
		{"conjunct", "amar rasta", "আমার রাস্তা"},
		{"doubled consonant", "kk", "ক্ক"},
		{"explicit hasanta keeps a joiner", "k,,k", "ক্\u200dক"},
		{"digraph", "amar desh", "আমার দেশ"},
		{"bare o", "o", "অ"},
		{"o with backtick", "o`", "অ"},
		{"capital folded", "Amar", "আমার"},
		{"case-sensitive capital", "amar kOtha", "আমার কোথা"},
		{"question", "ami ki khobor?", "আমি কি খবর?"},
		{"digits", "ami 2025 sale", "আমি ২০২৫ সালে"},
		{"sentence", "Ami banglay gan gai.", "আমি বাংলায় গান গাই।"},
		{"ksha", "kShoma", "ক্ষমা"},
		{"unmapped symbols", "#@!", "#@!"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			result := engine.Convert(tt.input)
			if result != tt.expected {
				t.Errorf("Convert(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBundledExactBoundary(t *testing.T) {
	// "a" followed by a trailing backtick is the case the two bounds disagree on
	if got := New(nil).Convert("a`"); got != "া" {
		t.Errorf("expected kar form, got %q", got)
	}
	if got := New(nil, WithLegacyExactBound()).Convert("a`"); got != "আ" {
		t.Errorf("expected full vowel with legacy bound, got %q", got)
	}
}

func TestBundledPrefixBound(t *testing.T) {
	standard := New(nil)
	inclusive := New(nil, WithInclusivePrefixBound())

	tests := []struct {
		input     string
		standard  string
		inclusive string
	}{
		{"ki", "কই", "কি"},
		{"kri", "করি", "ক্রি"},
		{"desh", "দএশ", "দেশ"},
		{"rasta", "রআস্তা", "রাস্তা"},
		{"kOtha", "কওথা", "কোথা"},
		{"amar desh", "আমার দেশ", "আমার দেশ"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := standard.Convert(tt.input); got != tt.standard {
				t.Errorf("standard Convert(%q) = %q, expected %q", tt.input, got, tt.standard)
			}
			if got := inclusive.Convert(tt.input); got != tt.inclusive {
				t.Errorf("inclusive Convert(%q) = %q, expected %q", tt.input, got, tt.inclusive)
			}
		})
	}
}

func TestScriptNormalizerOption(t *testing.T) {
	danda := func() transform.Transformer {
		return runes.Map(func(r rune) rune {
			if r == '|' {
				return '।'
			}
			return r
		})
	}

	engine := New(nil, WithScriptNormalizer(script.New(danda)))
	if got := engine.Convert("ami|"); got != "আমি।" {
		t.Errorf("expected the extra pass to map the bar, got %q", got)
	}
	if got := engine.Convert("k,,k"); got != "ক্\u200dক" {
		t.Errorf("expected the default cleanup to still run, got %q", got)
	}

	if got := New(nil, WithScriptNormalizer(nil)).Convert("k,,k"); got != "ক্\u200dক" {
		t.Errorf("expected a nil normalizer to keep the default, got %q", got)
	}
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"a", "a"},
		{"  a  b  ", "a b"},
		{"a\t\nb", "a b"},
		{" a b", "a b"},
	}
	for _, tt := range tests {
		if got := normalize(tt.input); got != tt.expected {
			t.Errorf("normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFixCase(t *testing.T) {
	engine := New(loadFixture(t))
	if got := engine.fixCase("OoAÉ"); got != "Ooaé" {
		t.Errorf("fixCase = %q, expected %q", got, "Ooaé")
	}
}

func TestConvertConcurrent(t *testing.T) {
	engine := New(nil)
	inputs := []string{"amar sOnar bangla", "kri", "desh", "a`", "ki khobor?"}
	expected := make([]string, len(inputs))
	for i, in := range inputs {
		expected[i] = engine.Convert(in)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 32; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				i := (g + n) % len(inputs)
				if got := engine.Convert(inputs[i]); got != expected[i] {
					select {
					case errs <- got:
					default:
					}
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent conversion diverged: %q", got)
	}
}

func BenchmarkConvert(b *testing.B) {
	engine := New(nil)
	text := "ami banglay gan gai ar tomar kotha bhabi"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Convert(text)
	}
}

func FuzzConvert(f *testing.F) {
	seeds := []string{
		"",
		"amar sOnar bangla",
		"a`",
		"kk,,k",
		"   ",
		"rri OI ng",
		"k,,k",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	engine := New(nil)
	f.Fuzz(func(t *testing.T, s string) {
		first := engine.Convert(s)
		if second := engine.Convert(s); first != second {
			t.Errorf("Convert(%q) is not deterministic: %q then %q", s, first, second)
		}
	})
}
