// Package script cleans up converted Bengali text: it joins consonant
// clusters written with a virama and drops zero-width characters that ended up
// in front of consonants which never take them.
package script

import (
	"bytes"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/text/transform"
)

const (
	virama = '\u09CD'
	nukta  = '\u09BC'
	zwj    = '\u200D'
	zwnj   = '\u200C'
)

var zwjBytes = []byte(string(zwj))

// Normalizer runs the ligature join, any extra passes and the zero-width
// cleanup, in that order.
type Normalizer struct {
	extra []func() transform.Transformer
}

// New returns a Normalizer. Each extra constructor is called once per
// Normalize call and its transformer runs between the join and the cleanup,
// which is where matra handling belongs.
func New(extra ...func() transform.Transformer) *Normalizer {
	return &Normalizer{extra: extra}
}

// Normalize applies the passes to s in order. Applying it twice gives the same
// result as applying it once, provided the extra passes are idempotent too.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return s
	}
	passes := make([]transform.Transformer, 0, len(n.extra)+2)
	passes = append(passes, &ligatureJoiner{})
	for _, mk := range n.extra {
		passes = append(passes, mk())
	}
	passes = append(passes, &zeroWidthCleaner{})

	out := s
	for _, t := range passes {
		next, _, err := transform.String(t, out)
		if err != nil {
			log.Warnf("script normalization failed, returning input unchanged: %v", err)
			return s
		}
		out = next
	}
	return out
}

var std = New()

// Normalize applies the default chain.
func Normalize(s string) string {
	return std.Normalize(s)
}

// neverFollows lists the consonants a joiner must not precede. The nukta is
// included because ড় ঢ় য় are written as a base letter plus U+09BC.
func neverFollows(r rune) bool {
	switch {
	case r >= 'ক' && r <= 'ন':
		return true
	case r >= 'প' && r <= 'র':
		return true
	case r == 'ল':
		return true
	case r >= 'শ' && r <= 'হ':
		return true
	case r == nukta:
		return true
	}
	return false
}

func isZeroWidth(r rune) bool {
	return r == zwj || r == zwnj
}

// ligatureJoiner inserts a ZWJ after every virama that is followed by
// anything other than another virama. A virama at the end is left alone.
type ligatureJoiner struct{ transform.NopResetter }

func (ligatureJoiner) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		join := false
		if r == virama {
			rest := src[nSrc+size:]
			if !atEOF && !utf8.FullRune(rest) {
				// need the next rune to decide
				return nDst, nSrc, transform.ErrShortSrc
			}
			if len(rest) > 0 {
				next, _ := utf8.DecodeRune(rest)
				join = next != virama
			}
		}

		need := size
		if join {
			need += len(zwjBytes)
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		if join {
			nDst += copy(dst[nDst:], zwjBytes)
		}
		nSrc += size
	}
	return nDst, nSrc, nil
}

// zeroWidthCleaner rewrites each run of ZWJ/ZWNJ by looking at the rune
// before it and the rune after it.
//
// A run that does not follow a virama is dropped when the next rune is a
// never-follows consonant and kept otherwise.
//
// A run that follows a virama starts with the ZWJ the joiner inserted. What
// remains after it is whatever the text carried explicitly. Before a
// never-follows consonant the run becomes empty if nothing explicit was there
// and a single ZWJ otherwise, so ক্ক stays bare while an explicit hasanta
// keeps its joiner. Anywhere else the explicit part is kept, led by one ZWJ.
type zeroWidthCleaner struct {
	afterVirama bool
}

func (c *zeroWidthCleaner) Reset() { c.afterVirama = false }

func (c *zeroWidthCleaner) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])
		if !isZeroWidth(r) {
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
			nSrc += size
			c.afterVirama = r == virama
			continue
		}

		// measure the whole run before deciding
		end := nSrc
		for end < len(src) {
			if !atEOF && !utf8.FullRune(src[end:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			rr, sz := utf8.DecodeRune(src[end:])
			if !isZeroWidth(rr) {
				break
			}
			end += sz
		}
		if end == len(src) && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		beforeConsonant := false
		if end < len(src) {
			next, _ := utf8.DecodeRune(src[end:])
			beforeConsonant = neverFollows(next)
		}

		run := src[nSrc:end]
		var lead []byte
		if c.afterVirama {
			explicit := bytes.TrimPrefix(run, zwjBytes)
			switch {
			case beforeConsonant && len(explicit) == 0:
				run = nil
			case beforeConsonant:
				run = zwjBytes
			case bytes.HasPrefix(explicit, zwjBytes):
				run = explicit
			default:
				lead, run = zwjBytes, explicit
			}
		} else if beforeConsonant {
			run = nil
		}

		if nDst+len(lead)+len(run) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], lead)
		nDst += copy(dst[nDst:], run)
		nSrc = end
		c.afterVirama = false
	}
	return nDst, nSrc, nil
}
