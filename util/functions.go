package util

import (
	"sort"
	. "unicode"
	"unicode/utf8"
)

func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

type RuneTester func(r rune) bool

func TestEach(t RuneTester, s string) byte {
	for i, w := 0, 0; i < len(s); i += w {
		runeValue, width := utf8.DecodeRuneInString(s[i:])
		if t(runeValue) {
			return 't'
		}
		w = width
	}
	return 'f'
}

var Testers = []RuneTester{
	IsDigit,
	IsLetter,
	IsLower,
	IsPunct,
	IsSymbol,
	IsUpper,
}

// Signature encodes which character classes occur in s, one byte per tester.
func Signature(s string) string {
	indicators := make([]byte, len(Testers))
	for i, t := range Testers {
		indicators[i] = TestEach(t, s)
	}
	return string(indicators)
}

// Prefix returns up to the first n runes of s.
func Prefix(s string, n int) string {
	r := []rune(s)
	return string(r[0:Min(len(r), n)])
}

// Suffix returns up to the last n runes of s.
func Suffix(s string, n int) string {
	r := []rune(s)
	return string(r[Max(len(r)-n, 0):len(r)])
}

// SortedKeys returns the keys of m in lexicographic order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
