package fragment

import (
	"unicode"
)

// ScriptClass is a coarse classification of the dominant script of a piece of
// text. The analysis pipeline uses it for script-aware decisions: casing
// checks only apply to scripts that have case, and length ceilings differ
// between dense scripts (CJK, Indic) and alphabetic ones.
type ScriptClass int

const (
	// ScriptCased covers scripts with an upper/lower case distinction
	// (Latin, Cyrillic, Greek, Armenian, ...).
	ScriptCased ScriptClass = iota
	// ScriptCJK covers Chinese, Japanese, and Korean text.
	ScriptCJK
	// ScriptIndic covers Devanagari, Bengali, Tamil, and related scripts.
	ScriptIndic
	// ScriptRTL covers right-to-left scripts (Arabic, Hebrew).
	ScriptRTL
	// ScriptOther covers everything else, including digit-only text.
	ScriptOther
)

// String returns a short name for the script class.
func (s ScriptClass) String() string {
	switch s {
	case ScriptCased:
		return "cased"
	case ScriptCJK:
		return "cjk"
	case ScriptIndic:
		return "indic"
	case ScriptRTL:
		return "rtl"
	default:
		return "other"
	}
}

// Dense reports whether the script packs more information per character than
// alphabetic scripts. Headings in dense scripts are shorter in rune terms, so
// the scorer applies a lower length ceiling to them.
func (s ScriptClass) Dense() bool {
	return s == ScriptCJK || s == ScriptIndic
}

// DetectScript classifies a string by counting the script membership of its
// letters and returning the class with the highest count. Digits, punctuation,
// and whitespace are ignored. An empty or letterless string is ScriptOther.
func DetectScript(text string) ScriptClass {
	var cased, cjk, indic, rtl int

	for _, r := range text {
		switch {
		case IsCJK(r):
			cjk++
		case IsIndic(r):
			indic++
		case IsRTL(r):
			rtl++
		case unicode.IsUpper(r) || unicode.IsLower(r):
			cased++
		}
	}

	best, class := 0, ScriptOther
	for _, c := range []struct {
		n int
		s ScriptClass
	}{
		{cased, ScriptCased},
		{cjk, ScriptCJK},
		{indic, ScriptIndic},
		{rtl, ScriptRTL},
	} {
		if c.n > best {
			best, class = c.n, c.s
		}
	}
	return class
}

// HasCase reports whether the string contains any letters from a script with
// an upper/lower case distinction. CJK and similar scripts return false, so
// callers can skip casing checks for them.
func HasCase(text string) bool {
	for _, r := range text {
		if unicode.IsUpper(r) || unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// IsCJK reports whether r is in a CJK (Chinese, Japanese, Korean) Unicode block.
// This includes:
//   - CJK Unified Ideographs: U+4E00–U+9FFF
//   - CJK Extension A: U+3400–U+4DBF
//   - Hiragana: U+3040–U+309F
//   - Katakana: U+30A0–U+30FF
//   - Hangul: U+AC00–U+D7AF
func IsCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF) ||
		(r >= 0xAC00 && r <= 0xD7AF)
}

// IsIndic reports whether r is in one of the major Indic Unicode blocks.
// This includes:
//   - Devanagari: U+0900–U+097F
//   - Bengali: U+0980–U+09FF
//   - Gurmukhi: U+0A00–U+0A7F
//   - Gujarati: U+0A80–U+0AFF
//   - Tamil: U+0B80–U+0BFF
//   - Telugu: U+0C00–U+0C7F
//   - Kannada: U+0C80–U+0CFF
//   - Malayalam: U+0D00–U+0D7F
func IsIndic(r rune) bool {
	return (r >= 0x0900 && r <= 0x097F) ||
		(r >= 0x0980 && r <= 0x09FF) ||
		(r >= 0x0A00 && r <= 0x0A7F) ||
		(r >= 0x0A80 && r <= 0x0AFF) ||
		(r >= 0x0B80 && r <= 0x0BFF) ||
		(r >= 0x0C00 && r <= 0x0C7F) ||
		(r >= 0x0C80 && r <= 0x0CFF) ||
		(r >= 0x0D00 && r <= 0x0D7F)
}

// IsRTL reports whether r is in an Arabic or Hebrew Unicode block.
// This includes:
//   - Hebrew: U+0590–U+05FF
//   - Arabic: U+0600–U+06FF
//   - Arabic Supplement: U+0750–U+077F
//   - Arabic Presentation Forms-A: U+FB50–U+FDFF
//   - Arabic Presentation Forms-B: U+FE70–U+FEFF
func IsRTL(r rune) bool {
	return (r >= 0x0590 && r <= 0x05FF) ||
		(r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// IsArabicIndicDigit reports whether r is an Arabic-Indic or Extended
// Arabic-Indic digit (U+0660–U+0669, U+06F0–U+06F9).
func IsArabicIndicDigit(r rune) bool {
	return (r >= 0x0660 && r <= 0x0669) || (r >= 0x06F0 && r <= 0x06F9)
}

// IsDevanagariDigit reports whether r is a Devanagari digit (U+0966–U+096F).
func IsDevanagariDigit(r rune) bool {
	return r >= 0x0966 && r <= 0x096F
}
