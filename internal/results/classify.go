package results

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind selects how a raw value is classified for ordering.
type Kind int

const (
	Textual Kind = iota
	Numeric
)

// Key is a classified sort value. The zero Key is null.
type Key struct {
	Valid bool
	Num   float64
	Text  string
}

// Null reports whether the key is absent and must sort to the bottom.
func (k Key) Null() bool { return !k.Valid }

func numKey(f float64) Key {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Key{}
	}
	return Key{Valid: true, Num: f}
}

func textKey(s string) Key { return Key{Valid: true, Text: s} }

// sentinels are placeholder tokens meaning "no value". Matched after
// trimming and lower-casing.
var sentinels = map[string]struct{}{
	"-":             {},
	"\u2014":        {}, // em dash
	"\u2013":        {}, // en dash
	"\u2212":        {}, // minus sign
	"absent":        {},
	"not qualified": {},
	"n/a":           {},
	"na":            {},
	"none":          {},
	"null":          {},
	"undefined":     {},
}

// IsSentinel reports whether s is an empty marker such as "-" or "N/A".
func IsSentinel(s string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Classify maps a raw field value to a sortable key. Nil, blank strings,
// sentinel tokens, unparsable numeric text and non-finite numbers all
// classify as null.
func Classify(raw any, kind Kind) Key {
	switch v := raw.(type) {
	case nil:
		return Key{}
	case *float64:
		if v == nil {
			return Key{}
		}
		return classifyNumber(*v, kind)
	case float64:
		return classifyNumber(v, kind)
	case float32:
		return classifyNumber(float64(v), kind)
	case int:
		return classifyNumber(float64(v), kind)
	case int64:
		return classifyNumber(float64(v), kind)
	case json.Number:
		// numbers are decoded as json.Number; treat as already numeric
		if f, err := v.Float64(); err == nil {
			return classifyNumber(f, kind)
		}
		return classifyText(v.String(), kind)
	case string:
		return classifyText(v, kind)
	default:
		return classifyText(fmt.Sprint(v), kind)
	}
}

func classifyNumber(f float64, kind Kind) Key {
	if kind == Numeric {
		return numKey(f)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return textKey(strings.ToLower(strconv.FormatFloat(f, 'g', -1, 64)))
	}
	return textKey(formatNumber(f))
}

func classifyText(s string, kind Kind) Key {
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}
	}
	low := strings.ToLower(s)
	if _, ok := sentinels[low]; ok {
		return Key{}
	}
	if kind == Numeric {
		cleaned := strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "%")
		f, ok := parseFloatPrefix(cleaned)
		if !ok {
			return Key{}
		}
		return numKey(f)
	}
	return textKey(norm.NFC.String(low))
}

var floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseFloatPrefix parses the longest leading decimal number in s, ignoring
// anything that follows it ("12.5 marks" parses as 12.5).
func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	m := floatPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// exponent overflow: ParseFloat still returns ±Inf, which is not finite
		return 0, false
	}
	return f, !math.IsInf(f, 0)
}

// formatNumber renders a float the shortest way ("5", "4.25").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Compare orders two non-null keys of the same kind: -1, 0 or 1.
func Compare(a, b Key, kind Kind) int {
	if kind == Numeric {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Text, b.Text)
}
