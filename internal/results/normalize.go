package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// RawRecord is one student object exactly as it appears in a result file.
type RawRecord = map[string]any

// ErrNoData is returned by Decode when the payload is not a JSON array.
var ErrNoData = errors.New("result data is not a JSON array")

// Decode reads a result file (a JSON array of student objects) and
// normalizes it. Field order inside each object is preserved so subject
// keys are discovered in file order. Array elements that are not objects
// are ignored.
func Decode(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, ErrNoData
	}

	var (
		raw   []RawRecord
		order [][]string
	)
	for dec.More() {
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		m, keys, err := decodeObject(msg)
		if err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		if m == nil {
			continue
		}
		raw = append(raw, m)
		order = append(order, keys)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return normalize(raw, order), nil
}

// decodeObject decodes one JSON object keeping its key order. A non-object
// value yields a nil map.
func decodeObject(msg json.RawMessage) (RawRecord, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, nil
	}
	m := RawRecord{}
	var keys []string
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		k, _ := kt.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := m[k]; !dup {
			keys = append(keys, k)
		}
		m[k] = v
	}
	return m, keys, nil
}

// Normalize converts raw records into a Dataset. It never fails: missing
// or malformed fields fall back to nil numbers, empty strings and an "F"
// grade. Subject keys are discovered as the union, in first-seen order, of
// every object-valued field that carries a termTotal member. Go maps carry
// no key order, so fields within one record are visited alphabetically;
// Decode keeps file order instead.
func Normalize(raw []RawRecord) *Dataset {
	return normalize(raw, nil)
}

func normalize(raw []RawRecord, order [][]string) *Dataset {
	ds := &Dataset{Records: make(map[string]*Record, len(raw))}
	seenSubject := map[string]bool{}
	var insertion []string

	for i, student := range raw {
		key, roll := rollKey(student["roll"], i)
		rec := &Record{
			Key:                  key,
			Roll:                 roll,
			Name:                 displayString(student["name"]),
			Section:              displayString(firstPresent(student, "Section", "section")),
			Status:               ParseStatus(displayString(student["status"])),
			GPA:                  toNumber(student["gpa"]),
			GPAWithoutAdditional: toNumber(student["gpaWithoutAdditional"]),
			TotalMark:            toNumber(student["totalMark"]),
			URL:                  displayString(student["url"]),
			Subjects:             map[string]SubjectScore{},
		}
		if ranking, ok := firstPresent(student, "Ranking", "ranking").(map[string]any); ok {
			rec.Ranking.Global = toNumber(ranking["global"])
			rec.Ranking.Section = toNumber(ranking["section"])
		}
		if opt := displayString(student["optionalSubject"]); opt != "" {
			rec.OptionalSubject = &opt
		}

		fields := sortedKeys(student)
		if i < len(order) {
			fields = order[i]
		}
		for _, field := range fields {
			obj, ok := subjectObject(field, student[field])
			if !ok {
				continue
			}
			if !seenSubject[field] {
				seenSubject[field] = true
				ds.Subjects = append(ds.Subjects, field)
			}
			rec.Subjects[field] = subjectScore(obj)
		}

		if _, dup := ds.Records[key]; !dup {
			insertion = append(insertion, key)
		}
		ds.Records[key] = rec
	}

	ds.Order = iterationOrder(insertion)
	return ds
}

func subjectObject(field string, v any) (map[string]any, bool) {
	if field == "Ranking" || field == "ranking" {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	if _, has := obj["termTotal"]; !has {
		return nil, false
	}
	return obj, true
}

func subjectScore(obj map[string]any) SubjectScore {
	grade := "F"
	if g, ok := obj["grade"]; ok && g != nil {
		grade = displayString(g)
	}
	return SubjectScore{
		CQ:        displayString(obj["cq"]),
		MCQ:       displayString(obj["mcq"]),
		Practical: displayString(obj["practical"]),
		TermTotal: displayString(obj["termTotal"]),
		Grade:     grade,
		GP:        toLooseNumber(obj["gp"]),
	}
}

// rollKey returns the map key and the stored roll value. Records without a
// roll get a positional key so they are never dropped.
func rollKey(v any, index int) (string, any) {
	switch r := v.(type) {
	case nil:
		return "row-" + strconv.Itoa(index+1), nil
	case json.Number:
		return r.String(), r
	case string:
		return r, r
	case float64:
		return formatNumber(r), json.Number(formatNumber(r))
	default:
		s := displayString(r)
		return s, s
	}
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// displayString renders scalar JSON values as text. Objects and arrays are
// not displayable and become "".
func displayString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return formatNumber(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// toNumber converts a numeric JSON value or strictly numeric text. Anything
// else, including sentinels, becomes nil so that "absent" stays distinct
// from a real zero.
func toNumber(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case json.Number:
		n, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return nil
		}
		f = n
	case float64:
		f = x
	case string:
		s := strings.TrimSpace(x)
		if s == "" || IsSentinel(s) {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = n
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// toLooseNumber is toNumber with leading-prefix parsing for text ("4.00 GP").
func toLooseNumber(v any) *float64 {
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" || IsSentinel(s) {
			return nil
		}
		f, ok := parseFloatPrefix(s)
		if !ok {
			return nil
		}
		return &f
	}
	return toNumber(v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// iterationOrder puts array-index-like keys ("0", "17", ...) first in
// ascending numeric order, followed by every other key in insertion order.
func iterationOrder(insertion []string) []string {
	var indexed, named []string
	for _, k := range insertion {
		if isIndexKey(k) {
			indexed = append(indexed, k)
		} else {
			named = append(named, k)
		}
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		a, _ := strconv.ParseUint(indexed[i], 10, 64)
		b, _ := strconv.ParseUint(indexed[j], 10, 64)
		return a < b
	})
	return append(indexed, named...)
}

func isIndexKey(k string) bool {
	if k == "" || len(k) > 10 || (len(k) > 1 && k[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(k, 10, 64)
	return err == nil && n < math.MaxUint32
}
