// Package catalog names result files. A result file is called
// "<exam>.<year>.<level>.<group>.<session>.json"; its identifier is the
// lower-cased name without the extension.
package catalog

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Ext is the extension every result file carries.
const Ext = ".json"

var ErrInvalidName = errors.New("invalid result file name")

// Selection is the viewer's choice of exam and cohort.
type Selection struct {
	Exam    string `json:"exam" yaml:"exam"`
	Year    string `json:"year" yaml:"year"`
	Level   string `json:"level" yaml:"level"`
	Group   string `json:"group" yaml:"group"`
	Session string `json:"session" yaml:"session"`
}

// Complete reports whether every cohort part is chosen. The exam itself
// may still be empty.
func (s Selection) Complete() bool {
	return s.Year != "" && s.Level != "" && s.Group != "" && s.Session != ""
}

// Suffix is the lower-cased ".<year>.<level>.<group>.<session>.json" tail
// shared by every exam of the cohort.
func (s Selection) Suffix() string {
	return strings.ToLower(fmt.Sprintf(".%s.%s.%s.%s%s", s.Year, s.Level, s.Group, s.Session, Ext))
}

// FileName builds the lower-cased result file name. Every part is required.
func (s Selection) FileName() (string, error) {
	if s.Exam == "" || !s.Complete() {
		return "", fmt.Errorf("%w: incomplete selection", ErrInvalidName)
	}
	return strings.ToLower(s.Exam) + s.Suffix(), nil
}

// ID is the identifier of the selected file.
func (s Selection) ID() (string, error) {
	name, err := s.FileName()
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(name, Ext), nil
}

// Exams lists the exam names available for the selection's cohort, in the
// order of files. An incomplete selection yields nothing.
func Exams(files []string, s Selection) []string {
	if !s.Complete() {
		return nil
	}
	suffix := s.Suffix()
	var out []string
	for _, f := range files {
		if !strings.HasSuffix(strings.ToLower(f), suffix) {
			continue
		}
		exam := f[:len(f)-len(suffix)]
		if exam != "" {
			out = append(out, exam)
		}
	}
	return out
}

// Contains reports whether name is among files, ignoring case.
func Contains(files []string, name string) bool {
	for _, f := range files {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

// Parse splits an identifier or file name into its selection. The last
// four dotted parts are the cohort; whatever precedes them is the exam.
func Parse(id string) (Selection, error) {
	id = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(id), Ext))
	parts := strings.Split(id, ".")
	if len(parts) < 5 {
		return Selection{}, fmt.Errorf("%w: %q", ErrInvalidName, id)
	}
	n := len(parts)
	s := Selection{
		Exam:    strings.Join(parts[:n-4], "."),
		Year:    parts[n-4],
		Level:   parts[n-3],
		Group:   parts[n-2],
		Session: parts[n-1],
	}
	for _, p := range parts {
		if p == "" {
			return Selection{}, fmt.Errorf("%w: %q has an empty part", ErrInvalidName, id)
		}
	}
	return s, nil
}

// FileName turns an identifier into its file name.
func FileName(id string) string {
	return strings.ToLower(strings.TrimSuffix(id, Ext)) + Ext
}

// ID turns a file name into its identifier.
func ID(fileName string) string {
	return strings.ToLower(strings.TrimSuffix(fileName, Ext))
}

// CheckName rejects names that are not a plain "*.json" file name, such as
// paths or traversal attempts.
func CheckName(name string) error {
	switch {
	case name == "", name != path.Base(name), strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.HasPrefix(name, "."), !strings.HasSuffix(strings.ToLower(name), Ext):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ResultFiles keeps the names that end in ".json".
func ResultFiles(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasSuffix(n, Ext) {
			out = append(out, n)
		}
	}
	return out
}
