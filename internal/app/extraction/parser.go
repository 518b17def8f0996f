package extraction

import (
	"fmt"
	"strings"
)

// Kind tags a parse result.
type Kind int

const (
	Unparseable Kind = iota
	Parsed
)

func (k Kind) String() string {
	if k == Parsed {
		return "parsed"
	}
	return "unparseable"
}

// Fields are the answers extracted from a language-model reply.
type Fields struct {
	Absence          string `json:"absence"`
	ChildName        string `json:"childName"`
	ReasonForAbsence string `json:"reasonForAbsence"`
	LengthOfAbsence  string `json:"lengthOfAbsence"`
}

// Result is either Parsed with Fields set, or Unparseable with Reason set.
// Raw always holds the input.
type Result struct {
	Kind   Kind
	Fields Fields
	Raw    string
	Reason string
}

func (r Result) OK() bool {
	return r.Kind == Parsed
}

// line describes one expected answer line. Labels are matched case-insensitively
// including their trailing colon.
type line struct {
	name   string
	labels []string
	set    func(f *Fields, value string)
}

var expectedLines = []line{
	{"absence", []string{"absence notification:"}, func(f *Fields, v string) { f.Absence = v }},
	{"child name", []string{"child name:"}, func(f *Fields, v string) { f.ChildName = v }},
	{"reason", []string{"reason:"}, func(f *Fields, v string) { f.ReasonForAbsence = v }},
	{"length of absence", []string{
		"morning, afternoon, all day:",
		"length of absence:",
		"am, pm, all day:",
	}, func(f *Fields, v string) { f.LengthOfAbsence = v }},
}

// Parse maps the non-blank lines of raw, in order, onto the expected labels.
// Lines after the last expected one are ignored.
func Parse(raw string) Result {
	lines := nonBlankLines(raw)
	if len(lines) < len(expectedLines) {
		return Result{
			Kind:   Unparseable,
			Raw:    raw,
			Reason: fmt.Sprintf("expected %d answer lines, got %d", len(expectedLines), len(lines)),
		}
	}

	var fields Fields
	for i, expected := range expectedLines {
		value, ok := stripLabel(lines[i], expected.labels)
		if !ok {
			return Result{
				Kind:   Unparseable,
				Raw:    raw,
				Reason: fmt.Sprintf("line %d: expected %s, got %q", i+1, expected.name, lines[i]),
			}
		}
		expected.set(&fields, value)
	}

	return Result{Kind: Parsed, Fields: fields, Raw: raw}
}

func nonBlankLines(raw string) []string {
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// stripLabel removes a list marker such as "1." or "-" and then one of labels from
// the start of l, returning the trimmed remainder.
func stripLabel(l string, labels []string) (string, bool) {
	l = stripListMarker(l)
	lower := strings.ToLower(l)
	for _, label := range labels {
		if strings.HasPrefix(lower, label) {
			return strings.TrimSpace(l[len(label):]), true
		}
	}
	return "", false
}

func stripListMarker(l string) string {
	if strings.HasPrefix(l, "-") || strings.HasPrefix(l, "*") {
		return strings.TrimSpace(l[1:])
	}

	digits := 0
	for digits < len(l) && l[digits] >= '0' && l[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(l) && (l[digits] == '.' || l[digits] == ')') {
		return strings.TrimSpace(l[digits+1:])
	}
	return l
}
