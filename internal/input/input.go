// Package input reads root documents: a mapping from label to a
// {base, value} pair, plus the reserved "keys" label holding the declared
// entry count n and the selection count k.
//
// The reserved label is resolved into the typed Keys field at read time, so
// downstream packages only ever see root entries. Documents may be written
// as JSON, JSONC (comments and trailing commas) or YAML:
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1": {"base": "10", "value": "4"},
//	  "2": {"base": "2", "value": "111"}
//	}
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agbru/polyroots/internal/numeral"
	"github.com/agbru/polyroots/internal/roots"
)

// KeysLabel is the reserved configuration label.
const KeysLabel = "keys"

var (
	// ErrMalformedEntry is returned for an entry that is not an object, or
	// that lacks its base or value field.
	ErrMalformedEntry = errors.New("malformed entry")
	// ErrUnknownLabel is returned for a label that is neither "keys" nor a
	// non-negative decimal integer.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrInvalidDocument is returned when the document is not a mapping or
	// cannot be parsed at all.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrUnsupportedFormat is returned for an unknown format name.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Keys holds the optional declared counts from the "keys" entry.
type Keys struct {
	// N is the declared number of root entries, nil when absent.
	N *int `json:"n,omitempty" yaml:"n,omitempty"`
	// K is the declared selection count, nil when absent.
	K *int `json:"k,omitempty" yaml:"k,omitempty"`
}

// Document is a parsed root document.
type Document struct {
	// Keys is nil when the document has no "keys" entry.
	Keys *Keys
	// Entries are the root entries in document order.
	Entries []roots.Entry
}

// RootCount returns the number of root entries.
func (d *Document) RootCount() int {
	return len(d.Entries)
}

// SelectionCount resolves how many roots to use. A non-negative override
// wins; otherwise keys.k is used when present; otherwise every root.
func (d *Document) SelectionCount(override int) int {
	if override >= 0 {
		return override
	}
	if d.Keys != nil && d.Keys.K != nil {
		return *d.Keys.K
	}
	return len(d.Entries)
}

// Warnings lists non-fatal inconsistencies, currently a keys.n that does
// not match the number of root entries.
func (d *Document) Warnings() []string {
	var warnings []string
	if d.Keys != nil && d.Keys.N != nil && *d.Keys.N != len(d.Entries) {
		warnings = append(warnings, fmt.Sprintf("keys.n declares %d entries but the document has %d", *d.Keys.N, len(d.Entries)))
	}
	return warnings
}

// Add appends a root entry, enforcing the same label rules as the readers.
//
// Parameters:
//   - label: The entry label, a non-negative decimal integer.
//   - base: The radix in its external string form.
//   - value: The numeral.
//
// Returns:
//   - error: ErrUnknownLabel, ErrDuplicateLabel or ErrInvalidBase, wrapped
//     in a *roots.LabelError.
func (d *Document) Add(label, base, value string) error {
	ordinal, ok := roots.ParseLabel(label)
	if !ok {
		return &roots.LabelError{Label: label, Err: ErrUnknownLabel}
	}
	for _, e := range d.Entries {
		if o, _ := roots.ParseLabel(e.Label); o == ordinal {
			return &roots.LabelError{Label: label, Err: fmt.Errorf("%w: collides with %q", roots.ErrDuplicateLabel, e.Label)}
		}
	}
	b, err := parseBase(base)
	if err != nil {
		return &roots.LabelError{Label: label, Err: err}
	}
	d.Entries = append(d.Entries, roots.Entry{Label: label, Base: b, Numeral: value})
	return nil
}

// scalar is one leaf value of a document, kept as its literal text.
type scalar struct {
	text string
	null bool
}

// item is one top-level label with its fields, independent of the source
// format.
type item struct {
	label    string
	isObject bool
	fields   map[string]scalar
}

// parseBase converts the textual base to an int. Range checking is left to
// the numeral decoder so out-of-range bases surface as decode errors in
// label order.
func parseBase(s string) (int, error) {
	b, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &numeral.DecodeError{Kind: numeral.ErrInvalidBase, BaseText: s}
	}
	return b, nil
}

func parseCount(field string, s scalar) (*int, error) {
	if s.null {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s.text))
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%w: keys.%s must be a non-negative integer, got %q", ErrMalformedEntry, field, s.text)
	}
	return &v, nil
}

// build turns format-neutral items into a Document.
func build(items []item) (*Document, error) {
	doc := &Document{Entries: make([]roots.Entry, 0, len(items))}
	seen := make(map[string]bool, len(items))

	for _, it := range items {
		if seen[it.label] {
			return nil, &roots.LabelError{Label: it.label, Err: roots.ErrDuplicateLabel}
		}
		seen[it.label] = true

		if it.label == KeysLabel {
			if !it.isObject {
				return nil, &roots.LabelError{Label: it.label, Err: fmt.Errorf("%w: expected an object", ErrMalformedEntry)}
			}
			keys := &Keys{}
			var err error
			if s, ok := it.fields["n"]; ok {
				if keys.N, err = parseCount("n", s); err != nil {
					return nil, &roots.LabelError{Label: it.label, Err: err}
				}
			}
			if s, ok := it.fields["k"]; ok {
				if keys.K, err = parseCount("k", s); err != nil {
					return nil, &roots.LabelError{Label: it.label, Err: err}
				}
			}
			doc.Keys = keys
			continue
		}

		if _, ok := roots.ParseLabel(it.label); !ok {
			return nil, &roots.LabelError{Label: it.label, Err: ErrUnknownLabel}
		}
		if !it.isObject {
			return nil, &roots.LabelError{Label: it.label, Err: fmt.Errorf("%w: expected an object with base and value", ErrMalformedEntry)}
		}

		base, ok := it.fields["base"]
		if !ok || base.null {
			return nil, &roots.LabelError{Label: it.label, Err: fmt.Errorf("%w: missing base", ErrMalformedEntry)}
		}
		value, ok := it.fields["value"]
		if !ok || value.null {
			return nil, &roots.LabelError{Label: it.label, Err: fmt.Errorf("%w: missing value", ErrMalformedEntry)}
		}

		b, err := parseBase(base.text)
		if err != nil {
			return nil, &roots.LabelError{Label: it.label, Err: err}
		}
		doc.Entries = append(doc.Entries, roots.Entry{Label: it.label, Base: b, Numeral: value.text})
	}
	return doc, nil
}
