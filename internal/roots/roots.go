// Package roots turns labeled numeral entries into an ordered sequence of
// exact integer roots.
//
// Entries are ordered by the numeric value of their label (so "10" sorts
// after "9"), decoded with the numeral package, and returned as an
// immutable Sequence. Selection of the first k roots produces a new
// Sequence and never aliases the original.
package roots

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/agbru/polyroots/internal/numeral"
)

var (
	// ErrDuplicateLabel is returned when two entries share a numeric label
	// value ("1" and "01" included).
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrSelectionOutOfRange is returned when k is negative or larger than
	// the number of collected roots.
	ErrSelectionOutOfRange = errors.New("selection out of range")
)

// Entry is one labeled numeral as read from the input document.
type Entry struct {
	// Label is the external identifier, the string form of a non-negative
	// integer for root entries.
	Label string
	// Base is the radix of Numeral.
	Base int
	// Numeral is the digit string.
	Numeral string
}

// Root is a decoded entry.
type Root struct {
	// Label is the label of the entry the root was decoded from.
	Label string
	// Ordinal is the canonical decimal form of Label, without leading
	// zeros ("0" for an all-zero label).
	Ordinal string
	// Value is the decoded integer. Callers must not mutate it.
	Value *big.Int
}

// Sequence is an ordered list of roots, ascending by label ordinal.
type Sequence []Root

// LabelError attaches the offending label to an entry-level failure.
type LabelError struct {
	Label string
	Err   error
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("entry %q: %v", e.Label, e.Err)
}

func (e *LabelError) Unwrap() error { return e.Err }

// ParseLabel returns the canonical ordinal of a root label. Only plain
// decimal digits are accepted: no sign, no whitespace, no exponent. There is
// no upper bound on the number of digits.
func ParseLabel(label string) (string, bool) {
	if label == "" {
		return "", false
	}
	for i := 0; i < len(label); i++ {
		if label[i] < '0' || label[i] > '9' {
			return "", false
		}
	}
	if ordinal := strings.TrimLeft(label, "0"); ordinal != "" {
		return ordinal, true
	}
	return "0", true
}

// CompareOrdinals orders two canonical ordinals by numeric value.
func CompareOrdinals(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

type orderedEntry struct {
	ordinal string
	entry   Entry
}

// Collect orders the numerically labeled entries and decodes each into a
// root. Entries whose label is not a non-negative integer are skipped.
//
// Collection is fail-fast: the first decode error is returned wrapped in a
// *LabelError and no partial sequence is produced.
//
// Parameters:
//   - entries: The entries in any order.
//
// Returns:
//   - Sequence: The decoded roots in ascending label order.
//   - error: ErrDuplicateLabel or a wrapped numeral error.
func Collect(entries []Entry) (Sequence, error) {
	ordered := make([]orderedEntry, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		ordinal, ok := ParseLabel(e.Label)
		if !ok {
			continue
		}
		if prev, dup := seen[ordinal]; dup {
			return nil, &LabelError{
				Label: e.Label,
				Err:   fmt.Errorf("%w: collides with %q", ErrDuplicateLabel, prev),
			}
		}
		seen[ordinal] = e.Label
		ordered = append(ordered, orderedEntry{ordinal: ordinal, entry: e})
	}

	slices.SortFunc(ordered, func(a, b orderedEntry) int {
		return CompareOrdinals(a.ordinal, b.ordinal)
	})

	seq := make(Sequence, 0, len(ordered))
	for _, o := range ordered {
		v, err := numeral.Decode(o.entry.Numeral, o.entry.Base)
		if err != nil {
			return nil, &LabelError{Label: o.entry.Label, Err: err}
		}
		seq = append(seq, Root{Label: o.entry.Label, Ordinal: o.ordinal, Value: v})
	}
	return seq, nil
}

// Select returns the first k roots of seq as a new sequence.
//
// Parameters:
//   - seq: The collected roots.
//   - k: The selection count, 0 <= k <= len(seq).
//
// Returns:
//   - Sequence: A fresh sequence of length k.
//   - error: ErrSelectionOutOfRange if k is out of bounds.
func Select(seq Sequence, k int) (Sequence, error) {
	if k < 0 || k > len(seq) {
		return nil, fmt.Errorf("%w: k=%d, %d roots available", ErrSelectionOutOfRange, k, len(seq))
	}
	out := make(Sequence, k)
	for i := 0; i < k; i++ {
		out[i] = Root{
			Label:   seq[i].Label,
			Ordinal: seq[i].Ordinal,
			Value:   new(big.Int).Set(seq[i].Value),
		}
	}
	return out, nil
}

// Values returns copies of the root values in sequence order.
func (s Sequence) Values() []*big.Int {
	out := make([]*big.Int, len(s))
	for i, r := range s {
		out[i] = new(big.Int).Set(r.Value)
	}
	return out
}

// Strings returns the decimal form of every root.
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Value.String()
	}
	return out
}

// Labels returns the labels in sequence order.
func (s Sequence) Labels() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Label
	}
	return out
}
