package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/agbru/polyroots/internal/roots"
)

// ParseJSON reads a JSON document. Labels are streamed token by token so
// that a label repeated inside the top-level object is reported instead of
// silently overwritten.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidDocument)
	}

	var items []item
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		label, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrInvalidDocument, tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: label %q: %v", ErrInvalidDocument, label, err)
		}
		it, err := jsonItem(label, raw)
		if err != nil {
			return nil, &roots.LabelError{Label: label, Err: err}
		}
		items = append(items, it)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after the top-level object", ErrInvalidDocument)
	}
	return build(items)
}

// ParseJSONC strips comments and trailing commas, then reads the result as
// JSON.
func ParseJSONC(data []byte) (*Document, error) {
	return ParseJSON(jsonc.ToJSON(data))
}

// jsonItem streams one entry object field by field; a field repeated inside
// the entry is rejected rather than resolved last-wins.
func jsonItem(label string, raw json.RawMessage) (item, error) {
	it := item{label: label}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return it, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return it, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	it.isObject = true
	it.fields = make(map[string]scalar)
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return it, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		name, ok := tok.(string)
		if !ok {
			return it, fmt.Errorf("%w: unexpected token %v", ErrInvalidDocument, tok)
		}
		if seen[name] {
			return it, fmt.Errorf("%w: field %q repeated", ErrMalformedEntry, name)
		}
		seen[name] = true

		var v any
		if err := dec.Decode(&v); err != nil {
			return it, fmt.Errorf("%w: field %q: %v", ErrInvalidDocument, name, err)
		}
		switch x := v.(type) {
		case nil:
			it.fields[name] = scalar{null: true}
		case string:
			it.fields[name] = scalar{text: x}
		case json.Number:
			it.fields[name] = scalar{text: x.String()}
		default:
			// Nested objects, arrays and booleans are only rejected when the
			// field is one we read.
			if name == "base" || name == "value" || name == "n" || name == "k" {
				return it, fmt.Errorf("%w: field %q must be a string or a number", ErrMalformedEntry, name)
			}
		}
	}
	return it, nil
}
