package input

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names an input encoding.
type Format string

const (
	// FormatAuto picks the format from the file extension, or from the
	// first byte of the content.
	FormatAuto  Format = "auto"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
)

// MaxDocumentSize bounds the bytes read from a single document.
const MaxDocumentSize = 16 << 20

// Formats lists the accepted format names.
func Formats() []string {
	return []string{string(FormatAuto), string(FormatJSON), string(FormatJSONC), string(FormatYAML)}
}

// ParseFormat validates a format name. The empty string means FormatAuto
// and "yml" is accepted as an alias for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnsupportedFormat, s, strings.Join(Formats(), ", "))
}

// FormatFromPath infers the format from a file extension. Unknown
// extensions yield FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".jsonc":
		return FormatJSONC
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// Parse decodes data in the given format. FormatAuto treats content that
// starts with '{' as JSONC (a superset of JSON) and anything else as YAML.
func Parse(data []byte, format Format) (*Document, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatJSONC:
		return ParseJSONC(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatAuto, "":
		trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
		if len(trimmed) > 0 && trimmed[0] == '{' {
			return ParseJSONC(trimmed)
		}
		if bytes.HasPrefix(trimmed, []byte("//")) || bytes.HasPrefix(trimmed, []byte("/*")) {
			return ParseJSONC(trimmed)
		}
		return ParseYAML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Read decodes a document from r, reading at most MaxDocumentSize bytes.
func Read(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidDocument, MaxDocumentSize)
	}
	return Parse(data, format)
}

// ReadFile reads and decodes the document at path. The path "-" reads
// standard input. With FormatAuto the extension decides when it is known.
func ReadFile(path string, format Format) (*Document, error) {
	if path == "-" {
		return Read(os.Stdin, format)
	}
	if format == FormatAuto || format == "" {
		format = FormatFromPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
