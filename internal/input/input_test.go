package input

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/polyroots/internal/numeral"
	"github.com/agbru/polyroots/internal/roots"
)

var sampleEntries = []roots.Entry{
	{Label: "1", Base: 10, Numeral: "4"},
	{Label: "2", Base: 2, Numeral: "111"},
	{Label: "3", Base: 10, Numeral: "12"},
	{Label: "6", Base: 4, Numeral: "213"},
}

func TestReadFileFormats(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"sample.json", "sample.jsonc", "sample.yaml"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			doc, err := ReadFile(filepath.Join("testdata", name), FormatAuto)
			require.NoError(t, err)

			require.NotNil(t, doc.Keys)
			require.NotNil(t, doc.Keys.N)
			require.NotNil(t, doc.Keys.K)
			assert.Equal(t, 4, *doc.Keys.N)
			assert.Equal(t, 3, *doc.Keys.K)
			assert.Equal(t, 4, doc.RootCount())
			assert.Empty(t, doc.Warnings())

			seq, err := roots.Collect(doc.Entries)
			require.NoError(t, err)
			assert.Equal(t, []string{"4", "7", "12", "39"}, seq.Strings())
		})
	}
}

func TestReadFileJSONEntries(t *testing.T) {
	t.Parallel()
	doc, err := ReadFile(filepath.Join("testdata", "sample.json"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, sampleEntries, doc.Entries)
}

func TestReadFileLarge(t *testing.T) {
	t.Parallel()
	doc, err := ReadFile(filepath.Join("testdata", "large.json"), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 10, doc.RootCount())
	assert.Equal(t, 7, doc.SelectionCount(-1))

	seq, err := roots.Collect(doc.Entries)
	require.NoError(t, err)
	assert.Equal(t, "995085094601491", seq[0].Value.String())
	assert.Equal(t, "220003896831595324801", seq[9].Value.String())
	assert.Equal(t, "10", seq[9].Label)
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()
	_, err := ReadFile(filepath.Join("testdata", "does-not-exist.json"), FormatAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.json")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		format Format
		doc    string
		want   error
		label  string
	}{
		{"unknown label", FormatJSON, `{"x": {"base": "10", "value": "1"}}`, ErrUnknownLabel, "x"},
		{"negative label", FormatJSON, `{"-1": {"base": "10", "value": "1"}}`, ErrUnknownLabel, "-1"},
		{"missing base", FormatJSON, `{"1": {"value": "1"}}`, ErrMalformedEntry, "1"},
		{"missing value", FormatJSON, `{"1": {"base": "10"}}`, ErrMalformedEntry, "1"},
		{"null value", FormatJSON, `{"1": {"base": "10", "value": null}}`, ErrMalformedEntry, "1"},
		{"entry not an object", FormatJSON, `{"1": "4"}`, ErrMalformedEntry, "1"},
		{"array value", FormatJSON, `{"1": {"base": "10", "value": [1]}}`, ErrMalformedEntry, "1"},
		{"keys not an object", FormatJSON, `{"keys": 3}`, ErrMalformedEntry, "keys"},
		{"negative k", FormatJSON, `{"keys": {"k": -1}}`, ErrMalformedEntry, "keys"},
		{"fractional n", FormatJSON, `{"keys": {"n": 1.5}}`, ErrMalformedEntry, "keys"},
		{"duplicate label", FormatJSON, `{"1": {"base": "10", "value": "1"}, "1": {"base": "10", "value": "2"}}`, roots.ErrDuplicateLabel, "1"},
		{"non-integer base", FormatJSON, `{"1": {"base": "ten", "value": "1"}}`, numeral.ErrInvalidBase, "1"},
		{"yaml missing value", FormatYAML, "1:\n  base: 10\n", ErrMalformedEntry, "1"},
		{"yaml empty value", FormatYAML, "1:\n  base: 10\n  value:\n", ErrMalformedEntry, "1"},
		{"yaml duplicate label", FormatYAML, "1: {base: 2, value: 1}\n1: {base: 2, value: 1}\n", roots.ErrDuplicateLabel, "1"},
		{"yaml unknown label", FormatYAML, "foo: {base: 2, value: 1}\n", ErrUnknownLabel, "foo"},
		{"yaml repeated field", FormatYAML, "1:\n  base: 2\n  value: 1\n  base: 10\n", ErrMalformedEntry, "1"},
		{"repeated field", FormatJSON, `{"1": {"base": "2", "base": "10", "value": "1"}}`, ErrMalformedEntry, "1"},
		{"repeated keys field", FormatJSON, `{"keys": {"k": 1, "k": 2}}`, ErrMalformedEntry, "keys"},
		{"jsonc repeated field", FormatJSONC, "{\"1\": {\"value\": \"1\", \"base\": \"2\", /* again */ \"value\": \"0\"}}", ErrMalformedEntry, "1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc), tt.format)
			require.ErrorIs(t, err, tt.want)

			var le *roots.LabelError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.label, le.Label)
		})
	}
}

func TestParseLabelBeyondUint64(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(`{"18446744073709551616": {"base": "10", "value": "7"}, "1": {"base": "10", "value": "4"}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.RootCount())

	seq, err := roots.Collect(doc.Entries)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "7"}, seq.Strings())
}

func TestParseInvalidDocuments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"array", FormatJSON, `[1, 2]`},
		{"truncated", FormatJSON, `{"1": {"base": "10"`},
		{"trailing data", FormatJSON, `{} {}`},
		{"empty", FormatJSON, ``},
		{"yaml sequence", FormatYAML, "- 1\n- 2\n"},
		{"yaml empty", FormatYAML, ""},
		{"yaml syntax", FormatYAML, "1: {base: 2\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc), tt.format)
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestParseEmptyValueDecodesToZero(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(`{"1": {"base": "16", "value": ""}}`), FormatJSON)
	require.NoError(t, err)
	seq, err := roots.Collect(doc.Entries)
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, seq.Strings())
}

func TestParseNumericFields(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte(`{"keys": {"n": "2"}, "5": {"base": 8, "value": 17}, "4": {"base": "16", "value": "ff", "note": [1]}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []roots.Entry{
		{Label: "5", Base: 8, Numeral: "17"},
		{Label: "4", Base: 16, Numeral: "ff"},
	}, doc.Entries)
	assert.Nil(t, doc.Keys.K)
	assert.Equal(t, 2, *doc.Keys.N)
}

func TestParseAutoDetect(t *testing.T) {
	t.Parallel()
	jsonDoc := "\ufeff  {\"1\": {\"base\": \"10\", \"value\": \"4\"},}"
	doc, err := Parse([]byte(jsonDoc), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.RootCount())

	doc, err = Parse([]byte("// comment\n{\"1\": {\"base\": \"10\", \"value\": \"4\"}}"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.RootCount())

	doc, err = Parse([]byte("1:\n  base: 10\n  value: '4'\n"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.RootCount())

	_, err = Parse([]byte("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRead(t *testing.T) {
	t.Parallel()
	doc, err := Read(strings.NewReader(`{"keys": {"k": 1}, "1": {"base": "2", "value": "1"}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.SelectionCount(-1))

	_, err = Read(strings.NewReader(strings.Repeat(" ", MaxDocumentSize+1)), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestSelectionCount(t *testing.T) {
	t.Parallel()
	k := 2
	withK := &Document{Keys: &Keys{K: &k}, Entries: sampleEntries}
	withoutK := &Document{Entries: sampleEntries}

	assert.Equal(t, 2, withK.SelectionCount(-1))
	assert.Equal(t, 4, withK.SelectionCount(4))
	assert.Equal(t, 0, withK.SelectionCount(0))
	assert.Equal(t, 4, withoutK.SelectionCount(-1))
	assert.Equal(t, 4, (&Document{Keys: &Keys{}, Entries: sampleEntries}).SelectionCount(-1))
}

func TestWarnings(t *testing.T) {
	t.Parallel()
	n := 10
	doc := &Document{Keys: &Keys{N: &n}, Entries: sampleEntries}
	warnings := doc.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "10")
	assert.Contains(t, warnings[0], "4")
}

func TestAdd(t *testing.T) {
	t.Parallel()
	doc := &Document{}
	require.NoError(t, doc.Add("2", "2", "111"))
	require.NoError(t, doc.Add("1", " 10 ", "4"))

	assert.ErrorIs(t, doc.Add("02", "10", "1"), roots.ErrDuplicateLabel)
	assert.ErrorIs(t, doc.Add("keys", "10", "1"), ErrUnknownLabel)
	assert.ErrorIs(t, doc.Add("3", "x", "1"), numeral.ErrInvalidBase)

	seq, err := roots.Collect(doc.Entries)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "7"}, seq.Strings())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Format{"": FormatAuto, "AUTO": FormatAuto, "json": FormatJSON, "jsonc": FormatJSONC, "yml": FormatYAML, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, FormatYAML, FormatFromPath("a/b.YML"))
	assert.Equal(t, FormatJSONC, FormatFromPath("x.jsonc"))
	assert.Equal(t, FormatAuto, FormatFromPath("x.txt"))
}
