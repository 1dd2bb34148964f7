package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recordlayout/fixedwidth"
)

const layoutTOML = `
[[fields]]
name = "id"
range = "0..6"

[[fields]]

  [[fields.group]]
  range = "6..9"
  justify = "right"
  pad = "0"

  [[fields.group]]
  start = 9
  end = 12
`

const layoutYAML = `
fields:
  - name: id
    range: 0..6
  - group:
      - range: 6..9
        justify: right
        pad: "0"
      - start: 9
        end: 12
`

const layoutJSONC = `
{
	// identifier, then a grouped pair of counters
	"fields": [
		{"name": "id", "range": "0..6"},
		{"group": [
			{"range": "6..9", "justify": "right", "pad": "0"},
			{"start": 9, "end": 12},
		]},
	],
}
`

func wantLayout() *fixedwidth.FieldSet {
	return fixedwidth.Seq(
		fixedwidth.NewField(0, 6).Name("id"),
		fixedwidth.Seq(
			fixedwidth.NewField(6, 9).PadWith('0').Justify(fixedwidth.Right),
			fixedwidth.NewField(9, 12),
		),
	)
}

func TestParseEquivalence(t *testing.T) {
	want := wantLayout().Flatten()

	for _, tt := range []struct {
		name  string
		parse func([]byte) (*fixedwidth.FieldSet, error)
		doc   string
	}{
		{"toml", ParseTOML, layoutTOML},
		{"yaml", ParseYAML, layoutYAML},
		{"jsonc", ParseJSONC, layoutJSONC},
	} {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := tt.parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, want, fs.Flatten())
		})
	}
}

func TestParseGroupStructure(t *testing.T) {
	fs, err := ParseYAML([]byte(layoutYAML))
	require.NoError(t, err)

	// Groups must map to nested sequences, not be spliced flat.
	assert.Equal(t, wantLayout().String(), fs.String())
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		doc  string
	}{
		{"missing range", `fields: [{name: id}]`},
		{"range and start", `fields: [{range: 0..4, start: 0, end: 4}]`},
		{"start without end", `fields: [{start: 0}]`},
		{"malformed range", `fields: [{range: "0-4"}]`},
		{"non-numeric range", `fields: [{range: "a..b"}]`},
		{"inverted range", `fields: [{range: "4..0"}]`},
		{"negative start", `fields: [{range: "-1..4"}]`},
		{"multi-byte pad", `fields: [{range: 0..4, pad: "ab"}]`},
		{"bad justify", `fields: [{range: 0..4, justify: center}]`},
		{"named group", `fields: [{name: g, group: [{range: 0..4}]}]`},
		{"ranged group", `fields: [{range: 0..4, group: [{range: 0..4}]}]`},
		{"error inside group", `fields: [{group: [{range: "bogus"}]}]`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	want := wantLayout().Flatten()

	for name, doc := range map[string]string{
		"layout.toml":  layoutTOML,
		"layout.yaml":  layoutYAML,
		"layout.yml":   layoutYAML,
		"layout.jsonc": layoutJSONC,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		fs, err := LoadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, want, fs.Flatten(), name)
	}
}

func TestLoadFileUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.ini")
	require.NoError(t, os.WriteFile(path, []byte("fields"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized extension")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
