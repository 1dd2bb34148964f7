// Package layout builds fixedwidth field layouts from declarative documents,
// so record formats can live next to the data they describe instead of in
// code.
//
// A document is a list of entries under the top-level "fields" key. Each
// entry is either a single field or a group of nested entries:
//
//	fields:
//	  - name: id
//	    range: 0..6
//	  - group:
//	      - { range: 6..9, justify: right, pad: "0" }
//	      - { start: 9, end: 12 }
//
// A field's byte range is given either as a "start..end" string or as
// separate start/end keys. Groups nest arbitrarily and map to fieldset
// sequences; pad and justify set on a group apply to every field inside it.
//
// TOML, YAML, and JSONC (JSON extended with comments and trailing commas)
// documents are supported.
package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/recordlayout/fixedwidth"
)

// fieldDef is one entry in a layout document: a field or a group, never both.
type fieldDef struct {
	Name    string     `toml:"name" yaml:"name" json:"name"`
	Range   string     `toml:"range" yaml:"range" json:"range"`
	Start   *int       `toml:"start" yaml:"start" json:"start"`
	End     *int       `toml:"end" yaml:"end" json:"end"`
	Pad     string     `toml:"pad" yaml:"pad" json:"pad"`
	Justify string     `toml:"justify" yaml:"justify" json:"justify"`
	Group   []fieldDef `toml:"group" yaml:"group" json:"group"`
}

type document struct {
	Fields []fieldDef `toml:"fields" yaml:"fields" json:"fields"`
}

// ParseTOML builds a layout from a TOML document.
func ParseTOML(data []byte) (*fixedwidth.FieldSet, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "layout: parse toml")
	}
	return build(doc.Fields)
}

// ParseYAML builds a layout from a YAML document.
func ParseYAML(data []byte) (*fixedwidth.FieldSet, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "layout: parse yaml")
	}
	return build(doc.Fields)
}

// ParseJSONC builds a layout from a JSON document that may contain // line
// comments, /* block comments */, and trailing commas.
func ParseJSONC(data []byte) (*fixedwidth.FieldSet, error) {
	var doc document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, errors.Wrap(err, "layout: parse jsonc")
	}
	return build(doc.Fields)
}

// LoadFile reads the layout document at path, dispatching on its extension
// (.toml, .yaml, .yml, .json, .jsonc).
func LoadFile(path string) (*fixedwidth.FieldSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "layout: read file")
	}

	var fs *fixedwidth.FieldSet
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		fs, err = ParseTOML(data)
	case ".yaml", ".yml":
		fs, err = ParseYAML(data)
	case ".json", ".jsonc":
		fs, err = ParseJSONC(data)
	default:
		return nil, errors.Errorf("layout: unrecognized extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return fs, nil
}

func build(defs []fieldDef) (*fixedwidth.FieldSet, error) {
	sets := make([]*fixedwidth.FieldSet, 0, len(defs))
	for i, def := range defs {
		fs, err := buildOne(def)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i)
		}
		sets = append(sets, fs)
	}
	return fixedwidth.Seq(sets...), nil
}

func buildOne(def fieldDef) (*fixedwidth.FieldSet, error) {
	if len(def.Group) > 0 {
		return buildGroup(def)
	}

	start, end, err := rangeOf(def)
	if err != nil {
		return nil, err
	}
	fs := fixedwidth.NewField(start, end)
	if def.Name != "" {
		fs = fs.Name(def.Name)
	}
	return applyFormat(fs, def)
}

func buildGroup(def fieldDef) (*fixedwidth.FieldSet, error) {
	if def.Name != "" {
		return nil, errors.New("a group cannot be named")
	}
	if def.Range != "" || def.Start != nil || def.End != nil {
		return nil, errors.New("a group cannot have a range")
	}
	fs, err := build(def.Group)
	if err != nil {
		return nil, err
	}
	return applyFormat(fs, def)
}

func applyFormat(fs *fixedwidth.FieldSet, def fieldDef) (*fixedwidth.FieldSet, error) {
	if def.Pad != "" {
		if len(def.Pad) != 1 {
			return nil, errors.Errorf("pad must be a single byte, got %q", def.Pad)
		}
		fs = fs.PadWith(def.Pad[0])
	}
	if def.Justify != "" {
		j := fixedwidth.Justify(strings.ToLower(strings.TrimSpace(def.Justify)))
		if !j.Valid() {
			return nil, errors.Errorf("justify must be %q or %q, got %q", fixedwidth.Left, fixedwidth.Right, def.Justify)
		}
		fs = fs.Justify(j)
	}
	return fs, nil
}

func rangeOf(def fieldDef) (start, end int, err error) {
	if def.Range != "" {
		if def.Start != nil || def.End != nil {
			return 0, 0, errors.New("range and start/end are mutually exclusive")
		}
		return parseRange(def.Range)
	}
	if def.Start == nil || def.End == nil {
		return 0, 0, errors.New("a field requires a range or both start and end")
	}
	return validRange(*def.Start, *def.End)
}

// parseRange splits a "start..end" range string into its byte offsets.
func parseRange(s string) (start, end int, err error) {
	parts := strings.SplitN(s, "..", 2)
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("range %q is not of the form start..end", s)
	}
	if start, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, errors.Errorf("range %q is not of the form start..end", s)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, errors.Errorf("range %q is not of the form start..end", s)
	}
	return validRange(start, end)
}

func validRange(start, end int) (int, int, error) {
	if start < 0 || start > end {
		return 0, 0, errors.Errorf("invalid range %d..%d", start, end)
	}
	return start, end, nil
}
