package metadata

import (
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
)

// tomlDoc mirrors the shape of a --schema=file.toml sidecar: a flat list
// of schemas, each with tables, each with columns. It exists purely as
// the decode target for go-toml/mapstructure; callers never see it.
type tomlDoc struct {
	Schemas []tomlSchema `toml:"schema" mapstructure:"schema"`
}

type tomlSchema struct {
	Name   string      `toml:"name" mapstructure:"name"`
	Tables []tomlTable `toml:"table" mapstructure:"table"`
}

type tomlTable struct {
	Name    string       `toml:"name" mapstructure:"name"`
	DBName  string       `toml:"db_name" mapstructure:"db_name"`
	Columns []tomlColumn `toml:"column" mapstructure:"column"`
}

type tomlColumn struct {
	Name     string `toml:"name" mapstructure:"name"`
	DBName   string `toml:"db_name" mapstructure:"db_name"`
	Datatype string `toml:"datatype" mapstructure:"datatype"`
	Size     int    `toml:"size" mapstructure:"size"`
	UCD      string `toml:"ucd" mapstructure:"ucd"`
	Unit     string `toml:"unit" mapstructure:"unit"`
}

// LoadTOML reads a lightweight metadata-model description from r: a
// standalone alternative to a live TAP_SCHEMA database, for CLI runs
// against a local schema description. The file is decoded with go-toml
// into a generic map first, then mapstructure decodes that map into the
// typed tomlDoc — mirroring how callers normally bridge a loosely typed
// config format into a Go struct tree.
func LoadTOML(r io.Reader) ([]*Schema, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("metadata: reading schema TOML: %w", err)
	}

	var generic map[string]any
	if err := toml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("metadata: parsing schema TOML: %w", err)
	}

	var doc tomlDoc
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("metadata: building schema decoder: %w", err)
	}
	if err := dec.Decode(generic); err != nil {
		return nil, fmt.Errorf("metadata: decoding schema TOML: %w", err)
	}

	var out []*Schema
	for _, s := range doc.Schemas {
		schema := &Schema{Identifier: NewIdentifier(s.Name, false)}
		for _, t := range s.Tables {
			table := &Table{Identifier: withDBName(t.Name, t.DBName), Schema: schema}
			for _, c := range t.Columns {
				dt, err := parseTAPType(c.Datatype, itoa(c.Size))
				if err != nil {
					return nil, fmt.Errorf("metadata: schema %q table %q column %q: %w", s.Name, t.Name, c.Name, err)
				}
				table.AddColumn(&Column{
					Identifier: withDBName(c.Name, c.DBName),
					Datatype:   dt,
					UCD:        c.UCD,
					Unit:       c.Unit,
				})
			}
			schema.Tables = append(schema.Tables, table)
		}
		out = append(out, schema)
	}
	return out, nil
}
