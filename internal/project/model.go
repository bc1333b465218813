package project

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Suffix is appended to the project name to form the descriptor file name.
const Suffix = ".sublime-project"

// Folder is one entry of the descriptor's "folders" list.
type Folder struct {
	Path  string
	Name  string
	Extra map[string]any
}

// Descriptor is the in-memory form of a .sublime-project file.
type Descriptor struct {
	Folders      []Folder
	Settings     map[string]any
	BuildSystems []any
	Extra        map[string]any
}

// MarshalJSON writes path and name alongside any extra keys.
func (f Folder) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(f.Extra)+2)
	for k, v := range f.Extra {
		m[k] = v
	}
	m["path"] = f.Path
	if f.Name != "" {
		m["name"] = f.Name
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads a folder object; "path" is required.
func (f *Folder) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := decode(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("folder entry must be an object")
	}
	path, ok := m["path"].(string)
	if !ok {
		return fmt.Errorf("folder entry has no string \"path\"")
	}
	*f = Folder{Path: path}
	delete(m, "path")
	if name, ok := m["name"].(string); ok {
		f.Name = name
		delete(m, "name")
	}
	if len(m) > 0 {
		f.Extra = m
	}
	return nil
}

type wireDescriptor struct {
	Folders      []Folder       `json:"folders"`
	Settings     map[string]any `json:"settings"`
	BuildSystems []any          `json:"build_systems"`
}

var knownKeys = []string{"folders", "settings", "build_systems"}

// MarshalJSON writes the three descriptor keys plus any unknown top-level keys.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Extra)+3)
	for k, v := range d.Extra {
		m[k] = v
	}
	folders := d.Folders
	if folders == nil {
		folders = []Folder{}
	}
	settings := d.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	buildSystems := d.BuildSystems
	if buildSystems == nil {
		buildSystems = []any{}
	}
	m["folders"] = folders
	m["settings"] = settings
	m["build_systems"] = buildSystems
	return json.Marshal(m)
}

// UnmarshalJSON reads a descriptor, normalizing missing or null settings
// and build systems to empty values.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var w wireDescriptor
	if err := decode(data, &w); err != nil {
		return err
	}
	var all map[string]any
	if err := decode(data, &all); err != nil {
		return err
	}
	if all == nil {
		return fmt.Errorf("descriptor must be a JSON object")
	}
	*d = Descriptor{Folders: w.Folders, Settings: w.Settings, BuildSystems: w.BuildSystems}
	if d.Folders == nil {
		d.Folders = []Folder{}
	}
	if d.Settings == nil {
		d.Settings = map[string]any{}
	}
	if d.BuildSystems == nil {
		d.BuildSystems = []any{}
	}
	for _, k := range knownKeys {
		delete(all, k)
	}
	if len(all) > 0 {
		d.Extra = all
	}
	return nil
}

// decode unmarshals with json.Number so numeric text survives a round trip.
func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
