package entities

import "encoding/json"

// EntryPointManifest describes one exposed operation.
type EntryPointManifest struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Input       ElementType `json:"-" yaml:"-"`
	Output      ElementType `json:"-" yaml:"-"`
	InputName   string      `json:"input" yaml:"input"`
	OutputName  string      `json:"output" yaml:"output"`
}

// Manifest is the self-description of an entry point catalog.
type Manifest struct {
	ConfigSchema json.RawMessage      `json:"config_schema,omitempty" yaml:"-"`
	Name         string               `json:"name" yaml:"name"`
	Version      string               `json:"version" yaml:"version"`
	EntryPoints  []EntryPointManifest `json:"entry_points" yaml:"entry_points"`
}

// Lookup finds an entry point by name.
func (m *Manifest) Lookup(name string) (EntryPointManifest, bool) {
	for _, ep := range m.EntryPoints {
		if ep.Name == name {
			return ep, true
		}
	}
	return EntryPointManifest{}, false
}
