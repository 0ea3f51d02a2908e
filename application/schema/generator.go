// Package schema generates JSON schemas for configuration and manifest types.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/reglet-dev/vecbridge/domain/errors"
)

// Option configures schema generation.
type Option func(*settings)

type settings struct {
	title       string
	description string
	id          jsonschema.ID
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(s *settings) {
		s.title = title
	}
}

// WithDescription sets the schema description.
func WithDescription(description string) Option {
	return func(s *settings) {
		s.description = description
	}
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(s *settings) {
		s.id = jsonschema.ID(id)
	}
}

// GenerateSchema creates an indented JSON schema (Draft 2020-12) from a Go
// struct. Nested struct definitions are expanded inline.
func GenerateSchema(v any, opts ...Option) ([]byte, error) {
	if v == nil {
		return nil, &errors.SchemaError{Err: fmt.Errorf("cannot reflect a nil value")}
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	sch := reflector.Reflect(v)
	if s.title != "" {
		sch.Title = s.title
	}
	if s.description != "" {
		sch.Description = s.description
	}
	if s.id != "" {
		sch.ID = s.id
	}

	out, err := json.MarshalIndent(sch, "", "  ")
	if err != nil {
		return nil, &errors.SchemaError{Type: reflect.TypeOf(v).String(), Err: fmt.Errorf("failed to marshal schema: %w", err)}
	}
	return out, nil
}
