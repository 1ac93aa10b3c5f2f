// Package llm defines the boundary to external text-generation services:
// submit a prompt plus a structured-output schema, receive parsed JSON text
// or a failure. No retries happen at this layer.
package llm

import (
	"context"

	"studentfuel/internal/shared"
)

// Type enumerates the value kinds a response schema can describe.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Schema describes the JSON shape a completion must return. It is the
// provider-neutral subset both clients can express.
type Schema struct {
	Type       Type               `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Enum       []string           `json:"enum,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// ContentResponse contains the generated JSON text and token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator generates a schema-constrained JSON completion.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *Schema) (ContentResponse, error)
}

// Closer is an interface for closing client resources.
type Closer interface {
	Close() error
}
