// pkg/catalog/schema.go
package catalog

import "encoding/json"

// Catalog is the service's self-description as served by its docs endpoint.
type Catalog struct {
	Version   string            `json:"version,omitempty"`
	Endpoints []Endpoint        `json:"endpoints"`
	Config    map[string]string `json:"config,omitempty"`
}

type Endpoint struct {
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Description  string          `json:"description,omitempty"`
	RequiresAuth bool            `json:"requiresAuth,omitempty"`
	Example      string          `json:"example,omitempty"`
	Response     json.RawMessage `json:"response,omitempty"`
}

const catalogSchema = `{
  "type": "object",
  "required": ["endpoints"],
  "properties": {
    "version": {"type": "string"},
    "endpoints": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["method", "path"],
        "properties": {
          "method": {"type": "string", "enum": ["GET", "POST", "PUT", "PATCH", "DELETE"]},
          "path": {"type": "string", "pattern": "^/"},
          "description": {"type": "string"},
          "requiresAuth": {"type": "boolean"},
          "example": {"type": "string"}
        }
      }
    }
  }
}`
