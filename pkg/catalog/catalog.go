// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var compiledSchema = mustSchema()

func mustSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(catalogSchema))
	if err != nil {
		panic(fmt.Sprintf("catalog schema: %v", err))
	}
	return s
}

// LoadCatalog reads and validates a catalog document saved from a docs endpoint.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates data against the catalog schema and decodes it.
func Parse(data []byte) (*Catalog, error) {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog is not valid JSON: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("catalog validation failed: %s", strings.Join(problems, "; "))
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Find returns the endpoint for method and path.
func (c *Catalog) Find(method, path string) (Endpoint, bool) {
	for _, ep := range c.Endpoints {
		if strings.EqualFold(ep.Method, method) && ep.Path == path {
			return ep, true
		}
	}
	return Endpoint{}, false
}

// Sorted returns endpoints ordered by path then method.
func (c *Catalog) Sorted() []Endpoint {
	out := append([]Endpoint(nil), c.Endpoints...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Authenticated lists endpoints that need a bearer credential.
func (c *Catalog) Authenticated() []Endpoint {
	var out []Endpoint
	for _, ep := range c.Endpoints {
		if ep.RequiresAuth {
			out = append(out, ep)
		}
	}
	return out
}

// Title is the one-line summary used in listings, e.g. "[POST] /api/auth".
func (e Endpoint) Title() string {
	lock := ""
	if e.RequiresAuth {
		lock = " 🔐"
	}
	return fmt.Sprintf("[%s] %s%s", e.Method, e.Path, lock)
}
