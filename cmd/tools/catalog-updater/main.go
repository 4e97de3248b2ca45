// cmd/tools/catalog-updater/main.go
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pizza-storefront/pkg/catalog"
)

const defaultCatalogPath = "configs/docs-catalog.json"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		help(out)
		return errors.New("missing command")
	}

	switch args[0] {
	case "add":
		addCmd := flag.NewFlagSet("add", flag.ContinueOnError)
		path := addCmd.String("catalog", defaultCatalogPath, "Path to catalog file")
		method := addCmd.String("method", "", "HTTP method (e.g., POST)")
		endpoint := addCmd.String("path", "", "Endpoint path (e.g., /api/order)")
		description := addCmd.String("description", "", "Description")
		example := addCmd.String("example", "", "Example curl command")
		requiresAuth := addCmd.Bool("auth", false, "Endpoint needs a bearer token")
		if err := addCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *method == "" || *endpoint == "" {
			addCmd.Usage()
			return errors.New("method and path are required for add")
		}
		ep := catalog.Endpoint{
			Method:       strings.ToUpper(*method),
			Path:         *endpoint,
			Description:  *description,
			Example:      *example,
			RequiresAuth: *requiresAuth,
		}
		if err := addEndpoint(*path, ep); err != nil {
			return fmt.Errorf("adding endpoint: %w", err)
		}
		fmt.Fprintf(out, "Added endpoint: %s\n", ep.Title())

	case "remove":
		removeCmd := flag.NewFlagSet("remove", flag.ContinueOnError)
		path := removeCmd.String("catalog", defaultCatalogPath, "Path to catalog file")
		method := removeCmd.String("method", "", "HTTP method")
		endpoint := removeCmd.String("path", "", "Endpoint path")
		if err := removeCmd.Parse(args[1:]); err != nil {
			return err
		}
		if err := removeEndpoint(*path, *method, *endpoint); err != nil {
			return fmt.Errorf("removing endpoint: %w", err)
		}
		fmt.Fprintf(out, "Removed endpoint: [%s] %s\n", strings.ToUpper(*method), *endpoint)

	case "validate":
		validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)
		path := validateCmd.String("catalog", defaultCatalogPath, "Path to catalog file")
		if err := validateCmd.Parse(args[1:]); err != nil {
			return err
		}
		c, err := validateCatalog(*path)
		if err != nil {
			return fmt.Errorf("catalog validation failed: %w", err)
		}
		fmt.Fprintf(out, "Catalog validation passed. Found %d endpoints (%d authenticated).\n",
			len(c.Endpoints), len(c.Authenticated()))

	case "list":
		listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
		path := listCmd.String("catalog", defaultCatalogPath, "Path to catalog file")
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		c, err := catalog.LoadCatalog(*path)
		if err != nil {
			return err
		}
		for _, ep := range c.Sorted() {
			fmt.Fprintln(out, ep.Title())
		}

	case "help":
		help(out)

	default:
		help(out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return nil
}

func addEndpoint(path string, ep catalog.Endpoint) error {
	c, err := catalog.LoadCatalog(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		c = &catalog.Catalog{Version: "1.0.0"}
	}

	if _, exists := c.Find(ep.Method, ep.Path); exists {
		return fmt.Errorf("endpoint %s already exists", ep.Title())
	}
	c.Endpoints = append(c.Endpoints, ep)
	return saveCatalog(c, path)
}

func removeEndpoint(path, method, endpoint string) error {
	c, err := catalog.LoadCatalog(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	kept := c.Endpoints[:0]
	found := false
	for _, ep := range c.Endpoints {
		if strings.EqualFold(ep.Method, method) && ep.Path == endpoint {
			found = true
			continue
		}
		kept = append(kept, ep)
	}
	if !found {
		return fmt.Errorf("endpoint [%s] %s not found", strings.ToUpper(method), endpoint)
	}
	c.Endpoints = kept
	return saveCatalog(c, path)
}

func validateCatalog(path string) (*catalog.Catalog, error) {
	c, err := catalog.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	if len(c.Endpoints) == 0 {
		return nil, errors.New("catalog contains no endpoints")
	}

	seen := make(map[string]bool)
	for _, ep := range c.Endpoints {
		key := strings.ToUpper(ep.Method) + " " + ep.Path
		if seen[key] {
			return nil, fmt.Errorf("duplicate endpoint: %s", ep.Title())
		}
		seen[key] = true

		if !strings.HasPrefix(ep.Path, "/") {
			return nil, fmt.Errorf("endpoint %s: path must start with /", ep.Title())
		}
	}
	return c, nil
}

func saveCatalog(c *catalog.Catalog, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: catalog-updater <command> [flags]

Commands:
  add       Add an endpoint to a saved docs catalog
  remove    Remove an endpoint
  validate  Validate the catalog file
  list      List endpoints
  help      Show this help message

Examples:
  catalog-updater add -method POST -path /api/order -description "Create an order" -auth
  catalog-updater remove -method POST -path /api/order
  catalog-updater validate -catalog configs/docs-catalog.json

Use 'catalog-updater <command> -h' for more information about a command.`)
}
