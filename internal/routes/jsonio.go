package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON marks input that is not the expected JSON document.
var ErrInvalidJSON = errors.New("invalid json")

// ReadRoutes loads a JSON array of route objects. Routes stay raw so that
// unknown fields and key order survive a rewrite.
func ReadRoutes(path string) ([]gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	return ParseRoutes(data)
}

// ParseRoutes splits a JSON array into its route objects.
func ParseRoutes(data []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed document", ErrInvalidJSON)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of routes", ErrInvalidJSON)
	}

	routes := make([]gjson.Result, 0, 64)
	var bad error
	i := 0
	doc.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			bad = fmt.Errorf("%w: route %d is not an object", ErrInvalidJSON, i)
			return false
		}
		routes = append(routes, v)
		i++
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return routes, nil
}

// WriteRoutes writes routes as an indented JSON array.
func WriteRoutes(path string, routes []gjson.Result) error {
	raws := make([]string, len(routes))
	for i, r := range routes {
		raws[i] = r.Raw
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte("["+strings.Join(raws, ",")+"]"), "", "  "); err != nil {
		return fmt.Errorf("indent routes: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// writeJSON encodes v with two-space indentation, leaving non-ASCII and HTML
// characters unescaped and no trailing newline.
func writeJSON(path string, v any) error {
	data, err := marshal(v, "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// stringField reads a top-level key as a string. Missing keys read as ""
// (ok); values of any other JSON type are not ok.
func stringField(route gjson.Result, key string) (string, bool) {
	v := route.Get(key)
	switch {
	case !v.Exists():
		return "", true
	case v.Type == gjson.String:
		return v.Str, true
	default:
		return "", false
	}
}
