package data

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/errors"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Format is the encoding of a catalog document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

type catalogFile struct {
	Roles       []catalog.Role       `json:"roles" yaml:"roles"`
	Professions []catalog.Profession `json:"professions" yaml:"professions"`
}

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.Catalogf(path, "unsupported catalog file extension %q", filepath.Ext(path))
}

// ParseCatalog decodes and validates a catalog document
func ParseCatalog(payload []byte, format Format) (*catalog.Catalog, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, errors.Catalogf("", "catalog payload is empty")
	}

	var f catalogFile
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(payload))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCatalog, "decode yaml catalog")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCatalog, "decode json catalog")
		}
	default:
		return nil, errors.Catalogf("", "unsupported catalog format %q", format)
	}

	return catalog.New(f.Roles, f.Professions)
}

// LoadCatalog reads a YAML or JSON catalog file from disk
func LoadCatalog(path string) (*catalog.Catalog, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := ParseCatalog(payload, format)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return cat, nil
}

// DefaultCatalog returns the catalog embedded in the binary
func DefaultCatalog() (*catalog.Catalog, error) {
	return ParseCatalog(defaultCatalogYAML, FormatYAML)
}
