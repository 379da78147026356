package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"triz_edu_backend/internal/model"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed catalog_schema.json
var catalogSchemaJSON []byte

const catalogSchemaURL = "schema://triz-catalog.json"

type catalogFile struct {
	Modules []model.Module `yaml:"modules"`
}

// CatalogRepository serves the ordered, read-only module catalog.
type CatalogRepository struct {
	modules []model.Module
	index   map[string]int
}

// NewCatalogRepository builds a catalog from already decoded modules.
func NewCatalogRepository(modules []model.Module) (*CatalogRepository, error) {
	index := make(map[string]int, len(modules))
	for i, m := range modules {
		if _, dup := index[m.ID]; dup {
			return nil, fmt.Errorf("duplicate module id %q", m.ID)
		}
		index[m.ID] = i

		seen := map[string]bool{}
		for _, q := range append(m.PracticeQuestions(), m.TestQuestions()...) {
			if seen[q.QuestionID()] {
				return nil, fmt.Errorf("module %q: duplicate question id %q", m.ID, q.QuestionID())
			}
			seen[q.QuestionID()] = true
		}
		if !m.ComingSoon && m.PassCriteria.Threshold > m.PassCriteria.TotalQuestions {
			return nil, fmt.Errorf("module %q: pass threshold %d exceeds total %d",
				m.ID, m.PassCriteria.Threshold, m.PassCriteria.TotalQuestions)
		}
	}
	return &CatalogRepository{modules: modules, index: index}, nil
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*CatalogRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog validates data against the catalog schema, then decodes it.
func ParseCatalog(data []byte) (*CatalogRepository, error) {
	if err := validateCatalog(data); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalogRepository(file.Modules)
}

func validateCatalog(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	// The validator expects JSON-shaped values (float64 numbers, map[string]any).
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert catalog: %w", err)
	}
	var inst any
	if err := json.Unmarshal(asJSON, &inst); err != nil {
		return fmt.Errorf("convert catalog: %w", err)
	}

	var schemaDoc any
	if err := json.Unmarshal(catalogSchemaJSON, &schemaDoc); err != nil {
		return fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(catalogSchemaURL, schemaDoc); err != nil {
		return fmt.Errorf("add catalog schema: %w", err)
	}
	schema, err := c.Compile(catalogSchemaURL)
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

// Modules returns the catalog in order.
func (r *CatalogRepository) Modules() []model.Module {
	return r.modules
}

func (r *CatalogRepository) FindByID(id string) (*model.Module, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return &r.modules[i], true
}

// IndexOf returns the position of id in catalog order, or -1.
func (r *CatalogRepository) IndexOf(id string) int {
	i, ok := r.index[id]
	if !ok {
		return -1
	}
	return i
}
