// Package store loads category definitions from YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// CategoryLoader provides category definitions.
type CategoryLoader interface {
	LoadCategories() ([]models.CategoryConfig, error)
}

// CategoryStore reads category definitions from a YAML file
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for the given categories file. A
// relative name is looked up in the standard locations, see FindConfigFile.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "budget-csv", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads categories from the YAML file. The file holds either a
// top-level "categories" list or a bare list of categories. A missing or empty
// file is an error: nothing can be categorized without categories.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		return nil, fmt.Errorf("categories file '%s' not found: %w", filename, err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	categories, err := parseCategories(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}

	s.logger.WithFields(
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(categories)),
	).Debug("Loaded categories")

	return categories, nil
}

func parseCategories(data []byte) ([]models.CategoryConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var categories []models.CategoryConfig
	if len(doc.Content) > 0 {
		root := doc.Content[0]
		switch root.Kind {
		case yaml.MappingNode:
			var categoriesConfig models.CategoriesConfig
			if err := root.Decode(&categoriesConfig); err != nil {
				return nil, err
			}
			categories = categoriesConfig.Categories
		case yaml.SequenceNode:
			if err := root.Decode(&categories); err != nil {
				return nil, err
			}
		case yaml.ScalarNode:
			if root.Tag != "!!null" {
				return nil, fmt.Errorf("line %d: expected a categories mapping or list", root.Line)
			}
		default:
			return nil, fmt.Errorf("line %d: expected a categories mapping or list", root.Line)
		}
	}

	if len(categories) == 0 {
		return nil, errors.New("no categories defined")
	}
	return categories, nil
}
