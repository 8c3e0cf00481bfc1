// Package catalog loads the menu pages the kiosk shows: categories with
// their column headers and the products priced in each column.
//
// Catalogs are YAML documents checked twice: field names strictly while
// decoding, then the layout against an embedded CUE schema. Parse and Load
// only return catalogs that passed both.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/techbar/internal/menu"
)

//go:embed default.yaml
var defaultCatalog []byte

// ErrNoPrice is returned when tapping a cell that has no price.
var ErrNoPrice = errors.New("cell has no price")

// Product is one row of a menu page.
type Product struct {
	Name   string   `yaml:"name" json:"name"`
	Prices []string `yaml:"prices" json:"prices"`
}

// Category is one menu page. Key identifies it for navigation; Title is the
// page title the order engine classifies on.
type Category struct {
	Key      string    `yaml:"key" json:"key"`
	Title    string    `yaml:"title" json:"title"`
	Headers  []string  `yaml:"headers" json:"headers"`
	Products []Product `yaml:"products" json:"products"`
}

// Catalog is the whole menu.
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	c, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Decode decodes a catalog document without validating its layout. Unknown
// fields are rejected.
func Decode(data []byte) (*Catalog, error) {
	var c Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse catalog: empty document")
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// Keys returns the category keys in navigation order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		keys[i] = cat.Key
	}
	return keys
}

// Category finds a category by key, ignoring case.
func (c *Catalog) Category(key string) (Category, bool) {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat.Key, key) {
			return cat, true
		}
	}
	return Category{}, false
}

// Row finds a product by name, ignoring case.
func (cat Category) Row(name string) (int, bool) {
	for i, p := range cat.Products {
		if strings.EqualFold(p.Name, name) {
			return i, true
		}
	}
	return 0, false
}

// Tap builds the tap on the price cell at row and col. Column 0 is the
// product name column and has no price.
func (cat Category) Tap(row, col int) (menu.Tap, error) {
	if row < 0 || row >= len(cat.Products) {
		return menu.Tap{}, fmt.Errorf("%s: row %d out of range [0,%d)", cat.Key, row, len(cat.Products))
	}
	p := cat.Products[row]
	if col < 1 || col > len(p.Prices) {
		return menu.Tap{}, fmt.Errorf("%s: column %d out of range [1,%d]", cat.Key, col, len(p.Prices))
	}
	price := p.Prices[col-1]
	if strings.TrimSpace(price) == "" {
		return menu.Tap{}, fmt.Errorf("%s: %s column %d: %w", cat.Key, p.Name, col, ErrNoPrice)
	}
	return menu.Tap{
		Category: cat.Title,
		Product:  p.Name,
		Price:    price,
		Headers:  slices.Clone(cat.Headers),
		Column:   col,
	}, nil
}
