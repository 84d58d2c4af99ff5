// Package catalog serves the read-only product list embedded in the binary.
package catalog

import (
	"context"
	_ "embed"
	"slices"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/errors"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type itemDoc struct {
	ID           int      `yaml:"id"`
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"`
	Price        string   `yaml:"price"`
	Description  string   `yaml:"description"`
	TastingNotes []string `yaml:"tastingNotes"`
	Ingredients  []string `yaml:"ingredients"`
	Image        string   `yaml:"image"`
}

type catalogDoc struct {
	Items []itemDoc `yaml:"items"`
}

type staticCatalog struct {
	items      []entity.Item
	byID       map[int]int
	categories []entity.Category
}

// New loads the embedded menu.
func New() (repository.CatalogRepository, error) {
	return Parse(defaultCatalog)
}

// Parse builds a catalog from YAML. Ids must be unique, prices non-negative
// decimals and categories known.
func Parse(data []byte) (repository.CatalogRepository, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog")
	}

	c := &staticCatalog{byID: make(map[int]int, len(doc.Items))}
	for _, d := range doc.Items {
		if _, dup := c.byID[d.ID]; dup {
			return nil, errors.Errorf("duplicate catalog id %d", d.ID)
		}
		price, err := decimal.NewFromString(d.Price)
		if err != nil || price.IsNegative() {
			return nil, errors.Errorf("catalog item %d has invalid price %q", d.ID, d.Price)
		}
		category := entity.Category(d.Category)
		if !category.IsValid() {
			return nil, errors.Errorf("catalog item %d has unknown category %q", d.ID, d.Category)
		}

		c.byID[d.ID] = len(c.items)
		c.items = append(c.items, entity.Item{
			ID:           d.ID,
			Name:         d.Name,
			Category:     category,
			Price:        price,
			Description:  d.Description,
			TastingNotes: d.TastingNotes,
			Ingredients:  d.Ingredients,
			Image:        d.Image,
		})
		if !slices.Contains(c.categories, category) {
			c.categories = append(c.categories, category)
		}
	}

	return c, nil
}

func (c *staticCatalog) ListItems(_ context.Context) ([]entity.Item, error) {
	items := make([]entity.Item, len(c.items))
	for i, item := range c.items {
		items[i] = item.Clone()
	}

	return items, nil
}

func (c *staticCatalog) GetItem(_ context.Context, id int) (entity.Item, error) {
	idx, ok := c.byID[id]
	if !ok {
		return entity.Item{}, repository.ErrItemNotFound
	}

	return c.items[idx].Clone(), nil
}

func (c *staticCatalog) ListItemsByCategory(_ context.Context, category entity.Category) ([]entity.Item, error) {
	var items []entity.Item
	for _, item := range c.items {
		if item.Category == category {
			items = append(items, item.Clone())
		}
	}

	return items, nil
}

func (c *staticCatalog) Categories(_ context.Context) ([]entity.Category, error) {
	return slices.Clone(c.categories), nil
}
