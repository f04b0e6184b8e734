package document

import (
	"github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/errors"
)

// Catalog is a read-only index over a document's categories and options
type Catalog struct {
	doc        *build.Document
	options    map[string]*build.Option
	categoryOf map[string]*build.Category
	categories map[string]*build.Category
	order      []*build.Option
}

// NewCatalog indexes a document. Option IDs must be present and unique
// across the whole document.
func NewCatalog(doc *build.Document) (*Catalog, error) {
	if doc == nil {
		return nil, errors.InvalidArgument("document is required")
	}

	c := &Catalog{
		doc:        doc,
		options:    make(map[string]*build.Option),
		categoryOf: make(map[string]*build.Category),
		categories: make(map[string]*build.Category),
	}

	for ci, category := range doc.Categories {
		if category == nil {
			continue
		}
		if _, ok := c.categories[category.Name]; !ok {
			c.categories[category.Name] = category
		}
		for oi, option := range category.Options {
			if option == nil {
				continue
			}
			if option.ID == "" {
				return nil, errors.InvalidArgumentf("option without id in category %q", category.Name).
					WithMeta("category", ci).
					WithMeta("option", oi)
			}
			if _, exists := c.options[option.ID]; exists {
				return nil, errors.InvalidArgumentf("duplicate option id %q", option.ID).
					WithMeta("option_id", option.ID)
			}
			c.options[option.ID] = option
			c.categoryOf[option.ID] = category
			c.order = append(c.order, option)
		}
	}

	return c, nil
}

// Document returns the indexed document
func (c *Catalog) Document() *build.Document {
	return c.doc
}

// Option looks up an option by ID
func (c *Catalog) Option(id string) (*build.Option, bool) {
	option, ok := c.options[id]
	return option, ok
}

// CategoryOf returns the category holding an option
func (c *Catalog) CategoryOf(id string) (*build.Category, bool) {
	category, ok := c.categoryOf[id]
	return category, ok
}

// Category looks up a category by name. With duplicate names the first wins.
func (c *Catalog) Category(name string) (*build.Category, bool) {
	category, ok := c.categories[name]
	return category, ok
}

// Categories returns the categories in document order
func (c *Catalog) Categories() []*build.Category {
	out := make([]*build.Category, 0, len(c.doc.Categories))
	for _, category := range c.doc.Categories {
		if category != nil {
			out = append(out, category)
		}
	}
	return out
}

// Options returns every option in document order
func (c *Catalog) Options() []*build.Option {
	return c.order
}

// StartingBalances returns a copy of the declared starting currency values
func (c *Catalog) StartingBalances() map[string]float64 {
	out := make(map[string]float64, len(c.doc.Points.Values))
	for currency, value := range c.doc.Points.Values {
		out[currency] = value
	}
	return out
}
