package catalog

import "errors"

// ErrNotFound is returned when a product id or index cannot be resolved.
var ErrNotFound = errors.New("catalog: product not found")

// Product is an immutable catalog record. Price is stored in whole currency
// units, as the storefront does not deal in fractions.
type Product struct {
	ID          int64  `db:"id" yaml:"id"`
	Name        string `db:"name" yaml:"name"`
	Description string `db:"description" yaml:"description"`
	Price       int64  `db:"price" yaml:"price"`
	Photo       string `db:"photo" yaml:"photo"`
	Position    int    `db:"position" yaml:"-"`
}
