package catalog

// Store is a read-only ordered view of the product catalog. It is built once
// at startup and never mutated afterwards, so it is safe for concurrent use
// without locking.
type Store interface {
	Count() int
	Get(index int) (Product, error)
	FindByID(id int64) (Product, error)
}

type memoryStore struct {
	products []Product
	byID     map[int64]int
}

// NewStore builds an in-memory Store preserving the order of products.
func NewStore(products []Product) Store {
	byID := make(map[int64]int, len(products))
	for i, p := range products {
		if _, dup := byID[p.ID]; dup {
			continue
		}
		byID[p.ID] = i
	}
	return &memoryStore{
		products: append([]Product(nil), products...),
		byID:     byID,
	}
}

func (s *memoryStore) Count() int {
	return len(s.products)
}

func (s *memoryStore) Get(index int) (Product, error) {
	if index < 0 || index >= len(s.products) {
		return Product{}, ErrNotFound
	}
	return s.products[index], nil
}

func (s *memoryStore) FindByID(id int64) (Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return s.products[i], nil
}
