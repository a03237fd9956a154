package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{ID: 1, Name: "Lavender Dream", Price: 300},
		{ID: 2, Name: "Vanilla Evening", Price: 150},
		{ID: 3, Name: "Cedar & Amber", Price: 450},
	}
}

func TestStorePreservesOrder(t *testing.T) {
	store := NewStore(testProducts())

	require.Equal(t, 3, store.Count())
	for i, want := range []int64{1, 2, 3} {
		p, err := store.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, p.ID)
	}
}

func TestStoreGetOutOfRange(t *testing.T) {
	store := NewStore(testProducts())

	_, err := store.Get(-1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreFindByID(t *testing.T) {
	store := NewStore(testProducts())

	p, err := store.FindByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Vanilla Evening", p.Name)

	_, err = store.FindByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDuplicateIDResolvesFirst(t *testing.T) {
	store := NewStore([]Product{
		{ID: 1, Name: "first", Price: 100},
		{ID: 1, Name: "second", Price: 200},
	})

	p, err := store.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "first", p.Name)
}

func TestStoreEmpty(t *testing.T) {
	store := NewStore(nil)

	assert.Equal(t, 0, store.Count())
	_, err := store.Get(0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCopiesInput(t *testing.T) {
	products := testProducts()
	store := NewStore(products)

	products[0].Name = "mutated"

	p, err := store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Lavender Dream", p.Name)
}
