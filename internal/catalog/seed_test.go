package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedMissingFileIsNotAnError(t *testing.T) {
	err := Seed(context.Background(), nil, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
}

func TestSeedEmptyProductList(t *testing.T) {
	path := writeSeedFile(t, "products: []\n")
	err := Seed(context.Background(), nil, path)
	assert.NoError(t, err)
}

func TestSeedRejectsMalformedYAML(t *testing.T) {
	path := writeSeedFile(t, "products: [unclosed\n")
	err := Seed(context.Background(), nil, path)
	assert.Error(t, err)
}

func TestSeedValidatesIDs(t *testing.T) {
	path := writeSeedFile(t, `
products:
  - id: 0
    name: "Broken"
    price: 100
`)
	err := Seed(context.Background(), nil, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}

func TestSeedValidatesPrice(t *testing.T) {
	path := writeSeedFile(t, `
products:
  - id: 1
    name: "Broken"
    price: -5
`)
	err := Seed(context.Background(), nil, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative price")
}
