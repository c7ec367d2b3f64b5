package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_All(t *testing.T) {
	c := New()

	items := c.All()
	require.Len(t, items, 6)
	assert.Equal(t, "Shirt (Wash & Press)", items[0].Name)
	assert.Equal(t, CategoryHousehold, items[3].Category)

	// Mutating the returned slice must not affect the catalog.
	items[0].Name = "tampered"
	assert.Equal(t, "Shirt (Wash & Press)", c.All()[0].Name)
}

func TestCatalog_Get(t *testing.T) {
	c := New()

	item, ok := c.Get("1")
	require.True(t, ok)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("3.50")))
	assert.Equal(t, CategoryGarment, item.Category)

	_, ok = c.Get("no-such-service")
	assert.False(t, ok)
}
