package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casatartufo/tartufo/pkg/collection"
)

type item struct {
	ID    uint
	Name  string
	Price float64
}

var items = []item{
	{ID: 1, Name: "salsa", Price: 15.99},
	{ID: 2, Name: "olio", Price: 12.50},
	{ID: 3, Name: "sale", Price: 8.75},
}

func TestMap(t *testing.T) {
	names := collection.Map(items, func(i item) string { return i.Name })
	assert.Equal(t, []string{"salsa", "olio", "sale"}, names)

	assert.Empty(t, collection.Map([]item(nil), func(i item) string { return i.Name }))
}

func TestFilterAndFirst(t *testing.T) {
	cheap := collection.Filter(items, func(i item) bool { return i.Price < 13 })
	assert.Len(t, cheap, 2)

	found, ok := collection.First(items, func(i item) bool { return i.ID == 2 })
	assert.True(t, ok)
	assert.Equal(t, "olio", found.Name)

	_, ok = collection.First(items, func(i item) bool { return i.ID == 99 })
	assert.False(t, ok)
}

func TestKeyBy(t *testing.T) {
	byID := collection.KeyBy(items, func(i item) uint { return i.ID })
	assert.Len(t, byID, 3)
	assert.Equal(t, "sale", byID[3].Name)
}

func TestSumAndReduce(t *testing.T) {
	total := collection.Sum(items, func(i item) float64 { return i.Price })
	assert.InDelta(t, 37.24, total, 1e-9)

	longest := collection.Reduce(items, "", func(carry string, i item) string {
		if len(i.Name) > len(carry) {
			return i.Name
		}
		return carry
	})
	assert.Equal(t, "salsa", longest)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, collection.Unique([]string{"a", "b", "a", "c", "b"}))
}

func TestSortBy(t *testing.T) {
	sorted := collection.SortBy(append([]item{}, items...), func(a, b item) bool {
		return a.Price < b.Price
	})
	assert.Equal(t, uint(3), sorted[0].ID)
	assert.Equal(t, uint(1), sorted[2].ID)
}
