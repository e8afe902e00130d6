package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casatartufo/tartufo/app/repositories"
	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/pkg/apperr"
)

func newCatalogService(t *testing.T) *services.CatalogService {
	t.Helper()
	db := newTestDB(t)
	return services.NewCatalogService(
		repositories.NewProductRepository(db),
		repositories.NewDeliverySlotRepository(db),
	)
}

func TestListProducts_SeededCatalog(t *testing.T) {
	svc := newCatalogService(t)

	products, err := svc.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 4)

	assert.Equal(t, "Salsa al Tartufo Nero", products[0].Name)
	assert.InDelta(t, 15.99, products[0].Price, 1e-9)
	assert.InDelta(t, 12.50, products[1].Price, 1e-9)
	assert.InDelta(t, 8.75, products[2].Price, 1e-9)
	assert.InDelta(t, 10.20, products[3].Price, 1e-9)
}

func TestGetProduct(t *testing.T) {
	svc := newCatalogService(t)

	product, err := svc.GetProduct(2)
	require.NoError(t, err)
	assert.Equal(t, "Olio al Tartufo Bianco", product.Name)

	_, err = svc.GetProduct(999)
	assert.EqualError(t, err, "Product not found")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListDeliverySlots_WeekendMatrix(t *testing.T) {
	svc := newCatalogService(t)

	slots, err := svc.ListDeliverySlots()
	require.NoError(t, err)
	require.Len(t, slots, 6)

	days := map[string]int{}
	for _, s := range slots {
		days[s.DayOfWeek]++
	}
	assert.Equal(t, map[string]int{"Saturday": 3, "Sunday": 3}, days)

	assert.Equal(t, "Saturday 10:00-14:00", slots[0].Description())
}
