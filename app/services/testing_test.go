package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/app/repositories"
	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/database/seeders"
)

// newTestDB opens a fresh in-memory database seeded with the fixed catalog
// and slot matrix. Each test gets its own named database so state never
// leaks between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.DeliverySlot{},
		&models.Order{},
		&models.OrderItem{},
	))
	require.NoError(t, seeders.SeedProducts(db))
	require.NoError(t, seeders.SeedDeliverySlots(db))

	return db
}

// newTestUser inserts a user directly; the password hash is irrelevant for
// order tests.
func newTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Alice", Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newOrderService(db *gorm.DB) *services.OrderService {
	return services.NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewDeliverySlotRepository(db),
		repositories.NewUserRepository(db),
	)
}
