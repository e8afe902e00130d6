package migrations

import (
	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/pkg/migration"
)

func init() {
	migration.Register("20260801000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260801000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260801000002_create_delivery_slots_table", &CreateDeliverySlotsTable{})
	migration.Register("20260801000003_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260801000004_create_order_items_table", &CreateOrderItemsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: delivery slots --------

type CreateDeliverySlotsTable struct{}

func (m *CreateDeliverySlotsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.DeliverySlot{})
}

func (m *CreateDeliverySlotsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("delivery_slots")
}

// -------- 0004: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0005: order items --------

type CreateOrderItemsTable struct{}

func (m *CreateOrderItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.OrderItem{})
}

func (m *CreateOrderItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items")
}
