package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/database/seeders"
	"github.com/casatartufo/tartufo/internal/server"
)

// newAPI builds the complete HTTP handler, middleware stack included, backed
// by a fresh seeded in-memory database.
func newAPI(t *testing.T) (http.Handler, *gorm.DB) {
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

	return server.BuildHandler(db), db
}

// do fires one request and decodes the response envelope.
func do(t *testing.T, h http.Handler, method, path, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope),
			"%s %s returned invalid JSON: %s", method, path, rec.Body.String())
	}
	return rec, envelope
}

// nextSaturday returns the first Saturday at least a week away, so the order
// date is always valid regardless of when the test runs.
func nextSaturday() time.Time {
	d := time.Now().AddDate(0, 0, 7)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func login(t *testing.T, h http.Handler, email, password string) []*http.Cookie {
	t.Helper()
	rec, _ := do(t, h, http.MethodPost, "/api/login",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestOrderWorkflow_EndToEnd(t *testing.T) {
	h, _ := newAPI(t)

	// Register.
	rec, body := do(t, h, http.MethodPost, "/api/register",
		`{"name":"Alice","email":"alice@example.com","password":"pw123","address":"Via Roma 1"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	user := body["data"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])

	// Registration must not log the caller in.
	rec, body = do(t, h, http.MethodGet, "/api/check_session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["data"].(map[string]interface{})["logged_in"])

	// Login and keep the session cookie.
	cookies := login(t, h, "alice@example.com", "pw123")

	rec, body = do(t, h, http.MethodGet, "/api/check_session", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	state := body["data"].(map[string]interface{})
	assert.Equal(t, true, state["logged_in"])
	assert.Equal(t, "alice@example.com", state["user"].(map[string]interface{})["email"])

	// Place an order: 2x Salsa (15.99) + 1x Olio (12.50) = 44.48.
	saturday := nextSaturday().Format("2006-01-02")
	orderBody := fmt.Sprintf(
		`{"cart_items":[{"product_id":1,"quantity":2},{"product_id":2,"quantity":1}],"delivery_date":%q,"delivery_slot_id":1}`,
		saturday)

	rec, body = do(t, h, http.MethodPost, "/api/orders", orderBody, cookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Order placed successfully", body["message"])
	order := body["data"].(map[string]interface{})
	assert.InDelta(t, 44.48, order["total_amount"].(float64), 1e-9)
	assert.Equal(t, "Pending", order["status"])
	assert.Equal(t, "Saturday 10:00-14:00", order["delivery_slot_description"])
	assert.Equal(t, "Alice", order["customer_name"])
	assert.Len(t, order["items"].([]interface{}), 2)

	// A weekday date is rejected with the exact message and persists nothing.
	monday := nextSaturday().AddDate(0, 0, 2).Format("2006-01-02")
	rec, body = do(t, h, http.MethodPost, "/api/orders",
		fmt.Sprintf(`{"cart_items":[{"product_id":1,"quantity":1}],"delivery_date":%q,"delivery_slot_id":1}`, monday),
		cookies)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Delivery is only available on Saturdays and Sundays.", body["message"])

	// History holds exactly the one successful order.
	rec, body = do(t, h, http.MethodGet, "/api/orders/history", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	history := body["data"].([]interface{})
	require.Len(t, history, 1)
	first := history[0].(map[string]interface{})
	assert.Equal(t, saturday, first["delivery_date"])
	items := first["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Salsa al Tartufo Nero", items[0].(map[string]interface{})["product_name"])

	// Update the delivery address.
	rec, body = do(t, h, http.MethodPut, "/api/user/address", `{"address":"Via Nuova 7"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Via Nuova 7", body["data"].(map[string]interface{})["address"])

	rec, body = do(t, h, http.MethodPut, "/api/user/address", `{}`, cookies)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing address field", body["message"])

	// Logout revokes the session immediately.
	rec, _ = do(t, h, http.MethodPost, "/api/logout", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = do(t, h, http.MethodGet, "/api/check_session", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["data"].(map[string]interface{})["logged_in"])

	rec, _ = do(t, h, http.MethodPost, "/api/orders", orderBody, cookies)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	h, _ := newAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/orders/history"},
		{http.MethodPost, "/api/logout"},
		{http.MethodPut, "/api/user/address"},
	} {
		rec, body := do(t, h, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Authentication required", body["message"])
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h, _ := newAPI(t)

	rec, _ := do(t, h, http.MethodPost, "/api/register",
		`{"name":"Alice","email":"alice@example.com","password":"pw123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := do(t, h, http.MethodPost, "/api/login",
		`{"email":"alice@example.com","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", body["message"])

	// Unknown email is indistinguishable from a wrong password.
	rec, body = do(t, h, http.MethodPost, "/api/login",
		`{"email":"nobody@example.com","password":"pw123"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	h, _ := newAPI(t)

	payload := `{"name":"Alice","email":"alice@example.com","password":"pw123"}`
	rec, _ := do(t, h, http.MethodPost, "/api/register", payload, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := do(t, h, http.MethodPost, "/api/register", payload, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", body["message"])
}

func TestCheckSession_StaleUserSelfHeals(t *testing.T) {
	h, db := newAPI(t)

	rec, _ := do(t, h, http.MethodPost, "/api/register",
		`{"name":"Alice","email":"alice@example.com","password":"pw123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookies := login(t, h, "alice@example.com", "pw123")

	// The account disappears while the session is still live.
	require.NoError(t, db.Where("email = ?", "alice@example.com").Delete(&models.User{}).Error)

	rec, body := do(t, h, http.MethodGet, "/api/check_session", "", cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found, session cleared", body["message"])

	// The stale session was cleared, not just reported.
	rec, body = do(t, h, http.MethodGet, "/api/check_session", "", cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["data"].(map[string]interface{})["logged_in"])
}

func TestRegister_ValidationErrors(t *testing.T) {
	h, _ := newAPI(t)

	rec, body := do(t, h, http.MethodPost, "/api/register",
		`{"name":"Alice","email":"not-an-email","password":"pw123"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", body["message"])
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "email")
}
