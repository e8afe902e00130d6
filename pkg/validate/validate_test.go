package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casatartufo/tartufo/pkg/validate"
)

type registration struct {
	Name    string `json:"name"    validate:"required,max=10"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"nullable,max=20"`
	Age     int    `json:"age"     validate:"nullable,min=18"`
	Day     string `json:"day"     validate:"nullable,date"`
}

func TestStruct_Valid(t *testing.T) {
	errs := validate.Struct(registration{
		Name:  "Alice",
		Email: "alice@example.com",
		Day:   "2026-08-29",
	})
	assert.False(t, validate.HasErrors(errs))
}

func TestStruct_Required(t *testing.T) {
	errs := validate.Struct(registration{Email: "alice@example.com"})
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestStruct_Email(t *testing.T) {
	errs := validate.Struct(registration{Name: "Alice", Email: "not-an-email"})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestStruct_NullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(registration{Name: "Alice", Email: "alice@example.com"})
	assert.NotContains(t, errs, "address")
	assert.NotContains(t, errs, "age")
	assert.NotContains(t, errs, "day")
}

func TestStruct_NullableStillValidatesWhenSet(t *testing.T) {
	errs := validate.Struct(registration{
		Name:    "Alice",
		Email:   "alice@example.com",
		Address: "this address is way past the twenty character cap",
		Age:     16,
		Day:     "29/08/2026",
	})
	assert.Equal(t, "The address must not exceed 20 characters.", errs["address"])
	assert.Equal(t, "The age must be at least 18.", errs["age"])
	assert.Equal(t, "The day is not a valid date.", errs["day"])
}

func TestStruct_MaxString(t *testing.T) {
	errs := validate.Struct(registration{Name: "a name longer than ten", Email: "alice@example.com"})
	assert.Equal(t, "The name must not exceed 10 characters.", errs["name"])
}

func TestStruct_FirstFailingRuleWins(t *testing.T) {
	// Empty email fails "required"; the "email" rule never runs.
	errs := validate.Struct(registration{Name: "Alice"})
	assert.Equal(t, "The email field is required.", errs["email"])
}
