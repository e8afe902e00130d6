package controllers_test

import (
	"testing"

	"github.com/casatartufo/tartufo/pkg/testkit"
)

// TestPublicAPIScenarios drives the stateless endpoints from the JSON
// scenario files in testdata/. Stateful flows (login, ordering) live in
// api_test.go because they carry a cookie across requests.
func TestPublicAPIScenarios(t *testing.T) {
	h, _ := newAPI(t)
	testkit.RunDir(t, h, "testdata")
}
