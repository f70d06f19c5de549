//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "restaurant-api"
	ConsumerName = "kitchen-display"

	StateMenuSeeded      = "starter menu seeded"
	StateDosaUnavailable = "Dosa is marked unavailable"
	StateOrderMissing    = "no order with id 999"
	StateOrderExists     = "order with id 1 exists"
)

const (
	IdliID int64 = 1
	DosaID int64 = 2

	ExistingOrderID int64 = 1
	MissingOrderID  int64 = 999

	ExampleTable = "7"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the kitchen display consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderRequest provides stable test data for order submissions.
func ExampleOrderRequest(lines ...map[string]any) map[string]any {
	items := make([]any, 0, len(lines))
	for _, line := range lines {
		items = append(items, line)
	}
	return map[string]any{
		"table": ExampleTable,
		"items": items,
	}
}

// Line builds one order line payload.
func Line(id int64, qty int) map[string]any {
	return map[string]any{"id": id, "qty": qty}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
