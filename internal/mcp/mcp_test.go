package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/EmilIverskog/storageFinder/internal/backup"
	"github.com/EmilIverskog/storageFinder/internal/inventory"
	"github.com/EmilIverskog/storageFinder/internal/store"
	mcppkg "github.com/mark3labs/mcp-go/mcp"
)

func newMCPTestService(t *testing.T) *inventory.Service {
	t.Helper()
	cfg := store.DefaultConfig()
	cfg.DataDir = t.TempDir()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	svc := inventory.NewService(s)
	for _, c := range []inventory.Component{
		{ID: "R-100", Location: "Shelf 3"},
		{ID: "C-22", Location: "Drawer A"},
	} {
		if _, err := svc.Add(c.ID, c.Location); err != nil {
			t.Fatalf("seed %s: %v", c.ID, err)
		}
	}
	return svc
}

func callResultText(t *testing.T, res *mcppkg.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("expected non-empty tool result")
	}
	text, ok := mcppkg.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("expected text content")
	}
	return text.Text
}

func request(args map[string]any) mcppkg.CallToolRequest {
	return mcppkg.CallToolRequest{Params: mcppkg.CallToolParams{Arguments: args}}
}

func TestNewServerRegistersTools(t *testing.T) {
	svc := newMCPTestService(t)
	srv := NewServer(svc, Options{Version: "test"})
	if srv == nil {
		t.Fatalf("expected MCP server instance")
	}
}

func TestResolveTools(t *testing.T) {
	if ResolveTools("") != nil || ResolveTools("all") != nil || ResolveTools("read,all") != nil {
		t.Fatalf("empty or all must register everything")
	}

	read := ResolveTools("read")
	if len(read) != 3 || !read["inventory_get"] || read["inventory_delete"] {
		t.Fatalf("unexpected read profile %v", read)
	}

	combined := ResolveTools("read, write")
	if len(combined) != 7 {
		t.Fatalf("expected all 7 tools, got %v", combined)
	}

	single := ResolveTools("inventory_search,inventory_export")
	if len(single) != 2 || !single["inventory_export"] {
		t.Fatalf("unexpected individual selection %v", single)
	}

	if !shouldRegister("anything", nil) || shouldRegister("inventory_add", read) {
		t.Fatalf("shouldRegister does not honor the allowlist")
	}
}

func TestHandleSearch(t *testing.T) {
	svc := newMCPTestService(t)
	h := handleSearch(svc)

	res, err := h(context.Background(), request(map[string]any{"query": "r-1"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	text := callResultText(t, res)
	if !strings.Contains(text, "Found 1 component") || !strings.Contains(text, "R-100 → Shelf 3") {
		t.Fatalf("unexpected search output: %q", text)
	}

	res, _ = h(context.Background(), request(map[string]any{"query": "nowhere"}))
	if text := callResultText(t, res); !strings.Contains(text, "No components found") {
		t.Fatalf("expected no-match text, got %q", text)
	}
}

func TestHandleSearchLimit(t *testing.T) {
	svc := newMCPTestService(t)
	res, _ := handleSearch(svc)(context.Background(), request(map[string]any{"limit": float64(1)}))
	text := callResultText(t, res)
	if !strings.Contains(text, "[1] R-100") || strings.Contains(text, "[2]") || !strings.Contains(text, "and 1 more") {
		t.Fatalf("limit not applied: %q", text)
	}
}

func TestHandleSearchNonPositiveLimitUsesDefault(t *testing.T) {
	svc := newMCPTestService(t)
	for i := 0; i < 25; i++ {
		if _, err := svc.Add(fmt.Sprintf("BULK-%02d", i), "Crate"); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	for _, limit := range []float64{0, -3} {
		res, _ := handleSearch(svc)(context.Background(), request(map[string]any{"limit": limit}))
		text := callResultText(t, res)
		if !strings.Contains(text, "[20] ") || strings.Contains(text, "[21] ") || !strings.Contains(text, "and 7 more") {
			t.Fatalf("limit %v should fall back to 20: %q", limit, text)
		}
	}
}

func TestHandleGet(t *testing.T) {
	svc := newMCPTestService(t)
	h := handleGet(svc)

	res, _ := h(context.Background(), request(map[string]any{"id": "C-22"}))
	if res.IsError || !strings.Contains(callResultText(t, res), "Drawer A") {
		t.Fatalf("unexpected get result %q", callResultText(t, res))
	}

	res, _ = h(context.Background(), request(map[string]any{"id": "c-22"}))
	if !res.IsError {
		t.Fatalf("lookups are case-sensitive; expected not-found error")
	}

	res, _ = h(context.Background(), request(map[string]any{}))
	if !res.IsError {
		t.Fatalf("expected error when id is missing")
	}
}

func TestHandleAddRejectsDuplicate(t *testing.T) {
	svc := newMCPTestService(t)
	h := handleAdd(svc)

	res, _ := h(context.Background(), request(map[string]any{"id": "X-1", "location": " Bin 9 "}))
	if res.IsError {
		t.Fatalf("unexpected add error: %s", callResultText(t, res))
	}
	if c, err := svc.Get("X-1"); err != nil || c.Location != "Bin 9" {
		t.Fatalf("expected trimmed X-1 stored, got %+v (%v)", c, err)
	}

	res, _ = h(context.Background(), request(map[string]any{"id": "X-1", "location": "Other"}))
	if !res.IsError || !strings.Contains(callResultText(t, res), "already exists") {
		t.Fatalf("expected duplicate error")
	}

	res, _ = h(context.Background(), request(map[string]any{"id": "Y", "location": "   "}))
	if !res.IsError {
		t.Fatalf("expected blank-field error")
	}
}

func TestHandleUpdateKeepsOmittedFields(t *testing.T) {
	svc := newMCPTestService(t)
	h := handleUpdate(svc)

	res, _ := h(context.Background(), request(map[string]any{"id": "C-22", "location": "Drawer B"}))
	if res.IsError {
		t.Fatalf("unexpected update error: %s", callResultText(t, res))
	}
	c, _ := svc.Get("C-22")
	if c.Location != "Drawer B" {
		t.Fatalf("expected relocation, got %+v", c)
	}

	res, _ = h(context.Background(), request(map[string]any{"id": "C-22", "new_id": "C-23"}))
	if res.IsError {
		t.Fatalf("unexpected rename error: %s", callResultText(t, res))
	}
	c, err := svc.Get("C-23")
	if err != nil || c.Location != "Drawer B" {
		t.Fatalf("rename must keep location, got %+v (%v)", c, err)
	}

	res, _ = h(context.Background(), request(map[string]any{"id": "C-23", "new_id": "R-100"}))
	if !res.IsError {
		t.Fatalf("expected collision error")
	}

	res, _ = h(context.Background(), request(map[string]any{"id": "C-23"}))
	if !res.IsError {
		t.Fatalf("expected error when nothing to update")
	}

	res, _ = h(context.Background(), request(map[string]any{"id": "missing", "location": "x"}))
	if !res.IsError || !strings.Contains(callResultText(t, res), "not found") {
		t.Fatalf("expected not-found error")
	}
}

func TestHandleDeleteIsIdempotent(t *testing.T) {
	svc := newMCPTestService(t)
	h := handleDelete(svc)

	res, _ := h(context.Background(), request(map[string]any{"id": "R-100"}))
	if res.IsError || !strings.Contains(callResultText(t, res), "deleted") {
		t.Fatalf("unexpected delete result")
	}
	res, _ = h(context.Background(), request(map[string]any{"id": "R-100"}))
	if res.IsError || !strings.Contains(callResultText(t, res), "Nothing to delete") {
		t.Fatalf("second delete should be a no-op, got %q", callResultText(t, res))
	}

	items, _ := svc.All()
	if len(items) != 1 {
		t.Fatalf("expected one component left, got %+v", items)
	}
}

func TestHandleStats(t *testing.T) {
	svc := newMCPTestService(t)
	res, _ := handleStats(svc)(context.Background(), request(nil))
	text := callResultText(t, res)
	if !strings.Contains(text, "Components: 2") || !strings.Contains(text, "Shelf 3, Drawer A") {
		t.Fatalf("unexpected stats output: %q", text)
	}
}

func TestHandleExport(t *testing.T) {
	svc := newMCPTestService(t)
	dir := t.TempDir()

	orig := nowFn
	nowFn = func() time.Time { return time.Date(2024, time.March, 5, 7, 4, 0, 0, time.Local) }
	t.Cleanup(func() { nowFn = orig })

	h := handleExport(svc, dir)

	res, _ := h(context.Background(), request(map[string]any{}))
	if res.IsError {
		t.Fatalf("unexpected export error: %s", callResultText(t, res))
	}
	path := filepath.Join(dir, "detaljer_backup_2024-03-05_07-04.json")
	items, err := backup.ReadFile(path)
	if err != nil || len(items) != 2 {
		t.Fatalf("export does not round-trip: %+v (%v)", items, err)
	}

	other := t.TempDir()
	res, _ = h(context.Background(), request(map[string]any{"format": "xlsx", "dir": other}))
	if res.IsError {
		t.Fatalf("unexpected xlsx error: %s", callResultText(t, res))
	}
	if _, err := os.Stat(filepath.Join(other, "detaljer_backup_2024-03-05_07-04.xlsx")); err != nil {
		t.Fatalf("expected xlsx file: %v", err)
	}

	res, _ = h(context.Background(), request(map[string]any{"format": "csv"}))
	if !res.IsError {
		t.Fatalf("expected unknown format error")
	}
}

func TestHandleExportEmptyCatalog(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Backend = store.BackendMemory
	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	dir := t.TempDir()

	res, _ := handleExport(inventory.NewService(s), dir)(context.Background(), request(nil))
	if res.IsError || !strings.Contains(callResultText(t, res), "No data to export") {
		t.Fatalf("expected informational result for empty catalog")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("no file should be written, got %d", len(entries))
	}
}
