package store

import (
	"path/filepath"
	"testing"
)

func openHistory(t *testing.T, dbPath string) *History {
	t.Helper()
	h, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestRecordAndRecent(t *testing.T) {
	h := openHistory(t, Path(t.TempDir()))

	records := []struct{ month, format, path string }{
		{"2025-06", "pdf", "/r/report-2025-06.pdf"},
		{"2025-07", "png+csv", "/r/report-2025-07.png"},
		{"", "xlsx", "/r/bling.xlsx"},
	}
	for _, r := range records {
		if err := h.Record(r.month, r.format, r.path); err != nil {
			t.Fatalf("Record(%q) error = %v", r.format, err)
		}
	}

	recent, err := h.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(recent))
	}
	if recent[0].Format != "xlsx" || recent[1].Format != "png+csv" {
		t.Errorf("order = %s, %s; want newest first", recent[0].Format, recent[1].Format)
	}
	if recent[0].Month != "" {
		t.Errorf("Month = %q, want empty for all-month workbook", recent[0].Month)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	count, err := h.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	h := openHistory(t, Path(t.TempDir()))

	if err := h.Record("2025-07", "pdf", "/r/a.pdf"); err != nil {
		t.Fatal(err)
	}

	recent, err := h.Recent(0)
	if err != nil {
		t.Fatalf("Recent(0) error = %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Recent(0) returned %d entries, want 1", len(recent))
	}
}

func TestReopenKeepsRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	h := openHistory(t, dbPath)
	if err := h.Record("2025-07", "pdf", "/r/a.pdf"); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	h2 := openHistory(t, dbPath)
	count, err := h2.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() after reopen = %d, want 1", count)
	}
}
