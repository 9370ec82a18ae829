package store

import (
	"path/filepath"
	"testing"

	"github.com/daviddao/chronology/pkg/model"
	"github.com/daviddao/chronology/pkg/period"
)

// TestStoreImplementsInterface verifies at runtime that *Store satisfies
// StoreInterface by calling every method on a real store.
func TestStoreImplementsInterface(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var iface StoreInterface = s
	defer iface.Close()

	// Stamps
	st := model.Stamp{Label: "epoch", Millis: 0, Chronology: "ISO[UTC]"}
	if err := iface.SaveStamp(&st); err != nil {
		t.Fatalf("SaveStamp: %v", err)
	}
	got, err := iface.GetStamp("epoch")
	if err != nil {
		t.Fatalf("GetStamp: %v", err)
	}
	if got.ID != st.ID {
		t.Errorf("GetStamp returned wrong ID: %q", got.ID)
	}
	stamps, err := iface.ListStamps()
	if err != nil {
		t.Fatalf("ListStamps: %v", err)
	}
	if len(stamps) != 1 {
		t.Errorf("expected 1 stamp, got %d", len(stamps))
	}
	if n := iface.CountStamps(); n != 1 {
		t.Errorf("expected CountStamps=1, got %d", n)
	}
	if err := iface.DeleteStamp("epoch"); err != nil {
		t.Fatalf("DeleteStamp: %v", err)
	}

	// Periods
	r, err := model.NewPeriodRecord("week", period.Weeks(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := iface.SavePeriod(&r); err != nil {
		t.Fatalf("SavePeriod: %v", err)
	}
	if _, err := iface.GetPeriod("week"); err != nil {
		t.Fatalf("GetPeriod: %v", err)
	}
	records, err := iface.ListPeriods()
	if err != nil {
		t.Fatalf("ListPeriods: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 period, got %d", len(records))
	}
	matches, err := iface.FindPeriodsByDigest(r.Digest)
	if err != nil {
		t.Fatalf("FindPeriodsByDigest: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(matches))
	}
	if err := iface.DeletePeriod("week"); err != nil {
		t.Fatalf("DeletePeriod: %v", err)
	}
}
