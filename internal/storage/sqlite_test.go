package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Put("alice", "k", []byte("v")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	v, found, err := store.Get("alice", "k")
	if err != nil || !found || string(v) != "v" {
		t.Errorf("Get() = %q, %v, %v after reopen", v, found, err)
	}
}

func TestStoreGetPutDelete(t *testing.T) {
	store := openTest(t)

	if _, found, err := store.Get("alice", "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v", found, err)
	}

	if err := store.Put("alice", "k", []byte("one")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("alice", "k", []byte("two")); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}
	if err := store.Put("bob", "k", []byte("bob's")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	v, found, err := store.Get("alice", "k")
	if err != nil || !found || string(v) != "two" {
		t.Errorf("Get() = %q, %v, %v, expected the overwritten value", v, found, err)
	}

	if err := store.Delete("alice", "k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, found, _ := store.Get("alice", "k"); found {
		t.Error("value should be gone after Delete")
	}
	if _, found, _ := store.Get("bob", "k"); !found {
		t.Error("other namespaces should not be affected by Delete")
	}
	if err := store.Delete("alice", "k"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestStoreEntriesAndNamespaces(t *testing.T) {
	store := openTest(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return at }

	store.Put("bob", KeyRanking, []byte("[]"))
	store.Put("alice", KeyRanking, []byte("[]"))
	store.Put("alice", KeyOptions, []byte("{}"))

	entries, err := store.Entries("alice")
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != KeyOptions || entries[1].Key != KeyRanking {
		t.Errorf("Entries() = %+v, expected options then ranking", entries)
	}
	if !entries[0].UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt = %v, expected %v", entries[0].UpdatedAt, at)
	}

	names, err := store.NamespacesWith(KeyRanking)
	if err != nil {
		t.Fatalf("NamespacesWith() failed: %v", err)
	}
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Errorf("NamespacesWith() = %v", names)
	}
}

func TestGetJSONMalformed(t *testing.T) {
	store := openTest(t)
	store.Put("alice", KeyOptions, []byte("{not json"))

	o := DefaultOptions()
	found, err := store.GetJSON("alice", KeyOptions, &o)
	if err != nil {
		t.Fatalf("GetJSON() failed: %v", err)
	}
	if found {
		t.Error("malformed value should be reported as not found")
	}
	if o != DefaultOptions() {
		t.Errorf("malformed value should leave defaults, got %+v", o)
	}

	got, err := store.Options("alice")
	if err != nil || got != DefaultOptions() {
		t.Errorf("Options() = %+v, %v, expected defaults", got, err)
	}
}

func TestGetJSONTypeMismatch(t *testing.T) {
	store := openTest(t)
	store.Put("alice", KeyOptions, []byte(`{"difficulty":"hard","mute":true,"angle_clamp":"yes"}`))
	store.Put("alice", KeyRanking, []byte(`[{"score":900},{"score":"x"}]`))
	store.Put("alice", KeySavedGame, []byte(`{"name":"run","score":"lots"}`))

	o, err := store.Options("alice")
	if err != nil {
		t.Fatalf("Options() failed: %v", err)
	}
	if o != DefaultOptions() {
		t.Errorf("Options() = %+v, expected defaults", o)
	}

	r, err := store.Ranking("alice")
	if err != nil {
		t.Fatalf("Ranking() failed: %v", err)
	}
	if len(r) != 0 {
		t.Errorf("Ranking() = %+v, expected empty", r)
	}

	type run struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	dst := run{Name: "default"}
	found, err := store.LoadGame("alice", &dst)
	if err != nil || found {
		t.Errorf("LoadGame() = %v, %v, expected not found", found, err)
	}
	if dst != (run{Name: "default"}) {
		t.Errorf("LoadGame() changed the destination to %+v", dst)
	}
}

func TestGetJSONNeedsPointer(t *testing.T) {
	store := openTest(t)
	store.PutJSON("alice", KeyOptions, DefaultOptions())

	if _, err := store.GetJSON("alice", KeyOptions, DefaultOptions()); err == nil {
		t.Error("GetJSON() into a non-pointer should fail")
	}
	var o *Options
	if _, err := store.GetJSON("alice", KeyOptions, o); err == nil {
		t.Error("GetJSON() into a nil pointer should fail")
	}
}

func TestNamespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"  bob  ", "bob"},
		{"dr. who?", "dr__who_"},
		{"", GuestNamespace},
		{"???", GuestNamespace},
		{"_system", "system"},
		{"__x", "x"},
		{"a-b_c9", "a-b_c9"},
		{"abcdefghijklmnopqrstuvwxyz0123456789", "abcdefghijklmnopqrstuvwxyz012345"},
	}

	for _, tt := range tests {
		if got := Namespace(tt.in); got != tt.want {
			t.Errorf("Namespace(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
