package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileStore(t *testing.T) {
	t.Run("missing file is empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")

		store, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		if store.Path() != path {
			t.Errorf("Path() = %s, want %s", store.Path(), path)
		}
		if store.IsModified() {
			t.Error("new store should not be modified")
		}
		all, _ := store.GetAll()
		if len(all) != 0 {
			t.Errorf("expected no sections, got %v", all)
		}
	})

	t.Run("default path", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		store, err := NewFileStore("")
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		want := filepath.Join(home, ".autofill", "config.json")
		if store.Path() != want {
			t.Errorf("Path() = %s, want %s", store.Path(), want)
		}
	})

	t.Run("comments and trailing commas", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		raw := `{
  // hand edited
  "version": "1",
  "sections": {
    "autofill": {
      "only_empty_fields": true, /* keep typed values */
    },
  },
}`
		if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
			t.Fatal(err)
		}

		store, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		section, _ := store.GetSection("autofill")
		if section["only_empty_fields"] != true {
			t.Errorf("unexpected section data: %v", section)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"sections": [`), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileStore(path); err == nil {
			t.Fatal("expected decode error")
		}
	})
}

func TestFileStore_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.SetSection("browser", map[string]interface{}{"headless": false}); err != nil {
		t.Fatal(err)
	}
	if !store.IsModified() {
		t.Error("SetSection should mark the store modified")
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.IsModified() {
		t.Error("Save should clear the modified flag")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	var layout fileLayout
	if err := json.Unmarshal(raw, &layout); err != nil {
		t.Fatalf("written config is not JSON: %v", err)
	}
	if layout.Version != storeVersion {
		t.Errorf("version = %q, want %q", layout.Version, storeVersion)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	reloaded, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	section, _ := reloaded.GetSection("browser")
	if section["headless"] != false {
		t.Errorf("reloaded section = %v", section)
	}
}

func TestFileStore_ReturnsCopies(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}

	input := map[string]interface{}{"k": "v"}
	store.SetSection("s", input)
	input["k"] = "changed"

	got, _ := store.GetSection("s")
	if got["k"] != "v" {
		t.Error("store kept a reference to the caller's map")
	}
	got["k"] = "mutated"

	again, _ := store.GetSection("s")
	if again["k"] != "v" {
		t.Error("GetSection returned the internal map")
	}

	store.SetAll(map[string]map[string]interface{}{"other": {"x": 1}})
	all, _ := store.GetAll()
	if _, ok := all["s"]; ok {
		t.Error("SetAll should replace every section")
	}
	if all["other"]["x"] != 1 {
		t.Errorf("unexpected sections: %v", all)
	}
}
