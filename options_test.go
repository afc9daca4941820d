package quanto

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing options file: %v", err)
	}
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeOptionsFile(t, `
allParams: true
useGeometry: true
round: 2
extraParams:
  - IsExternal
  - Category
rename:
  Area: NetArea
  Volume: NetVolume
`)

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}

	if !opts.allParams || !opts.useGeometry || opts.forceGeometry {
		t.Errorf("flags = %+v", opts)
	}
	if opts.round != 2 {
		t.Errorf("round = %d, want 2", opts.round)
	}
	if len(opts.extraParams) != 2 || opts.extraParams[0] != "IsExternal" {
		t.Errorf("extraParams = %v", opts.extraParams)
	}
	if opts.rename["Area"] != "NetArea" || opts.rename["Volume"] != "NetVolume" {
		t.Errorf("rename = %v", opts.rename)
	}
}

func TestLoadOptionsDefaults(t *testing.T) {
	path := writeOptionsFile(t, `allParams: true`)

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}

	// Unset round keeps rounding disabled
	if opts.round != -1 {
		t.Errorf("round = %d, want the default -1", opts.round)
	}
	if opts.useGeometry || opts.forceGeometry {
		t.Error("geometry flags set without being configured")
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadOptions on a missing file should fail")
	}

	path := writeOptionsFile(t, "allParams: [not, a, bool]")
	if _, err := LoadOptions(path); err == nil {
		t.Error("LoadOptions on malformed YAML should fail")
	}
}

func TestWithOptions(t *testing.T) {
	path := writeOptionsFile(t, `
useGeometry: true
round: 3
`)
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}

	e := FromBytes([]byte(officeModel)).WithOptions(opts)
	if !e.options.useGeometry || e.options.round != 3 {
		t.Errorf("options not applied: %+v", e.options)
	}
}

func TestOptionsCloneIsDeep(t *testing.T) {
	opts := defaultOptions()
	opts.extraParams = []string{"A"}
	opts.rename = map[string]string{"Area": "NetArea"}

	clone := opts.clone()
	clone.extraParams[0] = "B"
	clone.rename["Area"] = "Changed"

	if opts.extraParams[0] != "A" {
		t.Error("clone shares the extraParams slice")
	}
	if opts.rename["Area"] != "NetArea" {
		t.Error("clone shares the rename map")
	}
}
