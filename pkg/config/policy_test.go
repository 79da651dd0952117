package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writePolicyFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadPolicyParsesFields(t *testing.T) {
	path := writePolicyFile(t, "timeout_ms: 500\nmax_call_depth: 64\ndisable_while_statements: true\nallow_return_outside_function: true\n")

	opts, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.TimeoutMs != 500 {
		t.Fatalf("expected TimeoutMs 500, got %d", opts.TimeoutMs)
	}
	if opts.MaxCallDepth != 64 {
		t.Fatalf("expected MaxCallDepth 64, got %d", opts.MaxCallDepth)
	}
	if !opts.DisableWhileStatements {
		t.Fatalf("expected DisableWhileStatements true")
	}
	if !opts.AllowReturnOutsideFunction {
		t.Fatalf("expected AllowReturnOutsideFunction true")
	}
}

func TestLoadPolicyRejectsUnknownFields(t *testing.T) {
	path := writePolicyFile(t, "timeout_ms: 500\nnot_a_real_field: true\n")

	if _, err := LoadPolicy(path); err == nil {
		t.Fatalf("expected an error for an unknown field")
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
