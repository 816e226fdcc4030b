package policy

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDescriptor = `
services:
  - name: search
    subjects: [svc-search]
    ipAddresses: ["10.0.0.0/8"]
    requireTLS: true
    actions: [listObjects, getObjectProfile]
  - name: oai
    subjects: [svc-oai]
    actions: [listObjects]
`

func TestGenerator_Generate(t *testing.T) {
	dir := t.TempDir()
	descPath := filepath.Join(dir, "descriptor.yaml")
	writeFile(t, descPath, testDescriptor)
	workDir := filepath.Join(dir, "work")

	gen := NewGenerator(descPath, workDir, nil)
	snapDir, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v, want nil", err)
	}

	if !strings.HasPrefix(filepath.Base(snapDir), "snap-") {
		t.Errorf("snapshot dir = %q, want snap- prefix", snapDir)
	}

	docs, err := NewLoader(nil).LoadDirectory(snapDir)
	if err != nil {
		t.Fatalf("LoadDirectory(snapshot) error = %v, want nil", err)
	}
	if len(docs) != 2 {
		t.Fatalf("generated %d documents, want 2", len(docs))
	}

	names := map[string]bool{}
	for _, doc := range docs {
		names[doc.Name] = true
	}
	if !names["generated:search"] || !names["generated:oai"] {
		t.Errorf("generated names = %v, want generated:search and generated:oai", names)
	}
}

func TestGenerator_Idempotent(t *testing.T) {
	dir := t.TempDir()
	descPath := filepath.Join(dir, "descriptor.yaml")
	writeFile(t, descPath, testDescriptor)
	workDir := filepath.Join(dir, "work")

	gen := NewGenerator(descPath, workDir, nil)
	first, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v, want nil", err)
	}
	second, err := gen.Generate()
	if err != nil {
		t.Fatalf("second Generate() error = %v, want nil", err)
	}
	if first != second {
		t.Errorf("same descriptor produced different snapshots: %q vs %q", first, second)
	}
}

func TestGenerator_PrunesStaleSnapshots(t *testing.T) {
	dir := t.TempDir()
	descPath := filepath.Join(dir, "descriptor.yaml")
	workDir := filepath.Join(dir, "work")

	writeFile(t, descPath, testDescriptor)
	gen := NewGenerator(descPath, workDir, nil)
	first, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v, want nil", err)
	}

	// A changed descriptor produces a new snapshot and removes the old one.
	writeFile(t, descPath, testDescriptor+"  - name: extra\n    actions: [export]\n")
	second, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() after change error = %v, want nil", err)
	}
	if first == second {
		t.Fatal("changed descriptor produced the same snapshot")
	}

	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("stale snapshot %q still exists, want pruned", first)
	}

	// Non-snapshot entries in the work directory survive pruning.
	keep := filepath.Join(workDir, "notes.txt")
	writeFile(t, keep, "keep me")
	if _, err := gen.Generate(); err != nil {
		t.Fatalf("Generate() error = %v, want nil", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("non-snapshot file was pruned: %v", err)
	}
}

func TestGenerator_MissingDescriptor(t *testing.T) {
	gen := NewGenerator(filepath.Join(t.TempDir(), "missing.yaml"), t.TempDir(), nil)

	_, err := gen.Generate()
	if err == nil {
		t.Fatal("Generate() error = nil, want error")
	}
	var genErr *GenerateError
	if !errors.As(err, &genErr) {
		t.Errorf("error type = %T, want *GenerateError", err)
	}
}

func TestGenerator_RejectsNamelessService(t *testing.T) {
	dir := t.TempDir()
	descPath := filepath.Join(dir, "descriptor.yaml")
	writeFile(t, descPath, "services:\n  - subjects: [anon]\n")

	gen := NewGenerator(descPath, filepath.Join(dir, "work"), nil)
	if _, err := gen.Generate(); err == nil {
		t.Error("Generate() error = nil, want error for nameless service")
	}
}

func TestGenerator_RejectsDuplicateServiceNames(t *testing.T) {
	dir := t.TempDir()
	descPath := filepath.Join(dir, "descriptor.yaml")
	writeFile(t, descPath, "services:\n  - name: dup\n  - name: dup\n")

	gen := NewGenerator(descPath, filepath.Join(dir, "work"), nil)
	if _, err := gen.Generate(); err == nil {
		t.Error("Generate() error = nil, want error for duplicate service names")
	}
}
