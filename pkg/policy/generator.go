package policy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Descriptor is the external security descriptor that drives policy
// generation: one entry per internal service caller the repository trusts.
type Descriptor struct {
	Services []ServiceEntry `yaml:"services"`
}

// ServiceEntry describes one internal service and the access it is granted.
type ServiceEntry struct {
	// Name identifies the service; it becomes part of the generated
	// document name.
	Name string `yaml:"name"`

	// Subjects are the login ids the service authenticates as.
	Subjects []string `yaml:"subjects"`

	// IPAddresses restricts where the service may call from.
	IPAddresses []string `yaml:"ipAddresses"`

	// RequireTLS requires the service's calls to arrive over TLS.
	RequireTLS bool `yaml:"requireTLS"`

	// Actions are the action identifiers the service is granted.
	Actions []string `yaml:"actions"`
}

// Generator runs the fixed descriptor-to-policy transform. Each run writes
// its output into a content-addressed snapshot directory under WorkDir named
// by the descriptor's hash, and prunes snapshots left over from previous
// descriptors, so stale generated documents can never leak into a load.
type Generator struct {
	// DescriptorPath locates the security descriptor.
	DescriptorPath string

	// WorkDir is the directory snapshots are written under.
	WorkDir string

	logger *slog.Logger
}

// NewGenerator creates a generator.
func NewGenerator(descriptorPath, workDir string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		DescriptorPath: descriptorPath,
		WorkDir:        workDir,
		logger:         logger.With("component", "policy.generator"),
	}
}

// Generate reads the descriptor, prunes stale snapshot directories, and
// writes one generated policy document per service into a fresh snapshot.
// It returns the snapshot directory path. Generation is idempotent: the same
// descriptor always maps to the same snapshot.
func (g *Generator) Generate() (string, error) {
	data, err := os.ReadFile(g.DescriptorPath)
	if err != nil {
		return "", &GenerateError{Descriptor: g.DescriptorPath, Message: "failed to read descriptor", Cause: err}
	}

	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return "", &GenerateError{Descriptor: g.DescriptorPath, Message: "invalid descriptor YAML", Cause: err}
	}

	seen := make(map[string]bool)
	for _, svc := range desc.Services {
		if svc.Name == "" {
			return "", &GenerateError{Descriptor: g.DescriptorPath, Message: "service entry has no name"}
		}
		if seen[svc.Name] {
			return "", &GenerateError{Descriptor: g.DescriptorPath, Message: fmt.Sprintf("duplicate service name %q", svc.Name)}
		}
		seen[svc.Name] = true
	}

	sum := sha256.Sum256(data)
	snapshot := "snap-" + hex.EncodeToString(sum[:])[:12]
	snapDir := filepath.Join(g.WorkDir, snapshot)

	if err := g.pruneSnapshots(snapshot); err != nil {
		return "", err
	}

	// Recreate the snapshot from scratch so partial output from an
	// interrupted run cannot survive.
	if err := os.RemoveAll(snapDir); err != nil {
		return "", &GenerateError{Descriptor: g.DescriptorPath, Message: "failed to clear snapshot directory", Cause: err}
	}
	if err := os.MkdirAll(snapDir, 0o755); err != nil {
		return "", &GenerateError{Descriptor: g.DescriptorPath, Message: "failed to create snapshot directory", Cause: err}
	}

	for _, svc := range desc.Services {
		doc := generateServiceDocument(svc, snapshot)
		out, err := yaml.Marshal(doc)
		if err != nil {
			return "", &GenerateError{Descriptor: g.DescriptorPath, Message: fmt.Sprintf("failed to render document for service %q", svc.Name), Cause: err}
		}
		path := filepath.Join(snapDir, "generated-"+svc.Name+".yaml")
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return "", &GenerateError{Descriptor: g.DescriptorPath, Message: fmt.Sprintf("failed to write %q", path), Cause: err}
		}
	}

	g.logger.Info("generated service policies",
		"descriptor", g.DescriptorPath,
		"snapshot", snapDir,
		"count", len(desc.Services),
	)

	return snapDir, nil
}

// pruneSnapshots removes every snapshot directory under WorkDir except keep.
func (g *Generator) pruneSnapshots(keep string) error {
	entries, err := os.ReadDir(g.WorkDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &GenerateError{Descriptor: g.DescriptorPath, Message: "failed to read work directory", Cause: err}
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "snap-") || entry.Name() == keep {
			continue
		}
		stale := filepath.Join(g.WorkDir, entry.Name())
		if err := os.RemoveAll(stale); err != nil {
			return &GenerateError{Descriptor: g.DescriptorPath, Message: fmt.Sprintf("failed to prune stale snapshot %q", stale), Cause: err}
		}
		g.logger.Debug("pruned stale snapshot", "path", stale)
	}

	return nil
}

// generatedDocument is the on-disk shape of a generated policy document.
// The rule body mirrors what the decision engine expects from operator
// documents; this is the fixed transform.
type generatedDocument struct {
	Name        string         `yaml:"name"`
	Version     string         `yaml:"version"`
	Description string         `yaml:"description"`
	Rules       []generatedRule `yaml:"rules"`
}

type generatedRule struct {
	Effect      string   `yaml:"effect"`
	Subjects    []string `yaml:"subjects,omitempty"`
	Actions     []string `yaml:"actions,omitempty"`
	IPAddresses []string `yaml:"ipAddresses,omitempty"`
	RequireTLS  bool     `yaml:"requireTLS,omitempty"`
}

func generateServiceDocument(svc ServiceEntry, snapshot string) generatedDocument {
	return generatedDocument{
		Name:        "generated:" + svc.Name,
		Version:     snapshot,
		Description: fmt.Sprintf("Access grant for internal service %q, generated from the security descriptor.", svc.Name),
		Rules: []generatedRule{{
			Effect:      "permit",
			Subjects:    svc.Subjects,
			Actions:     svc.Actions,
			IPAddresses: svc.IPAddresses,
			RequireTLS:  svc.RequireTLS,
		}},
	}
}
