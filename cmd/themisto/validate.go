package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/themisto/pkg/config"
	"mercator-hq/themisto/pkg/policy"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and policy documents",
	Long: `Validate the configuration file, the repository policy documents, and the
security descriptor without starting the runtime.

Generated-policy output is written to a temporary directory and discarded.

Examples:
  # Validate the default config and its policy sources
  themisto validate

  # Validate a specific config
  themisto validate --config /etc/themisto/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	fmt.Println("✓ Configuration valid")

	loader := policy.NewLoader(nil)
	docs, err := loader.LoadDirectory(cfg.Policy.RepositoryDir)
	if err != nil {
		return fmt.Errorf("policy documents invalid: %w", err)
	}
	fmt.Printf("✓ Repository policies valid (%d documents)\n", len(docs))
	if verbose {
		for _, doc := range docs {
			fmt.Printf("  - %s (version %s, %s)\n", doc.Name, doc.Version, doc.Source)
		}
	}

	if cfg.Policy.DescriptorPath != "" {
		workDir, err := os.MkdirTemp("", "themisto-validate-")
		if err != nil {
			return fmt.Errorf("failed to create temp dir: %w", err)
		}
		defer os.RemoveAll(workDir)

		generator := policy.NewGenerator(cfg.Policy.DescriptorPath, workDir, nil)
		snapDir, err := generator.Generate()
		if err != nil {
			return fmt.Errorf("descriptor invalid: %w", err)
		}
		generated, err := loader.LoadDirectory(snapDir)
		if err != nil {
			return fmt.Errorf("generated policies invalid: %w", err)
		}
		fmt.Printf("✓ Security descriptor valid (%d generated documents)\n", len(generated))
	}

	return nil
}
