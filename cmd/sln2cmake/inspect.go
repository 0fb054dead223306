package main

import (
	"fmt"
	"os"

	"github.com/sln2cmake/sln2cmake-go/internal/generate"
	"github.com/sln2cmake/sln2cmake-go/internal/models"
	"github.com/sln2cmake/sln2cmake-go/internal/parser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <solution.sln>",
	Short: "Dump the extracted project model without writing anything",
	Long: `Parses the solution, runs the full conversion pipeline, and prints the
resulting emission model as YAML: build order, global configuration list,
reconciled per-configuration properties, and all diagnostics. Useful for
reviewing what convert would emit.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

type inspectDump struct {
	Solution    *models.Solution    `yaml:"solution"`
	Script      *models.Script      `yaml:"script"`
	Diagnostics []models.Diagnostic `yaml:"diagnostics,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	sol, projects, err := parser.LoadSolution(args[0])
	if err != nil {
		return err
	}

	script, diags, err := generate.Generate(sol, projects)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(inspectDump{
		Solution:    sol,
		Script:      script,
		Diagnostics: diags,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	_, err = os.Stdout.Write(data)
	return err
}
