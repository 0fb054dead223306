package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sln2cmake/sln2cmake-go/internal/emit"
	"github.com/sln2cmake/sln2cmake-go/internal/generate"
	"github.com/sln2cmake/sln2cmake-go/internal/models"
	"github.com/sln2cmake/sln2cmake-go/internal/output"
	"github.com/sln2cmake/sln2cmake-go/internal/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var convertCmd = &cobra.Command{
	Use:   "convert <solution.sln> [solution.sln...]",
	Short: "Convert one or more solutions to CMakeLists.txt files",
	Long: `Parses each solution and its native projects, orders the projects by
their dependency graph, reconciles per-configuration build settings, and
writes a root CMakeLists.txt next to the solution plus one per project.

Solutions are independent and are converted concurrently. Conversion is
best-effort: structural problems (dependency cycles, dangling project
references) abort that solution, everything else completes with warnings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Bool("quiet", false, "one-line summary per solution")
	convertCmd.Flags().Bool("dry-run", false, "report what would be written without writing")
	convertCmd.Flags().String("output", "", "write generated files under this directory instead of next to the sources")
}

func runConvert(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	outDir, _ := cmd.Flags().GetString("output")

	if outDir == "" {
		outDir = cfg.Output.Directory
	}
	if !dryRun {
		dryRun = cfg.Output.DryRun
	}

	// Solutions share no state, so each converts on its own goroutine.
	g := new(errgroup.Group)
	results := make([]*output.Result, len(args))
	for i, slnPath := range args {
		i, slnPath := i, slnPath
		g.Go(func() error {
			result, err := convertSolution(slnPath, outDir, dryRun)
			if err != nil {
				return fmt.Errorf("%s: %w", slnPath, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	formatter := output.NewFormatter(resolveVerbosity(quiet))
	for _, result := range results {
		if err := formatter.Format(result, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func resolveVerbosity(quiet bool) output.VerbosityLevel {
	if quiet {
		return output.VerbosityQuiet
	}
	switch cfg.Report.Verbosity {
	case "quiet":
		return output.VerbosityQuiet
	case "standard":
		return output.VerbosityStandard
	default:
		return output.GetDefaultVerbosity()
	}
}

func convertSolution(slnPath, outDir string, dryRun bool) (*output.Result, error) {
	start := time.Now()

	sol, projects, err := parser.LoadSolution(slnPath)
	if err != nil {
		return nil, err
	}
	logger.WithField("solution", sol.Name).Debugf("parsed %d projects", len(projects))

	script, diags, err := generate.Generate(sol, projects)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(slnPath)
	if outDir != "" {
		base = outDir
	}

	renderer := emit.NewRenderer()
	if cfg.CMake.MinimumVersion != "" {
		renderer.MinimumVersion = cfg.CMake.MinimumVersion
	}
	if cfg.CMake.DefaultStandard != 0 {
		renderer.DefaultStandard = cfg.CMake.DefaultStandard
	}

	targets := 0
	for _, unit := range script.Units {
		if !unit.Skip {
			targets++
		}
	}

	if !dryRun {
		if err := writeScript(script, renderer, base); err != nil {
			return nil, err
		}
	}

	return &output.Result{
		Solution:    sol.Name,
		OutputDir:   base,
		Targets:     targets,
		Skipped:     len(script.Units) - targets,
		Diagnostics: diags,
		Duration:    time.Since(start),
		DryRun:      dryRun,
	}, nil
}

func writeScript(script *models.Script, renderer *emit.Renderer, base string) error {
	if err := writeFile(filepath.Join(base, "CMakeLists.txt"), renderer.RootFile(script)); err != nil {
		return err
	}

	for i := range script.Units {
		unit := &script.Units[i]
		if unit.Skip {
			continue
		}
		if unit.Dir == "" || unit.Dir == "." {
			logger.WithField("project", unit.Name).
				Warn("project sits in the solution root; its CMakeLists.txt is not written")
			continue
		}
		dir := filepath.Join(base, filepath.FromSlash(unit.Dir))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := writeFile(filepath.Join(dir, "CMakeLists.txt"), renderer.ProjectFile(unit)); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.WithField("file", path).Debug("wrote build script")
	return nil
}
