package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"appforge/internal/bundle"
	"appforge/internal/dist"
	"appforge/internal/logx"
	"appforge/internal/tui"
)

var (
	buildForce       bool
	buildNoProgress  bool
	buildConcurrency int
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [component...]",
		Short: "Build AppImage bundles for configured components",
		RunE:  runBuild,
	}

	cmd.Flags().BoolVar(&buildForce, "force", false, "Rebuild even if the artifact is up to date")
	cmd.Flags().BoolVar(&buildNoProgress, "no-progress", false, "Disable interactive progress output")
	cmd.Flags().IntVar(&buildConcurrency, "concurrency", 1, "Components to package concurrently")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}
	units, err := proj.units(args)
	if err != nil {
		return err
	}
	return executeUnits(cmd, proj, units, "")
}

// unitResult is the machine-readable outcome for one component.
type unitResult struct {
	Component string `json:"component"`
	Artifact  string `json:"artifact,omitempty"`
	Staged    string `json:"staged,omitempty"`
	Skipped   bool   `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// executeUnits packages the given units, staging artifacts into distDir when
// it is non-empty, and renders progress in the detected output mode.
func executeUnits(cmd *cobra.Command, proj project, units []dist.Unit, distDir string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := logx.New(verbose)
	defer func() { _ = log.Sync() }()

	out := cmd.OutOrStdout()
	mode := tui.DetectMode(out, buildNoProgress, outputJSON)

	var (
		results []unitResult
		errs    []error
	)

	work := func(reporter bundle.ProgressReporter) {
		asm := proj.assembler(reporter)
		asm.Log = log
		results, errs = runUnits(ctx, asm, units, distDir, reporter)
	}

	switch mode {
	case tui.ModeTUI:
		model := tui.NewProgressModel("Packaging components", []tui.Column{
			{Header: "COMPONENT", Width: 14},
			{Header: "STAGE", Width: 16},
			{Header: "STATUS", Width: 10},
			{Header: "ARTIFACT", Width: 40},
		})
		for _, u := range units {
			model.AddRow(u.Component.Name, []string{u.Component.Name, "", "pending", ""})
		}
		if err := tui.RunWithWork(out, model, func(send func(tea.Msg)) {
			work(tui.NewBundleReporter(send))
		}); err != nil {
			return err
		}
	case tui.ModeJSON:
		work(nil)
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
	default:
		work(&plainReporter{out: out})
	}

	return errors.Join(errs...)
}

// runUnits drives every unit through the pipeline, at most buildConcurrency
// at a time. The shared tool cache lock keeps first-time acquisition safe
// across concurrent components.
func runUnits(ctx context.Context, asm *bundle.Assembler, units []dist.Unit, distDir string, reporter bundle.ProgressReporter) ([]unitResult, []error) {
	concurrency := buildConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]unitResult, len(units))
	errsByUnit := make([]error, len(units))

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
	)

	for i, unit := range units {
		i, unit := i, unit
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			res := unit.Build(ctx, asm, buildForce)

			ur := unitResult{Component: unit.Component.Name, Artifact: res.Artifact, Skipped: res.Skipped}
			if res.Err == nil && distDir != "" {
				staged, err := unit.Stage(distDir)
				if err != nil {
					res.Err = err
				} else {
					ur.Staged = staged
				}
			}
			if res.Err != nil {
				ur.Error = res.Err.Error()
				errsByUnit[i] = res.Err
			}
			results[i] = ur

			if reporter != nil {
				reporter.Complete(res)
			}
		}()
	}
	wg.Wait()

	var errs []error
	for _, err := range errsByUnit {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errs
}

// plainReporter writes line-oriented progress for non-interactive runs.
type plainReporter struct {
	out io.Writer
	mu  sync.Mutex
}

func (r *plainReporter) Stage(c bundle.Component, stage bundle.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s: %s\n", c.Name, stage)
}

func (r *plainReporter) Complete(res bundle.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case res.Err != nil:
		fmt.Fprintf(r.out, "%s: failed: %v\n", res.Component, res.Err)
	case res.Skipped:
		fmt.Fprintf(r.out, "%s: up to date: %s\n", res.Component, res.Artifact)
	default:
		fmt.Fprintf(r.out, "%s: packaged: %s\n", res.Component, res.Artifact)
	}
}

var _ bundle.ProgressReporter = (*plainReporter)(nil)
