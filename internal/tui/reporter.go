package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"appforge/internal/bundle"
)

// stageStatus maps pipeline stages to the STATUS vocabulary of the table.
var stageStatus = map[bundle.Stage]string{
	bundle.StageClean:           "cleaning",
	bundle.StageInstalled:       "installing",
	bundle.StageMetadataWritten: "metadata",
	bundle.StageToolsReady:      "tools",
	bundle.StageDeployed:        "deploying",
	bundle.StageDone:            "packaged",
}

// BundleReporter adapts bubbletea message sending to the
// bundle.ProgressReporter interface, one row per component.
type BundleReporter struct {
	send func(tea.Msg)
}

// NewBundleReporter constructs a reporter that forwards pipeline progress to
// the given send function.
func NewBundleReporter(send func(tea.Msg)) *BundleReporter {
	return &BundleReporter{send: send}
}

// Stage implements bundle.ProgressReporter.
func (r *BundleReporter) Stage(c bundle.Component, stage bundle.Stage) {
	r.send(RowUpdateMsg{
		Key: c.Name,
		Fields: map[string]string{
			"STAGE":  string(stage),
			"STATUS": stageStatus[stage],
		},
	})
}

// Complete implements bundle.ProgressReporter.
func (r *BundleReporter) Complete(res bundle.Result) {
	status := "packaged"
	artifact := res.Artifact
	switch {
	case res.Err != nil:
		status = "failed"
		artifact = res.Err.Error()
	case res.Skipped:
		status = "up to date"
	}
	r.send(RowUpdateMsg{
		Key: res.Component,
		Fields: map[string]string{
			"STATUS":   status,
			"ARTIFACT": artifact,
		},
	})
}

var _ bundle.ProgressReporter = (*BundleReporter)(nil)
