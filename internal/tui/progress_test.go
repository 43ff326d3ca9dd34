package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"appforge/internal/bundle"
)

func testModel() ProgressModel {
	m := NewProgressModel("Packaging components", []Column{
		{Header: "COMPONENT", Width: 12},
		{Header: "STAGE", Width: 16},
		{Header: "STATUS", Width: 10},
		{Header: "ARTIFACT", Width: 30},
	})
	m.AddRow("viewer", []string{"viewer", "", "pending", ""})
	return m
}

func TestRowUpdate(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "viewer",
		Fields: map[string]string{"STAGE": "Deployed", "STATUS": "deploying"},
	})
	m = updated.(ProgressModel)

	view := m.View()
	if !strings.Contains(view, "Deployed") {
		t.Errorf("view missing stage update:\n%s", view)
	}
	if !strings.Contains(view, "deploying") {
		t.Errorf("view missing status update:\n%s", view)
	}
}

func TestUnknownRowIgnored(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(RowUpdateMsg{Key: "ghost", Fields: map[string]string{"STATUS": "failed"}})
	m = updated.(ProgressModel)
	if strings.Contains(m.View(), "failed") {
		t.Error("update for unknown key applied")
	}
}

func TestWorkDoneQuits(t *testing.T) {
	m := testModel()
	updated, cmd := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)
	if !m.Done() {
		t.Error("model not done after WorkDoneMsg")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestErrorMsgSurfacesError(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(ErrorMsg{Err: errors.New("boom")})
	m = updated.(ProgressModel)
	if m.Err() == nil {
		t.Fatal("expected error recorded")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Errorf("view missing error:\n%s", m.View())
	}
}

func TestProgressCounts(t *testing.T) {
	m := testModel()
	m.AddRow("panel", []string{"panel", "", "pending", ""})

	updated, _ := m.Update(RowUpdateMsg{Key: "viewer", Fields: map[string]string{"STATUS": "packaged"}})
	m = updated.(ProgressModel)

	processed, total := m.progressCounts()
	if processed != 1 || total != 2 {
		t.Errorf("counts: got %d/%d, want 1/2", processed, total)
	}
}

func TestBundleReporterMapsStages(t *testing.T) {
	var msgs []tea.Msg
	r := NewBundleReporter(func(msg tea.Msg) { msgs = append(msgs, msg) })

	c := bundle.Component{Name: "viewer"}
	r.Stage(c, bundle.StageInstalled)
	r.Complete(bundle.Result{Component: "viewer", Artifact: "/out/My_Viewer-x86_64.AppImage"})

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	first := msgs[0].(RowUpdateMsg)
	if first.Fields["STATUS"] != "installing" {
		t.Errorf("stage status: got %q, want installing", first.Fields["STATUS"])
	}
	second := msgs[1].(RowUpdateMsg)
	if second.Fields["STATUS"] != "packaged" {
		t.Errorf("complete status: got %q, want packaged", second.Fields["STATUS"])
	}
	if second.Fields["ARTIFACT"] == "" {
		t.Error("artifact missing from completion update")
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	if got := TruncateWithEllipsis("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateWithEllipsis("a long artifact name", 10); got != "a long ..." {
		t.Errorf("got %q", got)
	}
	if got := TruncateWithEllipsis("abc", 2); got != "ab" {
		t.Errorf("got %q", got)
	}
}
