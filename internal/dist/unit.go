package dist

import (
	"context"
	"os"

	"appforge/internal/bundle"
)

const (
	ReasonForced          = "forced"
	ReasonArtifactMissing = "artifact missing"
	ReasonDependencyNewer = "executable newer than artifact"
	ReasonUpToDate        = "up to date"
)

// Unit is one buildable packaging unit, keyed by its artifact path. Its
// declared dependency is the component's built executable; the unit is up to
// date only when the artifact exists and is newer than that executable.
type Unit struct {
	Component  bundle.Component
	Artifact   string
	Dependency string
}

// Freshness reports whether the unit needs rebuilding and why.
func (u Unit) Freshness(force bool) (upToDate bool, reason string) {
	if force {
		return false, ReasonForced
	}
	artInfo, err := os.Stat(u.Artifact)
	if err != nil {
		return false, ReasonArtifactMissing
	}
	depInfo, err := os.Stat(u.Dependency)
	if err != nil {
		// No executable to compare against; rebuild unconditionally.
		return false, ReasonDependencyNewer
	}
	if !artInfo.ModTime().After(depInfo.ModTime()) {
		return false, ReasonDependencyNewer
	}
	return true, ReasonUpToDate
}

// Build runs the full assembly state machine unless the unit is already up to
// date. The returned result carries the artifact path or the failure.
func (u Unit) Build(ctx context.Context, asm *bundle.Assembler, force bool) bundle.Result {
	res := bundle.Result{Component: u.Component.Name}

	if upToDate, _ := u.Freshness(force); upToDate {
		res.Artifact = u.Artifact
		res.Skipped = true
		return res
	}

	artifact, err := asm.Assemble(ctx, u.Component)
	if err != nil {
		res.Err = err
		return res
	}
	res.Artifact = artifact
	return res
}
