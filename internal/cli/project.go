package cli

import (
	"appforge/internal/bundle"
	"appforge/internal/config"
	"appforge/internal/dist"
	"appforge/internal/paths"
	"appforge/internal/tools"
)

// project bundles everything a command needs to operate on one project.
type project struct {
	Paths  paths.ProjectPaths
	Config config.Config
	Cache  *tools.Cache
}

func loadProject() (project, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return project{}, err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return project{}, err
	}
	if err := cfg.Validate(); err != nil {
		return project{}, err
	}
	pp = cfg.ApplyTo(pp)

	cache, err := tools.Open()
	if err != nil {
		return project{}, err
	}

	return project{Paths: pp, Config: cfg, Cache: cache}, nil
}

// units resolves the requested component names (all configured components
// when empty) into packaging units.
func (p project) units(names []string) ([]dist.Unit, error) {
	var selected []config.ComponentConfig
	if len(names) == 0 {
		if len(p.Config.Components) == 0 {
			return nil, &bundle.ConfigurationError{Reason: "no components configured in " + p.Paths.ConfigFile}
		}
		selected = p.Config.Components
	} else {
		for _, name := range names {
			cc, err := p.Config.Lookup(name)
			if err != nil {
				return nil, err
			}
			selected = append(selected, cc)
		}
	}

	units := make([]dist.Unit, 0, len(selected))
	for _, cc := range selected {
		c, err := cc.Component()
		if err != nil {
			return nil, err
		}
		units = append(units, dist.Unit{
			Component:  c,
			Artifact:   p.Paths.Artifact(c.ArtifactName()),
			Dependency: cc.Dependency(p.Paths),
		})
	}
	return units, nil
}

func (p project) assembler(reporter bundle.ProgressReporter) *bundle.Assembler {
	return &bundle.Assembler{
		Paths:    p.Paths,
		Cache:    p.Cache,
		Runner:   bundle.CmdRunner{},
		Tools:    p.Config.ToolSet(),
		Install:  p.Config.InstallCommand(),
		Reporter: reporter,
	}
}
