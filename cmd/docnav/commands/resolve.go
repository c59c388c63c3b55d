package commands

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// ResolveCmd prints the navigation of a single page.
type ResolveCmd struct {
	Route  string `arg:"" help:"Page route or source path, e.g. /guide/ or guide/intro.md"`
	Format string `short:"f" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	logger := root.configureLogging(cfg)
	b, err := buildFromConfig(cfg, logger, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	nav, err := b.Build(r.Route)
	if err != nil {
		return err
	}

	out := g.out()
	switch r.Format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(nav); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode navigation").Build()
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nav); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode navigation").Build()
		}
		return nil
	}
}
