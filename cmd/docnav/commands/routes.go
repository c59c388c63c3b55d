package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// RoutesCmd lists every page with its route and title.
type RoutesCmd struct{}

func (r *RoutesCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	logger := root.configureLogging(cfg)
	b, err := buildFromConfig(cfg, logger, metrics.NoopRecorder{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROUTE\tTITLE\tSOURCE")
	for _, p := range b.Site().Pages() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Route, p.Title, p.SourcePath)
	}
	return tw.Flush()
}
