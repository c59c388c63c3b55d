package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g, root.Config, i.Force)
}

type starterPage struct {
	path string
	page frontmatter.Page
	body string
}

// starterPages matches the sidebar and navbar of config.Example.
var starterPages = []starterPage{
	{"README.md", frontmatter.Page{Home: true}, "# Project Docs\n\nStart with the [guide](guide/).\n"},
	{"guide/README.md", frontmatter.Page{}, "# Guide\n\n## Overview\n\nWhat this project does.\n"},
	{"guide/getting-started.md", frontmatter.Page{ShortTitle: "Start"}, "# Getting Started\n\n## Install\n\n## First steps\n"},
	{"guide/advanced/configuration.md", frontmatter.Page{Icon: "gear"}, "# Configuration\n\n## Options\n"},
	{"zh/README.md", frontmatter.Page{Title: "文档"}, "# 文档\n\n## 概述\n"},
}

// RunInit writes the example config and any missing starter pages.
func RunInit(g *Global, configPath string, force bool) error {
	out := g.out()
	_, _ = fmt.Fprintln(out, "Initializing docnav project")
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}

	contentDir := filepath.Join(filepath.Dir(configPath), config.Example().Site.ContentDir)
	for _, sp := range starterPages {
		target := filepath.Join(contentDir, filepath.FromSlash(sp.path))
		if _, err := os.Stat(target); err == nil {
			continue
		}
		data, err := frontmatter.Render(sp.page, []byte(sp.body))
		if err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to render starter page").
				WithContext("path", sp.path).
				Build()
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create content directory").
				WithContext("path", filepath.Dir(target)).
				Build()
		}
		// #nosec G306 -- content pages are meant to be readable.
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write starter page").
				WithContext("path", target).
				Build()
		}
		_, _ = fmt.Fprintf(out, "Created %s\n", target)
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
