package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/imgvendor/internal/config"
	"git.home.luguber.info/inful/imgvendor/internal/vendoring"
)

// ScanCmd implements the 'scan' command.
type ScanCmd struct {
	Dir                string `arg:"" optional:"" default:"." help:"Directory containing the Markdown documents"`
	AllowExtensionless bool   `name:"allow-extensionless" help:"Also list URLs whose path has no file extension"`
}

// Run executes the scan command.
func (s *ScanCmd) Run(g *Global, root *CLI) error {
	var o config.Overrides
	if s.AllowExtensionless {
		allow := true
		o.AllowExtensionless = &allow
	}
	cfg, err := root.LoadConfig(g, o)
	if err != nil {
		return err
	}

	refs, err := vendoring.Scan(cfg, s.Dir)
	if err != nil {
		return err
	}

	out := g.stdout()
	if len(refs) == 0 {
		_, _ = fmt.Fprintf(out, "No remote image references found in %s.\n", s.Dir)
		return nil
	}
	for _, ref := range refs {
		_, _ = fmt.Fprintf(out, "%s\t%d\t%s\n", ref.URL, ref.Count, strings.Join(ref.Files, ","))
	}
	_, _ = fmt.Fprintf(out, "%d remote image URLs.\n", len(refs))
	return nil
}
