package commands

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/imgvendor/internal/config"
	"git.home.luguber.info/inful/imgvendor/internal/fetch"
	"git.home.luguber.info/inful/imgvendor/internal/logfields"
	"git.home.luguber.info/inful/imgvendor/internal/metrics"
	"git.home.luguber.info/inful/imgvendor/internal/vendoring"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Dir string `arg:"" optional:"" default:"." help:"Directory containing the Markdown documents"`

	ImagesDir            string        `name:"images-dir" help:"Folder, relative to the document directory, that receives images" env:"IMGVENDOR_IMAGES_DIR"`
	Timeout              time.Duration `help:"Per-request timeout (e.g. 10s)" env:"IMGVENDOR_TIMEOUT"`
	UserAgent            string        `name:"user-agent" help:"User-Agent header sent with downloads" env:"IMGVENDOR_USER_AGENT"`
	HostInterval         time.Duration `name:"host-interval" help:"Minimum delay between requests to the same host" env:"IMGVENDOR_HOST_INTERVAL"`
	AllowExtensionless   bool          `name:"allow-extensionless" help:"Also vendor URLs whose path has no file extension"`
	RefreshFingerprint   bool          `name:"refresh-fingerprint" xor:"fingerprint" help:"Recompute an existing frontmatter fingerprint after rewriting"`
	NoRefreshFingerprint bool          `name:"no-refresh-fingerprint" xor:"fingerprint" help:"Leave frontmatter fingerprints untouched"`
	DryRun               bool          `short:"n" name:"dry-run" help:"Show what would be downloaded and rewritten without changing anything"`
	MetricsFile          string        `name:"metrics-file" help:"Write Prometheus text-format metrics to this file after the run" type:"path"`
}

func (r *RunCmd) overrides() config.Overrides {
	o := config.Overrides{
		ImagesDir:      r.ImagesDir,
		RequestTimeout: r.Timeout,
		UserAgent:      r.UserAgent,
		HostInterval:   r.HostInterval,
	}
	if r.AllowExtensionless {
		allow := true
		o.AllowExtensionless = &allow
	}
	switch {
	case r.RefreshFingerprint:
		refresh := true
		o.RefreshFingerprint = &refresh
	case r.NoRefreshFingerprint:
		refresh := false
		o.RefreshFingerprint = &refresh
	}
	return o
}

// Run executes the run command.
func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g, r.overrides())
	if err != nil {
		return err
	}

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		prom     *metrics.PrometheusRecorder
	)
	if r.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	fetcher := fetch.New(cfg.Timeout(),
		fetch.WithUserAgent(cfg.Network.UserAgent),
		fetch.WithHostInterval(cfg.HostInterval()),
		fetch.WithLogger(slog.Default()),
	)
	runner := vendoring.New(cfg, fetcher,
		vendoring.WithReporter(vendoring.NewTextReporter(g.stdout())),
		vendoring.WithRecorder(recorder),
		vendoring.WithLogger(slog.Default()),
		vendoring.WithDryRun(r.DryRun),
	)

	_, runErr := runner.Run(g.ctx(), r.Dir)

	if prom != nil {
		if err := prom.WriteTextfile(r.MetricsFile); err != nil {
			if runErr == nil {
				return err
			}
			slog.Warn("Failed to write metrics file", logfields.Path(r.MetricsFile), logfields.Error(err))
		}
	}
	return runErr
}
