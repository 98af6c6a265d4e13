package vendoring

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/imgvendor/internal/assets"
	"git.home.luguber.info/inful/imgvendor/internal/config"
	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
	"git.home.luguber.info/inful/imgvendor/internal/fetch"
	"git.home.luguber.info/inful/imgvendor/internal/fingerprint"
	"git.home.luguber.info/inful/imgvendor/internal/logfields"
	"git.home.luguber.info/inful/imgvendor/internal/markdown"
	"git.home.luguber.info/inful/imgvendor/internal/metrics"
	"git.home.luguber.info/inful/imgvendor/internal/util/sets"
)

var errNotDirectory = errors.New("not a directory")

// Fetcher downloads one URL. *fetch.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) fetch.Result
}

// Runner vendors images for the documents of one directory.
type Runner struct {
	cfg      *config.Config
	fetcher  Fetcher
	filter   markdown.ImageFilter
	reporter Reporter
	recorder metrics.Recorder
	logger   *slog.Logger
	dryRun   bool
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithReporter sets the progress reporter. The default discards events.
func WithReporter(r Reporter) Option {
	return func(rn *Runner) { rn.reporter = r }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(rn *Runner) { rn.recorder = r }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(rn *Runner) { rn.logger = l }
}

// WithDryRun resolves filenames without fetching or writing anything.
func WithDryRun(dryRun bool) Option {
	return func(rn *Runner) { rn.dryRun = dryRun }
}

// WithClock overrides the time source used for lastmod and durations.
func WithClock(now func() time.Time) Option {
	return func(rn *Runner) { rn.now = now }
}

// New creates a Runner for cfg downloading through f.
func New(cfg *config.Config, f Fetcher, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		fetcher: f,
		filter: markdown.ImageFilter{
			Extensions:         cfg.ExtensionSet(),
			AllowExtensionless: cfg.AllowExtensionless,
		},
		reporter: discardReporter{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// run is the state owned by a single Run call.
type run struct {
	resolver *assets.Resolver
	failed   sets.Set[string]
	summary  *Summary
	log      *slog.Logger
}

// Run processes every matching document in dir. Fetch failures are reported
// and skipped; filesystem errors and cancellation abort the run. The returned
// summary is never nil.
func (r *Runner) Run(ctx context.Context, dir string) (*Summary, error) {
	start := r.now()
	runID := uuid.NewString()
	st := &run{
		resolver: assets.NewResolver(filepath.Join(dir, r.cfg.ImagesDir)),
		failed:   sets.New[string](),
		summary:  &Summary{RunID: runID, DryRun: r.dryRun},
		log:      r.logger.With(logfields.RunID(runID)),
	}

	info, err := os.Stat(dir)
	if err != nil {
		return st.summary, vendorerrors.FileSystem("open document directory", dir, err)
	}
	if !info.IsDir() {
		return st.summary, vendorerrors.FileSystem("open document directory", dir, errNotDirectory)
	}

	if !r.dryRun {
		if err := st.resolver.EnsureDir(); err != nil {
			return st.summary, err
		}
	}

	docs, err := Discover(dir, r.cfg.Pattern)
	if err != nil {
		return st.summary, err
	}
	if len(docs) == 0 {
		st.log.Info("No documents matched", logfields.Path(dir), slog.String("pattern", r.cfg.Pattern))
		r.reporter.NoDocuments(dir)
		return st.summary, nil
	}
	st.log.Info("Starting image vendoring", logfields.Path(dir), logfields.Count(len(docs)), slog.Bool("dry_run", r.dryRun))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return st.summary, vendorerrors.Wrap(err, vendorerrors.CategoryInternal, vendorerrors.SeverityFatal, "run interrupted")
		}
		if err := r.processDocument(ctx, st, doc); err != nil {
			return st.summary, err
		}
	}

	st.summary.Duration = r.now().Sub(start)
	r.recorder.ObserveRunDuration(st.summary.Duration)
	st.log.Info("Image vendoring finished",
		logfields.Count(st.summary.Documents),
		slog.Int("downloaded", st.summary.Downloaded),
		slog.Int("failed", st.summary.Failed),
		slog.Int("rewritten", st.summary.Rewritten),
		logfields.DurationMS(float64(st.summary.Duration.Milliseconds())))
	r.reporter.Finished(st.summary)
	return st.summary, nil
}

func (r *Runner) processDocument(ctx context.Context, st *run, file string) error {
	log := st.log.With(logfields.File(file))

	info, err := os.Stat(file)
	if err != nil {
		return vendorerrors.FileSystem("stat document", file, err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return vendorerrors.FileSystem("read document", file, err)
	}

	text := string(data)
	updated := text
	rewrites := 0
	for _, ref := range markdown.FindImageRefs(text) {
		if !r.filter.Match(ref.URL) {
			log.Debug("Skipping non-image reference", logfields.URL(ref.URL))
			continue
		}
		name, ok, err := r.resolve(ctx, st, ref.URL)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		var n int
		updated, n = markdown.ReplaceImage(updated, ref, path.Join(r.cfg.ImagesDir, name))
		rewrites += n
	}

	if updated != text {
		out := []byte(updated)
		if r.cfg.RefreshFingerprint {
			out = r.refreshFingerprint(log, out)
		}
		if !r.dryRun {
			if err := os.WriteFile(file, out, info.Mode().Perm()); err != nil {
				return vendorerrors.FileSystem("write document", file, err)
			}
			st.summary.DocumentsWritten++
		}
	}

	st.summary.Documents++
	st.summary.Rewritten += rewrites
	r.recorder.IncDocuments()
	r.recorder.AddRewrites(rewrites)
	log.Debug("Document processed", logfields.Count(rewrites))
	r.reporter.Processed(filepath.Base(file))
	return nil
}

// resolve returns the local filename for rawURL, downloading it on first use.
// ok is false when the URL could not be fetched in this run.
func (r *Runner) resolve(ctx context.Context, st *run, rawURL string) (name string, ok bool, err error) {
	if cached, found := st.resolver.Lookup(rawURL); found {
		return cached, true, nil
	}
	if st.failed.Has(rawURL) {
		return "", false, nil
	}

	if r.dryRun {
		name = st.resolver.Resolve(rawURL)
		st.summary.Planned++
		r.recorder.IncDownload(metrics.ResultPlanned)
		r.reporter.Planned(rawURL, path.Join(r.cfg.ImagesDir, name))
		return name, true, nil
	}

	res := r.fetcher.Fetch(ctx, rawURL)
	if !res.OK() {
		st.failed.Add(rawURL)
		st.summary.Failed++
		r.recorder.IncDownload(metrics.ResultFailed)
		st.log.Warn("Image download failed", logfields.URL(rawURL), logfields.Status(res.StatusCode), logfields.Error(res.Err))
		r.reporter.Failed(rawURL, res.Reason())
		return "", false, nil
	}

	name, err = st.resolver.Save(rawURL, res.Body)
	if err != nil {
		return "", false, err
	}
	st.summary.Downloaded++
	st.summary.Bytes += len(res.Body)
	r.recorder.IncDownload(metrics.ResultSuccess)
	r.recorder.AddDownloadedBytes(len(res.Body))
	st.log.Info("Image downloaded", logfields.URL(rawURL), logfields.Filename(name), logfields.Bytes(len(res.Body)))
	r.reporter.Downloaded(rawURL, path.Join(r.cfg.ImagesDir, name))
	return name, true, nil
}

// refreshFingerprint keeps an existing frontmatter fingerprint in sync with
// the rewritten body. Unparseable frontmatter is left alone.
func (r *Runner) refreshFingerprint(log *slog.Logger, content []byte) []byte {
	out, changed, err := fingerprint.Refresh(content, r.now())
	if err != nil {
		log.Warn("Fingerprint refresh skipped", logfields.Error(err))
		return content
	}
	if changed {
		log.Debug("Fingerprint refreshed")
	}
	return out
}
