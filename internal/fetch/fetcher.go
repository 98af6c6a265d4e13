package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
	"git.home.luguber.info/inful/imgvendor/internal/logfields"
)

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Fetcher performs sequential, time-bounded GET requests.
type Fetcher struct {
	httpClient   *http.Client
	userAgent    string
	hostInterval time.Duration
	rateLimiters map[string]*rate.Limiter // per host, only when hostInterval > 0
	logger       *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the underlying client. Its Timeout is overwritten
// by New's timeout argument.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithHostInterval enforces a minimum delay between requests to the same host.
func WithHostInterval(d time.Duration) Option {
	return func(f *Fetcher) { f.hostInterval = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// New creates a Fetcher whose requests are bounded by timeout.
func New(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Fetcher{
		rateLimiters: make(map[string]*rate.Limiter),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		// Clone the default transport so HTTP_PROXY and friends are honoured.
		f.httpClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	f.httpClient.Timeout = timeout
	return f
}

// Fetch downloads rawURL. It never returns an error; see Result.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Result {
	start := time.Now()

	target := rawURL
	parsed, err := url.Parse(target)
	if err != nil {
		target = requoteURL(rawURL)
		parsed, err = url.Parse(target)
	}
	if err != nil {
		return failed(rawURL, 0, fmt.Errorf("invalid URL: %w", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return failed(rawURL, 0, fmt.Errorf("unsupported scheme %q", parsed.Scheme))
	}

	if limiter := f.limiterFor(parsed.Hostname()); limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return failed(rawURL, 0, fmt.Errorf("rate limiter wait: %w", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return failed(rawURL, 0, fmt.Errorf("failed to create request: %w", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return failed(rawURL, 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return failed(rawURL, resp.StatusCode, &vendorerrors.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        rawURL,
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed(rawURL, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	f.logger.Debug("Fetched image",
		logfields.URL(rawURL),
		logfields.Status(resp.StatusCode),
		logfields.Bytes(len(body)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	return Result{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
}

// limiterFor returns the host's limiter, creating it on first use.
// Nil when no host interval is configured.
func (f *Fetcher) limiterFor(host string) *rate.Limiter {
	if f.hostInterval <= 0 {
		return nil
	}
	if limiter, ok := f.rateLimiters[host]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rate.Every(f.hostInterval), 1)
	f.rateLimiters[host] = limiter
	return limiter
}

// requoteURL escapes every '%' that does not start a two-digit hex escape,
// leaving valid escapes untouched.
func requoteURL(rawURL string) string {
	var b strings.Builder
	b.Grow(len(rawURL))
	for i := 0; i < len(rawURL); i++ {
		c := rawURL[i]
		if c == '%' && (i+2 >= len(rawURL) || !isHex(rawURL[i+1]) || !isHex(rawURL[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
