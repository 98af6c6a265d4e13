package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
)

func TestFetch_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("PNGDATA"))
	}))
	t.Cleanup(srv.Close)

	f := New(time.Second, WithHTTPClient(srv.Client()), WithUserAgent("imgvendor-test"))
	res := f.Fetch(context.Background(), srv.URL+"/img.png")

	require.True(t, res.OK(), res.Reason())
	assert.Equal(t, []byte("PNGDATA"), res.Body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, "imgvendor-test", gotUA)
	assert.Empty(t, res.Reason())
}

func TestFetch_NotFoundIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	res := New(time.Second, WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/missing.png")

	require.False(t, res.OK())
	assert.Nil(t, res.Body)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, http.StatusNotFound, vendorerrors.StatusCode(res.Err))
	assert.True(t, vendorerrors.IsCategory(res.Err, vendorerrors.CategoryNetwork))
	assert.Equal(t, "HTTP 404 Not Found", res.Reason())
}

func TestFetch_ServerErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	res := New(time.Second, WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/boom.png")

	require.False(t, res.OK())
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestFetch_TimeoutIsFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	res := New(50*time.Millisecond, WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/slow.png")

	require.False(t, res.OK())
	assert.Zero(t, res.StatusCode)
	assert.NotEmpty(t, res.Reason())
}

func TestFetch_ConnectionErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	deadURL := srv.URL + "/img.png"
	srv.Close()

	res := New(time.Second).Fetch(context.Background(), deadURL)

	require.False(t, res.OK())
	assert.NotEmpty(t, res.Reason())
}

func TestFetch_RejectsNonHTTPScheme(t *testing.T) {
	res := New(time.Second).Fetch(context.Background(), "ftp://x.test/a.png")

	require.False(t, res.OK())
	assert.Contains(t, res.Reason(), "unsupported scheme")
}

func TestFetch_StrayPercentIsEscaped(t *testing.T) {
	var gotPath, gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotRaw = r.URL.Path, r.URL.EscapedPath()
		_, _ = w.Write([]byte("PNG"))
	}))
	t.Cleanup(srv.Close)

	rawURL := srv.URL + "/%zz/a%20b%2.png"
	res := New(time.Second, WithHTTPClient(srv.Client())).Fetch(context.Background(), rawURL)

	require.True(t, res.OK(), res.Reason())
	assert.Equal(t, rawURL, res.URL)
	assert.Equal(t, "/%zz/a b%2.png", gotPath)
	assert.Equal(t, "/%25zz/a%20b%252.png", gotRaw)
}

func TestRequoteURL(t *testing.T) {
	cases := map[string]string{
		"https://x.test/a%20b.png": "https://x.test/a%20b.png",
		"https://x.test/%zz.png":   "https://x.test/%25zz.png",
		"https://x.test/100%":      "https://x.test/100%25",
		"https://x.test/%4":        "https://x.test/%254",
		"https://x.test/%4a%4G":    "https://x.test/%4a%254G",
	}
	for in, want := range cases {
		assert.Equal(t, want, requoteURL(in), in)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old.png", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new.png", http.StatusFound)
	})
	mux.HandleFunc("/new.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	res := New(time.Second, WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/old.png")

	require.True(t, res.OK(), res.Reason())
	assert.Equal(t, []byte("moved"), res.Body)
}

func TestFetch_HostIntervalSpacesRequests(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	f := New(time.Second, WithHTTPClient(srv.Client()), WithHostInterval(100*time.Millisecond))
	start := time.Now()
	require.True(t, f.Fetch(context.Background(), srv.URL+"/a.png").OK())
	require.True(t, f.Fetch(context.Background(), srv.URL+"/b.png").OK())

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetch_CanceledContextIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(time.Second, WithHTTPClient(srv.Client())).Fetch(ctx, srv.URL+"/a.png")
	require.False(t, res.OK())
}
