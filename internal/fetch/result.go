package fetch

import (
	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
)

// Result is the outcome of one download: the body on success, a reason otherwise.
type Result struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	Err         *vendorerrors.VendorError
}

// OK reports whether the download succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Reason returns a short human-readable failure cause, or "" on success.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	if r.Err.Cause != nil {
		return r.Err.Cause.Error()
	}
	return r.Err.Message
}

func failed(rawURL string, status int, cause error) Result {
	return Result{
		URL:        rawURL,
		StatusCode: status,
		Err:        vendorerrors.FetchFailed(rawURL, cause),
	}
}
