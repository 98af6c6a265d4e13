// Package fetch downloads remote images over HTTP.
//
// A Fetcher never returns an error for a failed download. Timeouts,
// connection errors and non-2xx responses come back as a Result whose Err
// explains the failure, so callers can log the reason and skip the URL.
package fetch
