package vendoring

import (
	"fmt"
	"io"
)

// Reporter receives progress events for console output.
type Reporter interface {
	Downloaded(url, localPath string)
	Failed(url, reason string)
	Planned(url, localPath string)
	Processed(name string)
	NoDocuments(dir string)
	Finished(s *Summary)
}

// TextReporter prints one plain line per event.
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a reporter writing to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func (r *TextReporter) Downloaded(url, localPath string) {
	fmt.Fprintf(r.w, "Downloaded: %s -> %s\n", url, localPath)
}

func (r *TextReporter) Failed(url, reason string) {
	fmt.Fprintf(r.w, "Failed to download %s: %s\n", url, reason)
}

func (r *TextReporter) Planned(url, localPath string) {
	fmt.Fprintf(r.w, "Would download: %s -> %s\n", url, localPath)
}

func (r *TextReporter) Processed(name string) {
	fmt.Fprintf(r.w, "Processed file: %s\n", name)
}

func (r *TextReporter) NoDocuments(dir string) {
	fmt.Fprintf(r.w, "No Markdown files found in %s.\n", dir)
}

func (r *TextReporter) Finished(s *Summary) {
	fmt.Fprintln(r.w, s.String())
	fmt.Fprintln(r.w, "All files processed.")
}

type discardReporter struct{}

func (discardReporter) Downloaded(string, string) {}
func (discardReporter) Failed(string, string)     {}
func (discardReporter) Planned(string, string)    {}
func (discardReporter) Processed(string)          {}
func (discardReporter) NoDocuments(string)        {}
func (discardReporter) Finished(*Summary)         {}
