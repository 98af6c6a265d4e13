// Package vendoring runs the image vendoring pipeline over a directory of
// Markdown documents.
//
// Documents are processed one at a time in name order. Each remote image
// reference that passes the extension filter is downloaded at most once per
// run into the images directory, and every occurrence of the reference is
// rewritten to point at the local copy. Failed downloads leave the reference
// untouched; filesystem errors abort the run.
package vendoring
