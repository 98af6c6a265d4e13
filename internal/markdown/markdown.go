// Package markdown locates and rewrites inline Markdown image references
// using text pattern matching. It does not build a document model: code
// spans and fenced blocks are treated like any other text.
package markdown
