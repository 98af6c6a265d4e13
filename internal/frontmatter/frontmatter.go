// Package frontmatter splits YAML frontmatter from a Markdown document and
// reassembles it after edits.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrNotMapping indicates the frontmatter is not a YAML mapping.
var ErrNotMapping = errors.New("yaml frontmatter is not a mapping")

// ErrNotScalar indicates a key whose value cannot be replaced on its own line.
var ErrNotScalar = errors.New("frontmatter value is not a single-line scalar")

// Document is a Markdown file split at its frontmatter delimiters.
type Document struct {
	// Raw is the YAML between the delimiters, without them.
	Raw []byte
	// Body is everything after the closing delimiter line.
	Body []byte
	// Has is false when the document does not start with "---".
	Has bool
	// Newline is the document's line ending, "\n" or "\r\n".
	Newline string
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
// Without a leading delimiter, Has is false and Body is the full input.
func Split(content []byte) (*Document, error) {
	nl := detectNewline(content)
	doc := &Document{Body: content, Newline: nl}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return doc, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		doc.Raw, doc.Body, doc.Has = []byte{}, rest[len(open):], true
		return doc, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, ErrMissingClosingDelimiter
	}

	doc.Raw = rest[:idx+len(nl)]
	doc.Body = rest[idx+len(closeSeq):]
	doc.Has = true
	return doc, nil
}

// Bytes reassembles the document. Without frontmatter it returns Body as-is.
func (d *Document) Bytes() []byte {
	if !d.Has {
		return d.Body
	}
	delim := "---" + d.newline()
	out := make([]byte, 0, 2*len(delim)+len(d.Raw)+len(d.Body))
	out = append(out, delim...)
	out = append(out, d.Raw...)
	out = append(out, delim...)
	out = append(out, d.Body...)
	return out
}

// Fields parses the raw frontmatter into a map. Empty frontmatter yields an empty map.
func (d *Document) Fields() (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(d.Raw)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(d.Raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// SetScalar sets a top-level key to a string value by editing the raw
// frontmatter text. An existing single-line scalar is replaced in place,
// keeping any trailing comment; a missing key is appended. Every other byte
// of the frontmatter is left as it was.
func (d *Document) SetScalar(key, value string) error {
	encoded, err := encodeScalar(value)
	if err != nil {
		return err
	}

	var root yaml.Node
	if len(bytes.TrimSpace(d.Raw)) > 0 {
		if err := yaml.Unmarshal(d.Raw, &root); err != nil {
			return err
		}
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		mapping = root.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return ErrNotMapping
	}
	if mapping.Style&yaml.FlowStyle != 0 && len(mapping.Content) > 0 {
		return fmt.Errorf("%w: %s", ErrNotScalar, key)
	}

	nl := d.newline()
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k, v := mapping.Content[i], mapping.Content[i+1]
		if k.Value != key {
			continue
		}
		if v.Kind != yaml.ScalarNode || v.Line != k.Line || strings.Contains(v.Value, "\n") {
			return fmt.Errorf("%w: %s", ErrNotScalar, key)
		}
		lines := strings.Split(string(d.Raw), "\n")
		idx := v.Line - 1
		if idx < 0 || idx >= len(lines) {
			return fmt.Errorf("%w: %s", ErrNotScalar, key)
		}
		line := lines[idx]
		cr := strings.HasSuffix(line, "\r")
		prefix := []rune(strings.TrimSuffix(line, "\r"))
		if v.Column-1 > len(prefix) {
			return fmt.Errorf("%w: %s", ErrNotScalar, key)
		}
		replaced := string(prefix[:v.Column-1]) + encoded
		comment := v.LineComment
		if comment == "" {
			comment = k.LineComment
		}
		if comment != "" {
			replaced += " " + comment
		}
		if cr {
			replaced += "\r"
		}
		lines[idx] = replaced
		d.Raw = []byte(strings.Join(lines, "\n"))
		d.Has = true
		return nil
	}

	// Raw may share its backing array with Body.
	raw := append([]byte(nil), d.Raw...)
	if len(raw) > 0 && !bytes.HasSuffix(raw, []byte("\n")) {
		raw = append(raw, nl...)
	}
	d.Raw = append(append(raw, key+": "+encoded...), nl...)
	d.Has = true
	return nil
}

// encodeScalar renders value as a YAML string scalar, quoting when the
// plain form would read back as another type.
func encodeScalar(value string) (string, error) {
	out, err := yaml.Marshal(value)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// SerializeYAML encodes fields with sorted keys and two-space indentation,
// using nl as line ending. An empty map serializes to an empty slice.
func SerializeYAML(fields map[string]any, nl string) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fields); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if nl != "" && nl != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(nl))
	}
	return out, nil
}

func (d *Document) newline() string {
	if d.Newline == "" {
		return "\n"
	}
	return d.Newline
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
