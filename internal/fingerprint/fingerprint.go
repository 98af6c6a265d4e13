// Package fingerprint keeps the mdfp content fingerprint of a Markdown
// document current after its body has been rewritten.
package fingerprint

import (
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/imgvendor/internal/frontmatter"
)

const lastmodField = "lastmod"

// excluded fields do not participate in the hash.
var excluded = map[string]struct{}{
	mdfp.FingerprintField: {},
	lastmodField:          {},
	"uid":                 {},
	"aliases":             {},
}

// Compute returns the canonical fingerprint for frontmatter fields and body.
func Compute(fields map[string]any, body []byte) (string, error) {
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, skip := excluded[k]; skip {
			continue
		}
		hashed[k] = v
	}

	fm := ""
	if len(hashed) > 0 {
		raw, err := frontmatter.SerializeYAML(hashed, "\n")
		if err != nil {
			return "", err
		}
		fm = trimSingleTrailingNewline(string(raw))
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}

// Refresh recomputes the fingerprint of content when its frontmatter already
// carries one. When the value changes, lastmod is set to now (UTC date) and
// the updated document is returned with changed set. Only those two lines
// of the frontmatter are edited. Documents without a fingerprint field are
// returned untouched.
func Refresh(content []byte, now time.Time) ([]byte, bool, error) {
	doc, err := frontmatter.Split(content)
	if err != nil {
		return nil, false, err
	}
	if !doc.Has {
		return content, false, nil
	}

	fields, err := doc.Fields()
	if err != nil {
		return nil, false, err
	}
	old, ok := fields[mdfp.FingerprintField].(string)
	if !ok {
		return content, false, nil
	}

	fp, err := Compute(fields, doc.Body)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(old) == fp {
		return content, false, nil
	}

	if err := doc.SetScalar(mdfp.FingerprintField, fp); err != nil {
		return nil, false, err
	}
	if err := doc.SetScalar(lastmodField, now.UTC().Format("2006-01-02")); err != nil {
		return nil, false, err
	}
	return doc.Bytes(), true, nil
}

func trimSingleTrailingNewline(s string) string {
	if before, ok := strings.CutSuffix(s, "\r\n"); ok {
		return before
	}
	if before, ok := strings.CutSuffix(s, "\n"); ok {
		return before
	}
	return s
}
