package markdown

import (
	"path"
	"regexp"
	"strings"
)

// imagePattern matches ![alt](http(s)://url "optional title").
// The URL may not contain whitespace or ')'; the title is recognised but not kept.
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\((https?://[^\s)]+)(?:\s+"([^"]*)")?\)`)

// FindImageRefs returns all non-overlapping remote image references in text order.
// Malformed syntax (missing closing parenthesis, unbalanced brackets) never matches.
func FindImageRefs(text string) []ImageRef {
	locs := imagePattern.FindAllStringSubmatchIndex(text, -1)
	refs := make([]ImageRef, 0, len(locs))
	for _, loc := range locs {
		ref := ImageRef{
			Alt:   text[loc[2]:loc[3]],
			URL:   text[loc[4]:loc[5]],
			Text:  text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		}
		if loc[6] >= 0 {
			ref.Title = text[loc[6]:loc[7]]
		}
		refs = append(refs, ref)
	}
	return refs
}

// Match reports whether rawURL points at an image according to its path extension.
func (f ImageFilter) Match(rawURL string) bool {
	ext := strings.ToLower(path.Ext(URLPath(rawURL)))
	if ext == "" {
		return f.AllowExtensionless
	}
	return f.Extensions.Has(ext)
}

// URLPath returns the path component of rawURL exactly as written: the query
// and fragment are dropped along with any scheme://host prefix. Escapes are
// neither decoded nor validated, so URLs that net/url rejects still yield a path.
func URLPath(rawURL string) string {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if i := strings.Index(p, "://"); i >= 0 && !strings.Contains(p[:i], "/") {
		p = p[i+3:]
		if j := strings.IndexByte(p, '/'); j >= 0 {
			return p[j:]
		}
		return ""
	}
	return p
}

// EscapeLinkTarget escapes parentheses, which would otherwise terminate an
// inline link destination.
func EscapeLinkTarget(target string) string {
	return strings.NewReplacer("(", `\(`, ")", `\)`).Replace(target)
}

// RewriteImage renders ![alt](target) with the target escaped. The title is dropped.
func RewriteImage(alt, target string) string {
	return "![" + alt + "](" + EscapeLinkTarget(target) + ")"
}

// ReplaceImage substitutes every literal occurrence of ref.Text in text.
func ReplaceImage(text string, ref ImageRef, target string) (string, int) {
	n := strings.Count(text, ref.Text)
	if n == 0 {
		return text, 0
	}
	return strings.ReplaceAll(text, ref.Text, RewriteImage(ref.Alt, target)), n
}
