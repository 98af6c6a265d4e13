package vendoring

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/imgvendor/internal/config"
	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
	"git.home.luguber.info/inful/imgvendor/internal/markdown"
)

// Reference is one remote image URL and the documents that embed it.
type Reference struct {
	URL   string
	Alt   string // alt text of the first occurrence
	Files []string
	Count int // occurrences across all documents
}

// Scan lists the image references in dir that a run would vendor, grouped
// by URL in first-seen order. It performs no network access and no writes.
func Scan(cfg *config.Config, dir string) ([]Reference, error) {
	docs, err := Discover(dir, cfg.Pattern)
	if err != nil {
		return nil, err
	}
	filter := markdown.ImageFilter{
		Extensions:         cfg.ExtensionSet(),
		AllowExtensionless: cfg.AllowExtensionless,
	}

	var refs []Reference
	index := make(map[string]int)
	for _, doc := range docs {
		data, err := os.ReadFile(doc)
		if err != nil {
			return nil, vendorerrors.FileSystem("read document", doc, err)
		}
		name := filepath.Base(doc)
		for _, ref := range markdown.FindImageRefs(string(data)) {
			if !filter.Match(ref.URL) {
				continue
			}
			i, seen := index[ref.URL]
			if !seen {
				i = len(refs)
				index[ref.URL] = i
				refs = append(refs, Reference{URL: ref.URL, Alt: ref.Alt})
			}
			refs[i].Count++
			if n := len(refs[i].Files); n == 0 || refs[i].Files[n-1] != name {
				refs[i].Files = append(refs[i].Files, name)
			}
		}
	}
	return refs, nil
}
