package assets

import (
	"crypto/md5" //nolint:gosec // naming only, not a security boundary
	"encoding/hex"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/imgvendor/internal/markdown"
	"git.home.luguber.info/inful/imgvendor/internal/util/sets"
)

const defaultExtension = ".png"

// hashPrefixes are the successive disambiguation lengths tried on collision.
var hashPrefixes = []int{8, 16, 24, 32}

// Resolver assigns collision-free filenames to URLs for one run.
type Resolver struct {
	dir     string
	names   map[string]string // url -> filename
	claimed sets.Set[string]  // filenames handed out this run
}

// NewResolver creates a resolver for the images directory dir.
// dir does not need to exist; a missing directory simply has no collisions.
func NewResolver(dir string) *Resolver {
	return &Resolver{
		dir:     dir,
		names:   make(map[string]string),
		claimed: sets.New[string](),
	}
}

// Dir returns the images directory the resolver checks for collisions.
func (r *Resolver) Dir() string { return r.dir }

// Lookup returns the filename previously resolved for rawURL.
func (r *Resolver) Lookup(rawURL string) (string, bool) {
	name, ok := r.names[rawURL]
	return name, ok
}

// Resolve returns the filename for rawURL, choosing and claiming one on first use.
func (r *Resolver) Resolve(rawURL string) string {
	if name, ok := r.names[rawURL]; ok {
		return name
	}

	sum := URLHash(rawURL)
	name := BaseName(rawURL)
	if name == "" {
		name = "image_" + sum + defaultExtension
	}

	if r.taken(name) {
		name = r.disambiguate(name, sum)
	}

	r.claimed.Add(name)
	r.names[rawURL] = name
	return name
}

func (r *Resolver) disambiguate(name, sum string) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for _, n := range hashPrefixes {
		candidate := stem + "_" + sum[:n] + ext
		if !r.taken(candidate) {
			return candidate
		}
	}

	base := stem + "_" + sum
	for i := 2; ; i++ {
		candidate := base + "_" + strconv.Itoa(i) + ext
		if !r.taken(candidate) {
			return candidate
		}
	}
}

func (r *Resolver) taken(name string) bool {
	if r.claimed.Has(name) {
		return true
	}
	_, err := os.Lstat(filepath.Join(r.dir, name))
	return err == nil
}

// URLHash returns the hex md5 digest of the full URL string.
func URLHash(rawURL string) string {
	sum := md5.Sum([]byte(rawURL)) //nolint:gosec // naming only
	return hex.EncodeToString(sum[:])
}

// BaseName derives a filename from the last path segment of rawURL, after
// dropping the query string and fragment. It returns "" when the URL has no
// usable segment. The segment is kept as written: escapes are not decoded
// and non-ASCII characters are not encoded.
func BaseName(rawURL string) string {
	p := markdown.URLPath(rawURL)
	name := p[strings.LastIndex(p, "/")+1:]
	if name == "." || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, name)
}
