package markdown

import "git.home.luguber.info/inful/imgvendor/internal/util/sets"

// ImageRef is one inline image occurrence: ![Alt](URL "title").
//
// Start and End are byte offsets into the scanned text, with End exclusive.
// Text is the literal span text[Start:End] and is what gets substituted.
type ImageRef struct {
	Alt   string
	URL   string
	Title string
	Text  string
	Start int
	End   int
}

// ImageFilter decides which image URLs are worth vendoring.
type ImageFilter struct {
	// Extensions is a lower-case set such as sets.New(".png").
	Extensions sets.Set[string]
	// AllowExtensionless also accepts URLs whose path carries no extension at all
	// (trailing slash, dynamic badge endpoints).
	AllowExtensionless bool
}
