// Package assets maps remote image URLs onto filenames inside the run's
// flat images directory.
//
// A Resolver is scoped to one run. The first call to Resolve for a URL picks
// a name that is free both on disk and among names already handed out in
// this run; every later call for the same URL returns that name unchanged.
//
// Naming rules:
//
//  1. The last path segment of the URL (query and fragment removed) is used
//     as-is, keeping its extension.
//  2. Without a usable segment the name is image_<md5>.png.
//  3. A taken name gets _<hash> inserted before the extension, using 8, 16,
//     24 and finally all 32 hex digits of the URL's md5.
//  4. If even the 32-digit form is taken, _2, _3, ... is appended to it.
package assets
