// Package mediapath computes the object keys uploaded media are stored under.
package mediapath

import (
	"path"
	"strings"

	"github.com/Furiouss38/podv2/pkg/slugify"
)

// Video returns <videosDir>/<ownerHash>/<name>, where name is the uploaded
// filename with its final path segment slugified.
func Video(videosDir, ownerHash, filename string) string {
	return path.Join(videosDir, ownerHash, slugName(filename))
}

// File returns <filesDir>/<name> for generic uploads (headbands, icons,
// thumbnails) using the same naming rule as Video.
func File(filesDir, filename string) string {
	return path.Join(filesDir, slugName(filename))
}

// slugName splits filename at its last dot. Only the last segment of the
// base name is slugified; any directory part is kept, confined under the root.
// A name without a dot yields an empty base and the whole name as extension.
func slugName(filename string) string {
	base, ext := filename, ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		base, ext = filename[:i], filename[i+1:]
	} else {
		base, ext = "", filename
	}

	if !strings.Contains(base, "/") {
		return slugify.Make(base) + "." + ext
	}

	dir, name := path.Split(base)
	dir = strings.TrimPrefix(path.Clean("/"+dir), "/")
	return path.Join(dir, slugify.Make(name)+"."+ext)
}

// WithSuffix inserts "_<suffix>" before the extension of the last path
// segment of key, or appends it when that segment has no extension.
func WithSuffix(key, suffix string) string {
	dir, name := path.Split(key)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return dir + name[:i] + "_" + suffix + name[i:]
	}
	return dir + name + "_" + suffix
}
