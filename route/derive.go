package route

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofiber/utils"
)

// rootName is the file name, without extension, that declares the routes of
// its own directory.
const rootName = "root"

var dynamicSegment = regexp.MustCompile(`^_\w+$`)

// Derive maps a spec file below baseDir to the URL path its routes are served on.
//
//	Derive("/base", "/base/users/root.yaml") == "/users/"
//	Derive("/base", "/base/users/list.yaml") == "/users/list/"
//	Derive("/base", "/base/root.yaml")       == "/"
func Derive(baseDir, filePath string) string {
	p := filepath.ToSlash(filepath.Clean(filePath))

	// Files outside baseDir keep their full path.
	if rel, err := filepath.Rel(baseDir, filePath); err == nil && !outside(rel) {
		p = filepath.ToSlash(rel)
	}
	if p == "." {
		p = ""
	}

	switch {
	case strings.HasSuffix(p, ".yaml"):
		p = strings.TrimSuffix(p, ".yaml")
	case strings.HasSuffix(p, ".yml"):
		p = strings.TrimSuffix(p, ".yml")
	}

	if p == rootName || strings.HasSuffix(p, "/"+rootName) {
		p = strings.TrimSuffix(p, rootName)
	}

	p = utils.TrimRight(p, '/')
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p == "/" {
		return p
	}

	return p + "/"
}

func outside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// DynamicSegments returns the segments of path that look like placeholders,
// such as "_id" in "/users/_id/". They are served literally for now.
func DynamicSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if dynamicSegment.MatchString(s) {
			segments = append(segments, s)
		}
	}

	return segments
}
