package extract

import "strings"

const pathMarker = `d="`

// PathData returns the value of the first d="..." attribute in svg, or "" when
// there is none. This is a plain substring search; the SVG is never parsed and
// any later paths are ignored.
func PathData(svg string) string {
	start := strings.Index(svg, pathMarker)
	if start == -1 {
		return ""
	}
	rest := svg[start+len(pathMarker):]
	if end := strings.IndexByte(rest, '"'); end != -1 {
		return rest[:end]
	}
	return rest
}
