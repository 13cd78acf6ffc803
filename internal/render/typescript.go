package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/cragmap/internal/doctree"
)

const (
	importLine = `import type { SvgObject } from "./areas";`
	declLine   = `export const crags: SvgObject[] = [`
)

// WriteCrags renders shapes as the typed array literal the map app imports.
// Lines are joined with "\n" and the output has no trailing newline. Strings
// are written verbatim.
func WriteCrags(w io.Writer, shapes []doctree.Shape) error {
	lines := make([]string, 0, 3+len(shapes)*10)
	lines = append(lines, importLine, declLine)
	for _, s := range shapes {
		lines = append(lines,
			"  {",
			fmt.Sprintf(`    name: "%s",`, s.Name),
			fmt.Sprintf(`    sector: "%s",`, s.SectorName()),
			fmt.Sprintf(`    path: "%s",`, s.Path),
			`    fill: "",`,
			fmt.Sprintf("    x: %s,", Round2(s.X)),
			fmt.Sprintf("    y: %s,", Round2(s.Y)),
			fmt.Sprintf("    width: %s,", Round2(s.Width)),
			fmt.Sprintf("    height: %s,", Round2(s.Height)),
			"  },",
		)
	}
	lines = append(lines, "];")

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// WriteFile renders shapes into path, creating parent directories.
func WriteFile(path string, shapes []doctree.Shape) error {
	var buf bytes.Buffer
	if err := WriteCrags(&buf, shapes); err != nil {
		return fmt.Errorf("render crags: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Round2 rounds v to two decimals (ties to even on the exact binary value)
// and prints the shortest form with at least one fractional digit.
// A missing value renders as 0.0.
func Round2(v *float64) string {
	if v == nil {
		return "0.0"
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(*v, 'f', 2, 64), 64)
	if err != nil {
		r = *v
	}
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
