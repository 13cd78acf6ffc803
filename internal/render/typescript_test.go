package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/cragmap/internal/doctree"
)

func f(v float64) *float64 { return &v }

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10.2345, "10.23"},
		{3, "3.0"},
		{1.005, "1.0"},   // stored just below 1.005
		{2.675, "2.67"},  // stored just below 2.675
		{0.125, "0.12"},  // exact tie, rounds to even
		{0.375, "0.38"},  // exact tie, rounds to even
		{10.239, "10.24"},
		{-4.5, "-4.5"},
		{-0.001, "-0.0"},
		{1234.5, "1234.5"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(f(tt.in)), "Round2(%v)", tt.in)
	}
}

func TestRound2_Nil(t *testing.T) {
	assert.Equal(t, "0.0", Round2(nil))
}

func TestWriteCrags_Format(t *testing.T) {
	sector := "SectorX"
	shapes := []doctree.Shape{
		{Name: "V1", Sector: &sector, X: f(1.005), Y: f(2), Width: f(3), Height: f(4), NodeID: "1:1", Path: "M0 0"},
		{Name: "V2", X: f(10.2345), Y: f(0.5), Width: f(1), Height: f(1), NodeID: "1:2"},
	}

	var sb strings.Builder
	require.NoError(t, WriteCrags(&sb, shapes))

	want := strings.Join([]string{
		`import type { SvgObject } from "./areas";`,
		`export const crags: SvgObject[] = [`,
		`  {`,
		`    name: "V1",`,
		`    sector: "SectorX",`,
		`    path: "M0 0",`,
		`    fill: "",`,
		`    x: 1.0,`,
		`    y: 2.0,`,
		`    width: 3.0,`,
		`    height: 4.0,`,
		`  },`,
		`  {`,
		`    name: "V2",`,
		`    sector: "",`,
		`    path: "",`,
		`    fill: "",`,
		`    x: 10.23,`,
		`    y: 0.5,`,
		`    width: 1.0,`,
		`    height: 1.0,`,
		`  },`,
		`];`,
	}, "\n")
	assert.Equal(t, want, sb.String())
}

func TestWriteCrags_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCrags(&sb, nil))
	assert.Equal(t, "import type { SvgObject } from \"./areas\";\nexport const crags: SvgObject[] = [\n];", sb.String())
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src", "map-data", "crags.ts")
	require.NoError(t, WriteFile(path, []doctree.Shape{{Name: "A", X: f(1), Y: f(1), Width: f(1), Height: f(1)}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `name: "A",`)
	assert.False(t, strings.HasSuffix(string(data), "\n"))
}
