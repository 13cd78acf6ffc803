package routes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func mustRoutes(t *testing.T, raw string) []gjson.Result {
	t.Helper()
	routes, err := ParseRoutes([]byte(raw))
	require.NoError(t, err)
	return routes
}

func TestFill(t *testing.T) {
	routes := mustRoutes(t, `[
		{"id": 1, "area": "Sector A", "block": "Block 1", "difficulty": "6A"},
		{"id": 2, "area": "Sector A", "block": "Block 9", "difficulty": "7B+"},
		{"id": 3, "area": "Sector A", "block": "Block 1", "difficulty": ""},
		{"id": 4, "area": "Sector A", "block": "Block 1", "difficulty": "5.10 IFAS"},
		{"id": 5, "area": "Sector A", "block": "Block 1", "difficulty": "{US} 5"},
		{"id": 6, "area": "Sector A", "block": "Block 1", "difficulty": "   "},
		{"id": 7, "area": "Sector A", "block": "Block 1"},
		{"id": 8, "area": "Sector A", "block": "Block 1", "difficulty": null}
	]`)
	mapping := []MappingEntry{{Area: "Sector A", Name: "Block 1", BlockNumber: "B12"}}

	res, err := Fill(routes, mapping)
	require.NoError(t, err)
	require.Len(t, res.Routes, 2)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 1, res.Missing)
	assert.Equal(t, 6, res.Filtered)

	assert.Equal(t, "B12", res.Routes[0].Get("blockNumber").String())
	assert.Equal(t, "Block 1", res.Routes[0].Get("block").String())
	assert.Equal(t, "Block 9", res.Routes[1].Get("blockNumber").String())
}

func TestFill_PreservesKeyOrderAndReplacesInPlace(t *testing.T) {
	routes := mustRoutes(t, `[{"z":1,"blockNumber":"old","area":"A","block":"B","difficulty":"6A","extra":{"k":[1,2]}}]`)
	res, err := Fill(routes, []MappingEntry{{Area: "A", Name: "B", BlockNumber: "42"}})
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"blockNumber":"42","area":"A","block":"B","difficulty":"6A","extra":{"k":[1,2]}}`, res.Routes[0].Raw)
}

func TestFill_AppendsBlockNumberAndKeepsRawBlock(t *testing.T) {
	routes := mustRoutes(t, `[{"area":"A","block":12,"difficulty":"6A"},{"area":"A","difficulty":"6B"}]`)
	res, err := Fill(routes, []MappingEntry{{Area: "A", Name: "12", BlockNumber: "x"}})
	require.NoError(t, err)
	assert.Equal(t, `{"area":"A","block":12,"difficulty":"6A","blockNumber":12}`, res.Routes[0].Raw)
	assert.Equal(t, `{"area":"A","difficulty":"6B","blockNumber":""}`, res.Routes[1].Raw)
	assert.Equal(t, 2, res.Missing)
}

func TestFill_LaterMappingDuplicateWins(t *testing.T) {
	routes := mustRoutes(t, `[{"area":"A","block":"B","difficulty":"6A"}]`)
	res, err := Fill(routes, []MappingEntry{
		{Area: "A", Name: "B", BlockNumber: "1"},
		{Area: "A", Name: "B", BlockNumber: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2", res.Routes[0].Get("blockNumber").String())
}

func TestFillFiles(t *testing.T) {
	dir := t.TempDir()
	routesPath := filepath.Join(dir, "routes.json")
	mappingPath := filepath.Join(dir, "mapping.json")
	out := filepath.Join(dir, "filled_routes.json")
	require.NoError(t, os.WriteFile(routesPath, []byte(`[{"area":"Сектор","block":"Камень","difficulty":"6A"}]`), 0o644))
	require.NoError(t, os.WriteFile(mappingPath, []byte(`[{"area":"Сектор","name":"Камень","blockNumber":"7"}]`), 0o644))

	res := FillFiles(discardLogger(), routesPath, mappingPath, out)
	assert.Len(t, res.Routes, 1)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"area\": \"Сектор\",\n    \"block\": \"Камень\",\n    \"difficulty\": \"6A\",\n    \"blockNumber\": \"7\"\n  }\n]", string(data))
}

func TestFillFiles_FailuresYieldEmptyResult(t *testing.T) {
	dir := t.TempDir()
	routesPath := filepath.Join(dir, "routes.json")
	mappingPath := filepath.Join(dir, "mapping.json")
	out := filepath.Join(dir, "filled_routes.json")

	res := FillFiles(discardLogger(), routesPath, mappingPath, out)
	assert.Empty(t, res.Routes)

	require.NoError(t, os.WriteFile(routesPath, []byte(`[{"area":`), 0o644))
	require.NoError(t, os.WriteFile(mappingPath, []byte(`[]`), 0o644))
	res = FillFiles(discardLogger(), routesPath, mappingPath, out)
	assert.Empty(t, res.Routes)
	assert.NoFileExists(t, out)
}

func TestParseRoutes_Invalid(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, `[1,2]`, `not json`} {
		_, err := ParseRoutes([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidJSON, raw)
	}
}
