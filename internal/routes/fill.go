package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

// FillResult is the outcome of attaching block numbers to routes.
type FillResult struct {
	Routes   []gjson.Result
	Matched  int
	Missing  int
	Filtered int
}

// Fill drops routes without a usable difficulty and sets blockNumber on the
// rest: the mapped number when (area, block) matches a mapping entry's
// (area, name), otherwise the route's own block value.
func Fill(routes []gjson.Result, mapping []MappingEntry) (FillResult, error) {
	lookup := make(map[[2]string]string, len(mapping))
	for _, m := range mapping {
		lookup[[2]string{m.Area, m.Name}] = m.BlockNumber
	}

	res := FillResult{Routes: make([]gjson.Result, 0, len(routes))}
	for _, route := range routes {
		if !validDifficulty(route.Get("difficulty")) {
			res.Filtered++
			continue
		}

		blockRaw := `""`
		if b := route.Get("block"); b.Exists() {
			blockRaw = b.Raw
		}

		value := blockRaw
		area, areaOK := stringField(route, "area")
		block, blockOK := stringField(route, "block")
		number, found := lookup[[2]string{area, block}]
		if areaOK && blockOK && found {
			raw, err := marshal(number, "")
			if err != nil {
				return FillResult{}, err
			}
			value = string(raw)
			res.Matched++
		} else {
			res.Missing++
		}

		filled := gjson.Parse(setField(route, "blockNumber", value))
		res.Routes = append(res.Routes, filled)
	}
	return res, nil
}

// validDifficulty rejects missing, non-string and blank difficulties, and
// those carrying the IFAS or {US} markers.
func validDifficulty(v gjson.Result) bool {
	if v.Type != gjson.String {
		return false
	}
	d := v.Str
	return strings.TrimSpace(d) != "" &&
		!strings.Contains(d, "IFAS") &&
		!strings.Contains(d, "{US}")
}

// setField rewrites obj with key set to raw. An existing key keeps its
// position; a new key goes last.
func setField(obj gjson.Result, key, raw string) string {
	var b strings.Builder
	b.WriteByte('{')
	first, replaced := true, false
	obj.ForEach(func(k, v gjson.Result) bool {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(k.Raw)
		b.WriteByte(':')
		if !replaced && k.Str == key {
			b.WriteString(raw)
			replaced = true
		} else {
			b.WriteString(v.Raw)
		}
		return true
	})
	if !replaced {
		if !first {
			b.WriteByte(',')
		}
		quoted, _ := marshal(key, "")
		b.Write(quoted)
		b.WriteByte(':')
		b.WriteString(raw)
	}
	b.WriteByte('}')
	return b.String()
}

// FillFiles reads routes and mapping, fills block numbers and writes out.
// Failures are logged and yield an empty result; nothing is written.
func FillFiles(log *slog.Logger, routesPath, mappingPath, out string) FillResult {
	res, err := fillFiles(routesPath, mappingPath, out)
	if err != nil {
		log.Error("route filling failed", "routes", routesPath, "mapping", mappingPath, "error", err)
		return FillResult{Routes: []gjson.Result{}}
	}
	log.Info("routes processing completed",
		"total", len(res.Routes),
		"matched", res.Matched,
		"missing", res.Missing,
		"filtered", res.Filtered,
		"output", out,
	)
	return res
}

func fillFiles(routesPath, mappingPath, out string) (FillResult, error) {
	routes, err := ReadRoutes(routesPath)
	if err != nil {
		return FillResult{}, err
	}
	mapping, err := ReadMapping(mappingPath)
	if err != nil {
		return FillResult{}, err
	}
	res, err := Fill(routes, mapping)
	if err != nil {
		return FillResult{}, fmt.Errorf("fill routes: %w", err)
	}
	if err := WriteRoutes(out, res.Routes); err != nil {
		return FillResult{}, err
	}
	return res, nil
}
