package routes

import (
	"log/slog"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// AreaCount is the number of flagged routes in one area.
type AreaCount struct {
	Area  string
	Count int
}

// AuditResult lists routes whose block does not start with a digit.
type AuditResult struct {
	Routes []gjson.Result
	ByArea []AreaCount // sorted by area
}

// Audit keeps routes whose block is a non-empty string not starting with a
// digit, and counts them per area.
func Audit(routes []gjson.Result) AuditResult {
	res := AuditResult{Routes: make([]gjson.Result, 0)}
	counts := map[string]int{}
	for _, route := range routes {
		block := route.Get("block")
		if block.Type != gjson.String || block.Str == "" {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(block.Str); unicode.IsDigit(r) {
			continue
		}
		res.Routes = append(res.Routes, route)
		counts[areaLabel(route)]++
	}

	res.ByArea = make([]AreaCount, 0, len(counts))
	for area, n := range counts {
		res.ByArea = append(res.ByArea, AreaCount{Area: area, Count: n})
	}
	sort.Slice(res.ByArea, func(i, j int) bool { return res.ByArea[i].Area < res.ByArea[j].Area })
	return res
}

func areaLabel(route gjson.Result) string {
	v := route.Get("area")
	switch {
	case !v.Exists():
		return "Unknown"
	case v.Type == gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}

// AuditFile audits the routes at in and writes the flagged ones to out.
// Failures are logged and yield an empty result; nothing is written.
func AuditFile(log *slog.Logger, in, out string) AuditResult {
	res, err := auditFile(in, out)
	if err != nil {
		log.Error("route audit failed", "routes", in, "error", err)
		return AuditResult{Routes: []gjson.Result{}}
	}
	log.Info("found routes with block names starting with non-digit characters", "count", len(res.Routes))
	for _, c := range res.ByArea {
		log.Info("area distribution", "area", c.Area, "routes", c.Count)
	}
	log.Info("filtered routes saved", "output", out)
	return res
}

func auditFile(in, out string) (AuditResult, error) {
	routes, err := ReadRoutes(in)
	if err != nil {
		return AuditResult{}, err
	}
	res := Audit(routes)
	if err := WriteRoutes(out, res.Routes); err != nil {
		return AuditResult{}, err
	}
	return res, nil
}
