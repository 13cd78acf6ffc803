package routes

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// MappingEntry ties a block name in an area to its number on the map.
type MappingEntry struct {
	Area        string `json:"area"`
	Name        string `json:"name"`
	BlockNumber string `json:"blockNumber"`
}

// ParseMapping reads "area / name / blockNumber" lines. Blank lines are
// ignored; lines with fewer than three parts are skipped and returned as
// warnings. Parts beyond the third are ignored.
func ParseMapping(r io.Reader) ([]MappingEntry, []string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	entries := make([]MappingEntry, 0, 64)
	var warnings []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "/")
		if len(parts) < 3 {
			warnings = append(warnings, fmt.Sprintf("line %q does not have enough parts, skipping", line))
			continue
		}
		entries = append(entries, MappingEntry{
			Area:        strings.TrimSpace(parts[0]),
			Name:        strings.TrimSpace(parts[1]),
			BlockNumber: strings.TrimSpace(parts[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read mapping: %w", err)
	}
	return entries, warnings, nil
}

// ReadMapping loads a mapping JSON file written by ConvertMappingFile.
func ReadMapping(path string) ([]MappingEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var entries []MappingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: mapping: %v", ErrInvalidJSON, err)
	}
	return entries, nil
}

// ConvertMappingFile parses the mapping text at in and writes it as JSON to
// out. Failures are logged and yield an empty result; nothing is written.
func ConvertMappingFile(log *slog.Logger, in, out string) []MappingEntry {
	entries, err := convertMappingFile(log, in, out)
	if err != nil {
		log.Error("mapping conversion failed", "input", in, "error", err)
		return []MappingEntry{}
	}
	log.Info("mapping data processed", "entries", len(entries), "output", out)
	return entries
}

func convertMappingFile(log *slog.Logger, in, out string) ([]MappingEntry, error) {
	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()

	entries, warnings, err := ParseMapping(f)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	if err := writeJSON(out, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
