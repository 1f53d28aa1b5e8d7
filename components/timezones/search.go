package timezones

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/goliatone/go-formfield/pkg/value"
)

// match ranks: whole-name prefix first, then a prefix of any path segment
// ("par" finds Europe/Paris), then a plain substring.
const (
	rankPrefix = iota
	rankSegment
	rankContains
)

type match struct {
	zone string
	rank int
}

// Search returns up to limit zones containing term, ignoring case and
// treating spaces as underscores. An empty term yields nothing unless
// opts.ListAll is set.
func Search(zones []string, term string, limit int, opts Options) []string {
	limit = opts.clampLimit(limit)
	if limit == 0 {
		return nil
	}
	term = strings.TrimSpace(term)
	if term == "" {
		if !opts.ListAll {
			return nil
		}
		return slices.Clone(zones[:min(limit, len(zones))])
	}

	folder := cases.Fold()
	needle := folder.String(strings.ReplaceAll(term, " ", "_"))
	var matches []match
	for _, zone := range zones {
		if m, ok := rank(folder.String(zone), needle); ok {
			matches = append(matches, match{zone: zone, rank: m})
		}
	}
	slices.SortStableFunc(matches, func(a, b match) int {
		return cmp.Or(cmp.Compare(a.rank, b.rank), strings.Compare(a.zone, b.zone))
	})

	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches[:min(limit, len(matches))] {
		out = append(out, m.zone)
	}
	return out
}

func rank(zone, needle string) (int, bool) {
	switch {
	case strings.HasPrefix(zone, needle):
		return rankPrefix, true
	case strings.Contains(zone, "/"+needle):
		return rankSegment, true
	case strings.Contains(zone, needle):
		return rankContains, true
	default:
		return 0, false
	}
}

// SearchOptions is Search shaped as select options.
func SearchOptions(zones []string, term string, limit int, opts Options) []value.Option {
	found := Search(zones, term, limit, opts)
	out := make([]value.Option, len(found))
	for i, zone := range found {
		out[i] = value.Option{Value: zone, Label: Label(zone)}
	}
	return out
}

// Label renders a zone identifier for display: "America/New_York" reads
// "America/New York".
func Label(zone string) string {
	return strings.ReplaceAll(zone, "_", " ")
}
