package statistic

import (
	"fmt"
	"sort"

	"exportlens/internal/models"
)

type Granularity string

const (
	Month Granularity = "month"
	Year  Granularity = "year"
)

const DefaultTopN = 10

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Month, "":
		return Month, nil
	case Year:
		return Year, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

func (g Granularity) layout() string {
	if g == Year {
		return "2006"
	}
	return "2006-01"
}

type Options struct {
	Granularity Granularity `json:"granularity"`
	// GroupBy splits each period by the values of this column. Empty means
	// one count per period.
	GroupBy string `json:"group_by,omitempty"`
	// TopN keeps the N largest groups per period; 0 keeps all.
	TopN          int      `json:"top_n,omitempty"`
	ExcludeGroups []string `json:"exclude_groups,omitempty"`
}

type Bucket struct {
	Period string `json:"period"`
	Group  string `json:"group,omitempty"`
	Count  int    `json:"count"`
}

type Aggregation struct {
	Options Options  `json:"options"`
	Buckets []Bucket `json:"buckets"`
}

// groupCount keeps first-seen order so equal counts rank stably.
type groupCount struct {
	group string
	count int
	seen  int
}

// AggregateByTime counts table rows per calendar period and, optionally, per
// group value within each period. Periods ascend; groups within a period are
// ranked by count descending with ties in first-seen row order.
func AggregateByTime(table *models.Table, opts Options) (*Aggregation, error) {
	if opts.Granularity == "" {
		opts.Granularity = Month
	}
	if _, err := table.Column(table.TimeColumn()); err != nil {
		return nil, err
	}
	var groupCol models.Column
	if opts.GroupBy != "" {
		col, err := table.Column(opts.GroupBy)
		if err != nil {
			return nil, err
		}
		groupCol = col
	}

	excluded := make(map[string]struct{}, len(opts.ExcludeGroups))
	for _, g := range opts.ExcludeGroups {
		excluded[g] = struct{}{}
	}

	periods := make(map[string]map[string]*groupCount)
	for i := range table.Records {
		rec := &table.Records[i]
		group := ""
		if opts.GroupBy != "" {
			group = groupCol.Value(rec)
			if _, skip := excluded[group]; skip {
				continue
			}
		}
		period := rec.Time.UTC().Format(opts.Granularity.layout())
		groups, ok := periods[period]
		if !ok {
			groups = make(map[string]*groupCount)
			periods[period] = groups
		}
		gc, ok := groups[group]
		if !ok {
			gc = &groupCount{group: group, seen: i}
			groups[group] = gc
		}
		gc.count++
	}

	keys := make([]string, 0, len(periods))
	for p := range periods {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	agg := &Aggregation{Options: opts, Buckets: make([]Bucket, 0)}
	for _, period := range keys {
		ranked := make([]*groupCount, 0, len(periods[period]))
		for _, gc := range periods[period] {
			ranked = append(ranked, gc)
		}
		sort.Slice(ranked, func(a, b int) bool {
			if ranked[a].count != ranked[b].count {
				return ranked[a].count > ranked[b].count
			}
			return ranked[a].seen < ranked[b].seen
		})
		if opts.TopN > 0 && len(ranked) > opts.TopN {
			ranked = ranked[:opts.TopN]
		}
		for _, gc := range ranked {
			agg.Buckets = append(agg.Buckets, Bucket{Period: period, Group: gc.group, Count: gc.count})
		}
	}
	return agg, nil
}

// ChartPreset is the aggregation each platform's chart is drawn from.
func ChartPreset(p models.Platform) Options {
	switch p {
	case models.PlatformInstagram:
		return Options{Granularity: Year, GroupBy: "title", TopN: DefaultTopN}
	case models.PlatformYouTube:
		return Options{Granularity: Year, GroupBy: "Channel Name", TopN: DefaultTopN, ExcludeGroups: []string{"No Channel Name"}}
	default:
		return Options{Granularity: Month, GroupBy: "Source"}
	}
}
