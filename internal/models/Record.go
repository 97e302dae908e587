package models

import "time"

const TimeLayout = "2006-01-02 15:04:05"

// Source values carried by TikTok records.
const (
	SourceBrowsing = "Browsing"
	SourceFavorite = "Favorite"
	SourceLiked    = "Liked"
)

// Record is one normalized row. Which fields are meaningful depends on the
// platform schema of the table holding it; see Columns.
type Record struct {
	Time        time.Time `json:"t"`
	Title       string    `json:"ti,omitempty"`
	Link        string    `json:"l,omitempty"`
	Source      string    `json:"s,omitempty"`
	Category    string    `json:"c,omitempty"`
	FileName    string    `json:"f,omitempty"`
	ChannelName string    `json:"cn,omitempty"`
	ChannelURL  string    `json:"cu,omitempty"`
}

// Epoch is the placeholder for missing or unparsable timestamps.
var Epoch = time.Unix(0, 0).UTC()

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
