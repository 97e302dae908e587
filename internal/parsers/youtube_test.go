package parsers

import (
	"testing"
	"time"

	"exportlens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var watchHistory = []string{models.SectionWatchHistory}

func youtubeEntry(title, ts, channel string) map[string]any {
	e := map[string]any{
		"title":    title,
		"titleUrl": "https://www.youtube.com/watch?v=" + title,
		"time":     ts,
	}
	if channel != "" {
		e["subtitles"] = []any{map[string]any{"name": channel, "url": "https://www.youtube.com/channel/" + channel}}
	}
	return e
}

func TestYouTube_BareList(t *testing.T) {
	raw := []any{youtubeEntry("abc", "2023-01-15T12:34:56.789Z", "chan")}
	recs, err := NewYouTubeParser().Parse(raw, watchHistory)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, models.Record{
		Title:       "abc",
		Link:        "https://www.youtube.com/watch?v=abc",
		Time:        time.Date(2023, 1, 15, 12, 34, 56, 789000000, time.UTC),
		ChannelName: "chan",
		ChannelURL:  "https://www.youtube.com/channel/chan",
	}, recs[0])
}

func TestYouTube_WrappedList(t *testing.T) {
	raw := map[string]any{"watch-history": []any{
		youtubeEntry("a", "2023-01-15T12:34:56Z", "c1"),
		youtubeEntry("b", "2023-02-15T12:34:56+02:00", "c2"),
	}}
	recs, err := NewYouTubeParser().Parse(raw, watchHistory)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, time.Date(2023, 2, 15, 10, 34, 56, 0, time.UTC), recs[1].Time)
}

func TestYouTube_MissingChannelUsesPlaceholders(t *testing.T) {
	raw := []any{
		youtubeEntry("a", "2023-01-15T12:34:56Z", ""),
		map[string]any{"subtitles": []any{}},
	}
	recs, err := NewYouTubeParser().Parse(raw, watchHistory)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "No Channel Name", recs[0].ChannelName)
	assert.Equal(t, "No Channel URL", recs[0].ChannelURL)
	assert.Equal(t, "No Title", recs[1].Title)
	assert.Equal(t, "No URL", recs[1].Link)
	assert.Equal(t, models.Epoch, recs[1].Time)
}

func TestYouTube_NoData(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		sections []string
	}{
		{"empty list", []any{}, watchHistory},
		{"missing key", map[string]any{"other": []any{}}, watchHistory},
		{"section not selected", []any{youtubeEntry("a", "2023-01-15T12:34:56Z", "c")}, []string{"search_history"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYouTubeParser().Parse(tt.raw, tt.sections)
			assert.True(t, models.IsNoData(err))
		})
	}
}
