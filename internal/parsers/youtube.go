package parsers

import "exportlens/internal/models"

type YouTubeParser struct{}

func NewYouTubeParser() *YouTubeParser {
	return &YouTubeParser{}
}

func (p *YouTubeParser) Platform() models.Platform {
	return models.PlatformYouTube
}

// Parse accepts either the bare watch-history array or an object wrapping it
// under "watch-history".
func (p *YouTubeParser) Parse(raw any, sections []string) ([]models.Record, error) {
	if !models.NewSectionSelector(sections...).Has(models.SectionWatchHistory) {
		return nil, &models.NoDataError{Platform: models.PlatformYouTube, Sections: sections}
	}

	entries, ok := raw.([]any)
	if !ok {
		entries = listAt(raw, "watch-history")
	}

	records := make([]models.Record, 0, len(entries))
	for _, e := range entries {
		if _, ok := e.(map[string]any); !ok {
			continue
		}
		var channel any
		if subs := listAt(e, "subtitles"); len(subs) > 0 {
			channel = subs[0]
		}
		date, _ := parseTime(stringAt(e, "", "time"))
		records = append(records, models.Record{
			Title:       stringAt(e, "No Title", "title"),
			Link:        stringAt(e, "No URL", "titleUrl"),
			Time:        date,
			ChannelName: stringAt(channel, "No Channel Name", "name"),
			ChannelURL:  stringAt(channel, "No Channel URL", "url"),
		})
	}
	if len(records) == 0 {
		return nil, &models.NoDataError{Platform: models.PlatformYouTube, Sections: sections}
	}
	return records, nil
}
