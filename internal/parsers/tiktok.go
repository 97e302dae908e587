package parsers

import "exportlens/internal/models"

// tiktokSection locates one list in the Activity tree. Older exports used
// LegacyKey for the same list.
type tiktokSection struct {
	Key       string
	LegacyKey string
	List      string
	Source    string
}

var tiktokSections = map[string]tiktokSection{
	models.SectionVideoHistory:  {Key: "Video Browsing History", List: "VideoList", Source: models.SourceBrowsing},
	models.SectionFavoriteVideo: {Key: "Favorite Videos", LegacyKey: "Favorite", List: "FavoriteVideoList", Source: models.SourceFavorite},
	models.SectionItemFavorite:  {Key: "Like List", LegacyKey: "Liked", List: "ItemFavoriteList", Source: models.SourceLiked},
}

type TikTokParser struct{}

func NewTikTokParser() *TikTokParser {
	return &TikTokParser{}
}

func (p *TikTokParser) Platform() models.Platform {
	return models.PlatformTikTok
}

func (p *TikTokParser) Parse(raw any, sections []string) ([]models.Record, error) {
	var records []models.Record
	for _, id := range sections {
		sec, ok := tiktokSections[id]
		if !ok {
			continue
		}
		entries := listAt(raw, "Activity", sec.Key, sec.List)
		if len(entries) == 0 && sec.LegacyKey != "" {
			entries = listAt(raw, "Activity", sec.LegacyKey, sec.List)
		}
		for _, e := range entries {
			date, _ := parseTime(stringAt(e, "", "Date"))
			records = append(records, models.Record{
				Time:   date,
				Link:   stringAt(e, "", "Link"),
				Source: sec.Source,
			})
		}
	}
	if len(records) == 0 {
		return nil, &models.NoDataError{Platform: models.PlatformTikTok, Sections: sections}
	}
	return records, nil
}
