package parsers

import "exportlens/internal/models"

const (
	placeholderTitle  = "No Title"
	placeholderAuthor = "Unknown"
	placeholderHref   = "N/A"
)

// instagramCategory binds a top-level export key to the file it ships in
// and to the way its entries are flattened.
type instagramCategory struct {
	Key     string
	File    string
	flatten func(entry any, c instagramCategory) []models.Record
}

// Category order is the order rows appear in within one export.
var instagramCategories = []instagramCategory{
	{Key: "saved_saved_media", File: models.SectionSavedPosts, flatten: flattenSaved},
	{Key: "likes_media_likes", File: models.SectionLikedPosts, flatten: flattenLikes},
	{Key: "impressions_history_posts_seen", File: models.SectionPostsViewed, flatten: flattenImpression("Author")},
	{Key: "impressions_history_chaining_seen", File: models.SectionSuggestedViewed, flatten: flattenImpression("Username")},
	{Key: "impressions_history_videos_watched", File: models.SectionVideosWatched, flatten: flattenImpression("Author")},
}

func flattenSaved(entry any, c instagramCategory) []models.Record {
	return []models.Record{{
		Title:    stringAt(entry, placeholderTitle, "title"),
		Link:     stringAt(entry, "", "string_map_data", "Saved on", "href"),
		Time:     unixAt(entry, "string_map_data", "Saved on", "timestamp"),
		Category: c.Key,
		FileName: c.File,
	}}
}

func flattenLikes(entry any, c instagramCategory) []models.Record {
	title := stringAt(entry, placeholderTitle, "title")
	likes := listAt(entry, "string_list_data")
	records := make([]models.Record, 0, len(likes))
	for _, like := range likes {
		records = append(records, models.Record{
			Title:    title,
			Link:     stringAt(like, "", "href"),
			Time:     unixAt(like, "timestamp"),
			Category: c.Key,
			FileName: c.File,
		})
	}
	return records
}

func flattenImpression(titleKey string) func(any, instagramCategory) []models.Record {
	return func(entry any, c instagramCategory) []models.Record {
		return []models.Record{{
			Title:    stringAt(entry, placeholderAuthor, "string_map_data", titleKey, "value"),
			Link:     placeholderHref,
			Time:     unixAt(entry, "string_map_data", "Time", "timestamp"),
			Category: c.Key,
			FileName: c.File,
		}}
	}
}

// InstagramParser flattens every category present in an export and keeps
// the rows whose file_name is selected. Missing fields fall back to
// placeholders; an export with nothing selected yields no rows and no error.
type InstagramParser struct{}

func NewInstagramParser() *InstagramParser {
	return &InstagramParser{}
}

func (p *InstagramParser) Platform() models.Platform {
	return models.PlatformInstagram
}

func (p *InstagramParser) Parse(raw any, sections []string) ([]models.Record, error) {
	selected := models.NewSectionSelector(sections...)
	records := make([]models.Record, 0)
	for _, rec := range p.Flatten(raw) {
		if selected.Has(rec.FileName) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Flatten returns every row of every category, unfiltered.
func (p *InstagramParser) Flatten(raw any) []models.Record {
	var records []models.Record
	for _, c := range instagramCategories {
		for _, entry := range listAt(raw, c.Key) {
			records = append(records, c.flatten(entry, c)...)
		}
	}
	return records
}

// ParseExports concatenates several exports in file order and filters the
// result. Only an empty merged result is an error.
func (p *InstagramParser) ParseExports(raws []any, sections []string) ([]models.Record, error) {
	records := make([]models.Record, 0)
	for _, raw := range raws {
		recs, err := p.Parse(raw, sections)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	if len(records) == 0 {
		return nil, &models.NoDataError{Platform: models.PlatformInstagram, Sections: sections}
	}
	return records, nil
}
