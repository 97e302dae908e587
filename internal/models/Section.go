package models

// TikTok section ids.
const (
	SectionVideoHistory  = "video_history"
	SectionFavoriteVideo = "favorite_video"
	SectionItemFavorite  = "item_favorite"
)

// Instagram section ids, named after the export files they come from.
const (
	SectionSavedPosts      = "saved_posts.json"
	SectionLikedPosts      = "liked_posts.json"
	SectionPostsViewed     = "posts_viewed.json"
	SectionSuggestedViewed = "suggested_accounts_viewed.json"
	SectionVideosWatched   = "videos_watched.json"
)

const SectionWatchHistory = "watch_history"

var defaultSections = map[Platform][]string{
	PlatformTikTok:    {SectionVideoHistory, SectionFavoriteVideo, SectionItemFavorite},
	PlatformInstagram: {SectionSavedPosts, SectionLikedPosts, SectionPostsViewed, SectionSuggestedViewed, SectionVideosWatched},
	PlatformYouTube:   {SectionWatchHistory},
}

func DefaultSections(p Platform) []string {
	out := make([]string, len(defaultSections[p]))
	copy(out, defaultSections[p])
	return out
}

// SectionSelector is the set of sections a caller wants included.
// A nil or empty selector means every known section of the platform.
type SectionSelector map[string]struct{}

func NewSectionSelector(ids ...string) SectionSelector {
	if len(ids) == 0 {
		return nil
	}
	s := make(SectionSelector, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SectionSelector) Empty() bool {
	return len(s) == 0
}

func (s SectionSelector) Has(id string) bool {
	if s.Empty() {
		return true
	}
	_, ok := s[id]
	return ok
}

// Resolve lists the selected sections known to p, in the platform's fixed order.
func (s SectionSelector) Resolve(p Platform) []string {
	out := make([]string, 0, len(defaultSections[p]))
	for _, id := range defaultSections[p] {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
