package parsers

import (
	"path/filepath"
	"strings"

	"exportlens/internal/models"
)

// Parser maps one platform's decoded export onto normalized records.
type Parser interface {
	Platform() models.Platform
	// Parse flattens one export. sections is never empty; it is already
	// resolved against the platform's known sections.
	Parse(raw any, sections []string) ([]models.Record, error)
}

type Registry struct {
	parsers map[models.Platform]Parser
}

func NewRegistry(parsers ...Parser) *Registry {
	r := &Registry{parsers: make(map[models.Platform]Parser, len(parsers))}
	for _, p := range parsers {
		r.parsers[p.Platform()] = p
	}
	return r
}

// NewDefaultRegistry knows the three supported export formats.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewTikTokParser(), NewInstagramParser(), NewYouTubeParser())
}

func (r *Registry) Lookup(p models.Platform) (Parser, error) {
	parser, ok := r.parsers[p]
	if !ok {
		return nil, &models.UnsupportedPlatformError{Platform: string(p)}
	}
	return parser, nil
}

var instagramFiles = map[string]struct{}{
	models.SectionSavedPosts:      {},
	models.SectionLikedPosts:      {},
	models.SectionPostsViewed:     {},
	models.SectionSuggestedViewed: {},
	models.SectionVideosWatched:   {},
}

// DetectPlatform guesses the platform from an upload file name. It is only a
// fallback for uploads that arrive without a platform tag.
func DetectPlatform(filename string) (models.Platform, error) {
	name := strings.ToLower(filepath.Base(filename))
	switch {
	case strings.Contains(name, "tiktok") || name == "user_data.json":
		return models.PlatformTikTok, nil
	case strings.Contains(name, "watch-history") || strings.Contains(name, "youtube"):
		return models.PlatformYouTube, nil
	}
	if _, ok := instagramFiles[name]; ok {
		return models.PlatformInstagram, nil
	}
	return "", &models.UnsupportedPlatformError{Platform: filename}
}
