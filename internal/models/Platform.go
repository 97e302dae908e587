package models

import "strings"

type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
)

var Platforms = []Platform{PlatformTikTok, PlatformInstagram, PlatformYouTube}

// ParsePlatform maps an upload tag onto a known platform, case-insensitively.
func ParsePlatform(tag string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(tag)))
	for _, known := range Platforms {
		if p == known {
			return p, nil
		}
	}
	return "", &UnsupportedPlatformError{Platform: tag}
}

func (p Platform) String() string {
	return string(p)
}
