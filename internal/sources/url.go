// Package sources classifies recipe source URLs and parses free-text
// ingredient lines into structured amounts.
package sources

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/pageza/recipebox/backend/internal/model"
)

var (
	ErrEmptyURL          = errors.New("URL must be a non-empty string")
	ErrInvalidYouTubeURL = errors.New("invalid YouTube URL format")
	ErrInvalidURL        = errors.New("URL must be an absolute http(s) URL")
)

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/watch\?v=([\w-]{11})`),
	regexp.MustCompile(`^https?://youtu\.be/([\w-]{11})`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/embed/([\w-]{11})`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/shorts/([\w-]{11})`),
}

var socialDomains = []string{"instagram.com", "tiktok.com", "facebook.com", "fb.watch", "fb.com", "twitter.com", "x.com"}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}

// DetectSourceType reports which platform a recipe URL points at.
func DetectSourceType(raw string) string {
	host := hostOf(raw)
	switch {
	case strings.Contains(host, "youtube.com"), strings.Contains(host, "youtu.be"):
		return model.SourceYouTube
	case strings.Contains(host, "instagram.com"):
		return model.SourceInstagram
	case strings.Contains(host, "tiktok.com"):
		return model.SourceTikTok
	case strings.Contains(host, "facebook.com"), strings.Contains(host, "fb.watch"), strings.Contains(host, "fb.com"):
		return model.SourceFacebook
	}
	for _, d := range socialDomains {
		if strings.Contains(host, d) {
			return model.SourceSocial
		}
	}
	return model.SourceWeb
}

// ValidateYouTubeURL accepts watch, youtu.be, embed and shorts links.
func ValidateYouTubeURL(raw string) error {
	if raw == "" {
		return ErrEmptyURL
	}
	if ExtractVideoID(raw) == "" {
		return ErrInvalidYouTubeURL
	}
	return nil
}

// ExtractVideoID returns the 11 character video id of a YouTube link, or ""
// when raw is not one.
func ExtractVideoID(raw string) string {
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}
	return ""
}

// SanitizeURL drops tracking parameters. Watch links keep only v=.
func SanitizeURL(raw string) string {
	if strings.Contains(raw, "watch?") && strings.Contains(raw, "v=") {
		base := strings.SplitN(raw, "?", 2)[0]
		id := strings.SplitN(strings.SplitN(raw, "v=", 2)[1], "&", 2)[0]
		return base + "?v=" + id
	}
	return strings.SplitN(strings.SplitN(raw, "?", 2)[0], "&", 2)[0]
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
