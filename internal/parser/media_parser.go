package parser

import (
	"regexp"
	"strings"
)

var youtubeRegex = regexp.MustCompile(`^.*(youtu.be\/|v\/|u\/\w\/|embed\/|watch\?v=|&v=)([^#&?]*).*`)

// YouTubeID extracts the 11 character video id from a YouTube URL
// Accepts formats like:
// - "https://www.youtube.com/watch?v=5qap5aO4i9A"
// - "https://youtu.be/5qap5aO4i9A"
// - "https://www.youtube.com/embed/5qap5aO4i9A"
// Returns false when no playable id is found
func YouTubeID(url string) (string, bool) {
	matches := youtubeRegex.FindStringSubmatch(strings.TrimSpace(url))
	if len(matches) != 3 || len(matches[2]) != 11 {
		return "", false
	}
	return matches[2], true
}

// EmbedURL returns the embeddable player URL, or "" when the input has no
// playable media
func EmbedURL(url string) string {
	id, ok := YouTubeID(url)
	if !ok {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
