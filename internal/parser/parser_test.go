package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/neuralfocus/internal/ramp"
)

func TestYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		id   string
		want bool
	}{
		{"https://www.youtube.com/watch?v=5qap5aO4i9A", "5qap5aO4i9A", true},
		{"https://youtu.be/jfKfPfyJRdk", "jfKfPfyJRdk", true},
		{"https://www.youtube.com/embed/jfKfPfyJRdk?autoplay=1", "jfKfPfyJRdk", true},
		{"https://www.youtube.com/watch?feature=share&v=jfKfPfyJRdk", "jfKfPfyJRdk", true},
		{"https://www.youtube.com/v/jfKfPfyJRdk#t=3", "jfKfPfyJRdk", true},
		{"  https://youtu.be/jfKfPfyJRdk  ", "jfKfPfyJRdk", true},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"https://vimeo.com/12345", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			id, ok := YouTubeID(tt.url)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/5qap5aO4i9A", EmbedURL("https://www.youtube.com/watch?v=5qap5aO4i9A"))
	assert.Equal(t, "", EmbedURL("not a video"))
}

func TestParseBreakDuration(t *testing.T) {
	valid := map[string]int{
		"5":          300,
		"5m":         300,
		"15 min":     900,
		"30minutes":  1800,
		"300s":       300,
		"60 seconds": 60,
		" 1 ":        60,
	}
	for in, want := range valid {
		got, err := ParseBreakDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "0", "59s", "31", "1801s", "five", "5h", "-5"} {
		_, err := ParseBreakDuration(in)
		assert.Error(t, err, in)
	}
}

func TestParseDuration(t *testing.T) {
	p, err := ParseDuration("3h")
	require.NoError(t, err)
	assert.Equal(t, ramp.DeepWork, p)

	_, err = ParseDuration("45")
	assert.ErrorIs(t, err, ramp.ErrUnknownPreset)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ada@example.com"))
	assert.True(t, IsValidEmail(" ada.l@sub.example.org "))
	assert.False(t, IsValidEmail("ada@example"))
	assert.False(t, IsValidEmail("ada example@x.com"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail(""))
}
