package presentation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joined(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{
			name: "plain text",
			text: "just words",
			want: []Span{{Kind: SpanText, Text: "just words"}},
		},
		{
			name: "youtube and hashtag",
			text: "watch https://youtu.be/dQw4w9WgXcQ now #go",
			want: []Span{
				{Kind: SpanText, Text: "watch "},
				{Kind: SpanYouTube, Text: "https://youtu.be/dQw4w9WgXcQ", EmbedId: "dQw4w9WgXcQ"},
				{Kind: SpanText, Text: " now "},
				{Kind: SpanHashtag, Text: "#go", EmbedId: "go"},
			},
		},
		{
			name: "video wins over generic url",
			text: "https://cdn.example.com/clip.mp4",
			want: []Span{{Kind: SpanVideo, Text: "https://cdn.example.com/clip.mp4"}},
		},
		{
			name: "trailing punctuation stays text",
			text: "see https://example.com/page.",
			want: []Span{
				{Kind: SpanText, Text: "see "},
				{Kind: SpanURL, Text: "https://example.com/page"},
				{Kind: SpanText, Text: "."},
			},
		},
		{
			name: "tweet",
			text: "https://x.com/jack/status/20",
			want: []Span{{Kind: SpanTwitter, Text: "https://x.com/jack/status/20", EmbedId: "20"}},
		},
		{
			name: "spotify",
			text: "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			want: []Span{{Kind: SpanSpotify, Text: "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", EmbedId: "track/4uLU6hMCjMI75M1A2tKUQC"}},
		},
		{
			name: "instagram",
			text: "https://www.instagram.com/p/CxYz_12/",
			want: []Span{{Kind: SpanInstagram, Text: "https://www.instagram.com/p/CxYz_12/", EmbedId: "CxYz_12"}},
		},
		{
			name: "hashtag at start",
			text: "#hello world",
			want: []Span{
				{Kind: SpanHashtag, Text: "#hello", EmbedId: "hello"},
				{Kind: SpanText, Text: " world"},
			},
		},
		{
			name: "html entity is not a hashtag",
			text: "a&#39;b",
			want: []Span{{Kind: SpanText, Text: "a&#39;b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_ConcatenationGivesBackInput(t *testing.T) {
	inputs := []string{
		"",
		"#a #b #c",
		"mix https://soundcloud.com/artist/track, https://example.com and #tag!",
		"ünïcode #日本 https://youtube.com/watch?v=dQw4w9WgXcQ&t=1s)",
		strings.Repeat("https://example.com/x ", 20),
	}

	for _, in := range inputs {
		spans := Classify(in)
		require.Equal(t, in, joined(spans))
		for _, s := range spans {
			assert.NotEmpty(t, s.Text)
		}
	}
}
