package presentation

import (
	"regexp"
	"sort"
	"strings"
)

type SpanKind string

const (
	SpanText       SpanKind = "text"
	SpanVideo      SpanKind = "video"
	SpanYouTube    SpanKind = "youtube"
	SpanInstagram  SpanKind = "instagram"
	SpanTwitter    SpanKind = "twitter"
	SpanSoundCloud SpanKind = "soundcloud"
	SpanSpotify    SpanKind = "spotify"
	SpanHashtag    SpanKind = "hashtag"
	SpanURL        SpanKind = "url"
)

type Span struct {
	Kind    SpanKind `json:"kind"`
	Text    string   `json:"text"`
	EmbedId string   `json:"embedId,omitempty"`
}

type embed struct {
	kind    SpanKind
	pattern *regexp.Regexp
	// group holding the span; group holding the embed id, 0 for none.
	spanGroup int
	idGroup   int
	link      bool
}

const urlChars = `[^\s<>"']`

// Priority order: on equal start positions the earlier entry wins, so the
// generic URL and hashtag embeds only catch what nothing else claimed.
var embeds = []embed{
	{
		kind:    SpanVideo,
		pattern: regexp.MustCompile(`(?i)https?://` + urlChars + `+\.(?:mp4|webm|ogv|ogg|mov|m3u8)(?:\?` + urlChars + `*)?`),
		link:    true,
	},
	{
		kind:    SpanYouTube,
		pattern: regexp.MustCompile(`https?://(?:www\.|m\.|music\.)?(?:youtube\.com/(?:watch\?(?:` + urlChars + `*&)?v=|shorts/|embed/|live/)|youtu\.be/)([\w-]{11})` + urlChars + `*`),
		idGroup: 1,
		link:    true,
	},
	{
		kind:    SpanInstagram,
		pattern: regexp.MustCompile(`https?://(?:www\.)?instagram\.com/(?:p|reel|tv)/([\w-]+)/?` + urlChars + `*`),
		idGroup: 1,
		link:    true,
	},
	{
		kind:    SpanTwitter,
		pattern: regexp.MustCompile(`https?://(?:www\.|mobile\.)?(?:twitter|x)\.com/\w{1,15}/status/(\d+)` + urlChars + `*`),
		idGroup: 1,
		link:    true,
	},
	{
		kind:    SpanSoundCloud,
		pattern: regexp.MustCompile(`https?://(?:www\.|m\.)?soundcloud\.com/[\w-]+/[\w-]+` + urlChars + `*`),
		link:    true,
	},
	{
		kind:    SpanSpotify,
		pattern: regexp.MustCompile(`https?://open\.spotify\.com/((?:track|album|playlist|episode|show|artist)/\w+)` + urlChars + `*`),
		idGroup: 1,
		link:    true,
	},
	{
		kind:      SpanHashtag,
		pattern:   regexp.MustCompile(`(?:^|[^\p{L}\p{N}_&/#])(#([\p{L}\p{N}_]+))`),
		spanGroup: 1,
		idGroup:   2,
	},
	{
		kind:    SpanURL,
		pattern: regexp.MustCompile(`https?://` + urlChars + `+`),
		link:    true,
	},
}

type match struct {
	start, end int
	id         string
}

func (e embed) matches(text string) []match {
	var out []match
	for _, loc := range e.pattern.FindAllStringSubmatchIndex(text, -1) {
		m := match{start: loc[2*e.spanGroup], end: loc[2*e.spanGroup+1]}
		if m.start < 0 {
			continue
		}
		if e.idGroup > 0 && loc[2*e.idGroup] >= 0 {
			m.id = text[loc[2*e.idGroup]:loc[2*e.idGroup+1]]
		}
		if e.link {
			m.end = m.start + len(strings.TrimRight(text[m.start:m.end], ".,;:!?)]}"))
		}
		if m.end > m.start {
			out = append(out, m)
		}
	}
	return out
}

// Classify splits text into spans by pattern matching alone. Concatenating
// the span texts gives back the input.
func Classify(text string) []Span {
	candidates := make([][]match, len(embeds))
	for i, e := range embeds {
		candidates[i] = e.matches(text)
	}

	var spans []Span
	pos := 0
	for {
		best, bestMatch := -1, match{}
		for i := range embeds {
			// Drop matches the cursor has already passed.
			j := sort.Search(len(candidates[i]), func(k int) bool { return candidates[i][k].start >= pos })
			candidates[i] = candidates[i][j:]
			if len(candidates[i]) == 0 {
				continue
			}
			if m := candidates[i][0]; best == -1 || m.start < bestMatch.start {
				best, bestMatch = i, m
			}
		}
		if best == -1 {
			break
		}

		if bestMatch.start > pos {
			spans = append(spans, Span{Kind: SpanText, Text: text[pos:bestMatch.start]})
		}
		spans = append(spans, Span{Kind: embeds[best].kind, Text: text[bestMatch.start:bestMatch.end], EmbedId: bestMatch.id})
		pos = bestMatch.end
	}

	if pos < len(text) {
		spans = append(spans, Span{Kind: SpanText, Text: text[pos:]})
	}
	return spans
}
