package processor

import (
	"slices"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
)

// Video returns the processor for video players.
func Video() Processor {
	return &patternProcessor{
		name:  "video",
		types: []document.Type{document.TypeVideo},
		keywords: []string{
			"src", "source", "url", "http", "/", "autoplay", "auto play", "auto-play", "loop",
			"mute", "sound", "controls", "poster", "thumbnail",
		},
		patterns: slices.Concat(
			[]Pattern{
				P("poster-prompt", `\b(?:poster|thumbnail|cover)(?:\s+image)?`+tail, func(Match, *Context) *Result {
					return Ask("url", "What is the poster image URL?")
				}),
				P("poster", `\b(?:poster|thumbnail|cover)(?:\s+image)?`+conn+urlExpr, setURL(KindPropsPatch, "poster", "the poster image")),
				P("src-prompt", `\b(?:video\s+)?(?:src|source|url|link)`+tail, func(Match, *Context) *Result {
					return Ask("url", "What is the video URL?")
				}),
				P("src", `\b(?:video\s+)?(?:src|source|url|link)`+conn+urlExpr, setURL(KindPropsPatch, "src", "the video source")),
				P("src-use", `\b(?:use|play|load|show)\s+(?:the\s+)?(?:video\s+)?(?:at\s+|from\s+)?(?P<url>https?://\S+)`, setURL(KindPropsPatch, "src", "the video source")),
			},
			toggle("autoplay",
				`\b(?:disable|turn\s+off|no|stop|don'?t|do\s+not)\s+(?:the\s+)?auto[-\s]?play(?:ing)?`,
				`\bauto[-\s]?play`,
				KindPropsPatch, "autoplay"),
			toggle("loop",
				`\b(?:disable|turn\s+off|no|stop|don'?t|do\s+not)\s+(?:the\s+)?loop(?:ing)?`,
				`\bloop`,
				KindPropsPatch, "loop"),
			toggle("muted",
				`\bunmute|\b(?:turn\s+on|enable)\s+(?:the\s+)?sound|\bwith\s+sound`,
				`\bmute|\b(?:turn\s+off|disable|no)\s+(?:the\s+)?sound|\bwithout\s+sound`,
				KindPropsPatch, "muted"),
			toggle("controls",
				`\b(?:hide|remove|disable|turn\s+off|no)\s+(?:the\s+)?(?:player\s+)?controls`,
				`\b(?:show|add|enable|turn\s+on)\s+(?:the\s+)?(?:player\s+)?controls`,
				KindPropsPatch, "controls"),
		),
		suggestions: []SuggestionGroup{{
			Category: "Video",
			Examples: []string{
				"set source to https://example.com/intro.mp4",
				"enable autoplay",
				"loop the video",
				"mute it",
				"hide the controls",
				"set poster to https://example.com/poster.jpg",
			},
		}},
	}
}
