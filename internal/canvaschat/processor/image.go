package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
)

const urlExpr = `(?P<url>(?:https?://|/|data:)\S+|"[^"]+"|'[^']+'|\S+\.(?:png|jpe?g|gif|svg|webp|mp4|webm|mov))`

var objectFits = map[string]string{
	"cover":      "cover",
	"contain":    "contain",
	"fill":       "fill",
	"stretch":    "fill",
	"none":       "none",
	"scale down": "scale-down",
	"scale-down": "scale-down",
}

// Image returns the processor for images: source, alt text, object fit,
// rounded corners, circle crop and grayscale.
func Image() Processor {
	return &patternProcessor{
		name:  "image",
		types: []document.Type{document.TypeImage},
		keywords: []string{
			"src", "source", "url", "http", "/", "alt", "fit", "cover", "contain", "stretch",
			"round", "circle", "circular", "gray", "grey", "black and white", "filter", "color",
		},
		patterns: slices.Concat(
			[]Pattern{
				P("src-prompt", `\b(?:image\s+)?(?:src|source|url|link)`+tail, func(Match, *Context) *Result {
					return Ask("url", "What is the image URL?")
				}),
				P("src", `\b(?:image\s+)?(?:src|source|url|link)`+conn+urlExpr, setURL(KindPropsPatch, "src", "the image source")),
				P("src-use", `\b(?:use|show|load|display|change\s+(?:it|the\s+image)\s+to)\s+(?:the\s+)?(?:image\s+)?(?:at\s+|from\s+)?(?P<url>https?://\S+)`, setURL(KindPropsPatch, "src", "the image source")),
				P("alt-prompt", `\b(?:alt(?:ernative)?(?:\s+text)?|description)`+tail, func(Match, *Context) *Result {
					return Ask("text", "How should the image be described?")
				}),
				P("alt", `\b(?:alt(?:ernative)?(?:\s+text)?|description)`+conn+`(?P<text>.+)$`, func(m Match, _ *Context) *Result {
					alt := unquote(m.Get("text"))
					return PropsPatch(map[string]any{"alt": alt}, fmt.Sprintf("Set the alt text to %q.", alt))
				}),
				P("fit", `\b(?:object[-\s]?fit|fit|sizing)`+conn+`(?:to\s+)?(?P<fit>[a-z]+(?:[-\s]down)?)`, setObjectFit),
				P("fit-verb", `\b(?P<fit>cover|contain|stretch)\s+(?:it|the\s+(?:image|box|area|container))`, setObjectFit),
				P("rounded", `\b(?:rounded|round(?:ed)?\s+(?:the\s+)?corners)`, set(KindStylePatch, map[string]any{"borderRadius": "8px"}, "Rounded the corners.")),
				P("circle", `\b(?:circle|circular|round)\b`, set(KindStylePatch, map[string]any{"borderRadius": "50%", "aspectRatio": "1 / 1"}, "Cropped the image to a circle.")),
				P("grayscale-off", `\b(?:remove|clear|no)\s+(?:the\s+)?(?:filter|gr[ae]yscale)|\b(?:in|back\s+to|full)\s+colou?r\b`, set(KindStylePatch, map[string]any{"filter": "none"}, "Removed the filter.")),
				P("grayscale", `\b(?:gr[ae]y\s*scale|black\s+and\s+white|b&w|monochrome)`, set(KindStylePatch, map[string]any{"filter": "grayscale(100%)"}, "Made the image grayscale.")),
			},
		),
		suggestions: []SuggestionGroup{{
			Category: "Image",
			Examples: []string{
				"set source to https://example.com/logo.png",
				"set alt text to Company logo",
				"fit to contain",
				"round the corners",
				"make it a circle",
				"make it black and white",
			},
		}},
	}
}

func setObjectFit(m Match, _ *Context) *Result {
	raw := strings.ToLower(strings.Join(strings.Fields(m.Get("fit")), " "))
	fit, ok := objectFits[raw]
	if !ok {
		return Invalid("Unknown fit %q. Try cover, contain, fill or none.", raw)
	}
	return StylePatch(map[string]any{"objectFit": fit}, fmt.Sprintf("The image now uses %s fit.", fit))
}
