package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
)

var chartTypes = []string{"bar", "line", "pie", "area", "scatter", "donut"}

var chartAliases = map[string]string{
	"column":      "bar",
	"columns":     "bar",
	"bars":        "bar",
	"lines":       "line",
	"doughnut":    "donut",
	"ring":        "donut",
	"scatterplot": "scatter",
	"dot":         "scatter",
}

// Chart returns the processor for charts.
func Chart() Processor {
	return &patternProcessor{
		name:  "chart",
		types: []document.Type{document.TypeChart},
		keywords: []string{
			"chart", "type", "title", "legend", "axis", "field", "color",
			"query", "bind", "connect", "series", "bar", "line", "pie", "area", "scatter", "donut", "graph",
		},
		patterns: slices.Concat(
			[]Pattern{
				P("type-prompt", `\b(?:chart\s+)?type`+tail, askChartType),
				P("type", `\b(?:chart\s+)?type`+conn+`(?:an?\s+)?(?P<ct>[a-z]+)(?:\s+(?:chart|graph))?$`, setChartType),
				P("type-convert", `\b(?:make|turn|change|convert|switch)\s+(?:it|this|the\s+(?:chart|graph))\s+(?:in)?to\s+(?:an?\s+)?(?P<ct>[a-z]+)(?:\s+(?:chart|graph))?$`, setChartType),
				P("type-use", `\b(?:use|show\s+as|display\s+as|make\s+(?:it|this)|switch\s+to)\s+(?:an?\s+)?(?P<ct>[a-z]+)\s+(?:chart|graph)`, setChartType),
				P("title-remove", `\b(?:remove|hide|clear|delete)\s+(?:the\s+)?(?:chart\s+)?title`, set(KindPropsPatch, map[string]any{"title": ""}, "Removed the chart title.")),
				P("title", `\b(?:chart\s+)?title\s+(?:to|as)\s+(?P<text>.+)$`, setChartTitle),
				P("title-it", `\b(?:title|call|name)\s+(?:it|the\s+chart)\s+(?P<text>.+)$`, setChartTitle),
			},
			toggle("legend",
				`\b(?:hide|remove|turn\s+off|disable|no)\s+(?:the\s+)?legend`,
				`\b(?:show|add|turn\s+on|enable|display)\s+(?:the\s+|a\s+)?legend`,
				KindPropsPatch, "showLegend"),
			[]Pattern{
				P("x-field", `\b(?:x(?:-|\s)?axis|x\s+field|horizontal\s+axis)(?:\s+field)?`+conn+`(?:the\s+)?(?:field\s+|column\s+)?(?P<field>\S+)$`, setAxisField("xField", "x-axis")),
				P("y-field", `\b(?:y(?:-|\s)?axis|y\s+field|vertical\s+axis|values?)(?:\s+field)?`+conn+`(?:the\s+)?(?:field\s+|column\s+)?(?P<field>\S+)$`, setAxisField("yField", "y-axis")),
				P("axis-prompt", `\b(?P<axis>x|y)(?:-|\s)?axis(?:\s+field)?`+tail, func(m Match, pc *Context) *Result {
					q, res := boundQuery(pc, "chart")
					if res != nil {
						return res
					}
					return Ask("field", fmt.Sprintf("Which field should the %s-axis use?", strings.ToLower(m.Get("axis"))), q.Fields...)
				}),
				P("series-colors-prompt", `\b(?:series|bar|line|slice|chart)\s+colou?rs?`+tail, askColor("series")),
				P("series-colors", `\b(?:series|bar|line|slice|chart)\s+colou?rs?`+conn+`(?P<list>.+)$`, setSeriesColors),
			},
			bindRules("bind", func(q host.Query, _ *Context) *Result {
				return PropsPatch(map[string]any{"queryId": q.ID}, boundMessage("chart", q))
			}),
		),
		suggestions: []SuggestionGroup{{
			Category: "Chart",
			Examples: []string{
				"change chart type to line",
				"set the title to Monthly revenue",
				"hide the legend",
				"bind to query Sales",
				"set x-axis to month",
				"set series colors to red, green and blue",
			},
		}},
	}
}

func askChartType(Match, *Context) *Result {
	return Ask("chart type", "Which kind of chart?", chartTypes...)
}

func setChartType(m Match, _ *Context) *Result {
	raw := strings.ToLower(m.Get("ct"))
	ct := raw
	if alias, ok := chartAliases[raw]; ok {
		ct = alias
	}
	if !slices.Contains(chartTypes, ct) {
		return Invalid("Unsupported chart type %q. Try one of: %s.", raw, strings.Join(chartTypes, ", "))
	}
	return PropsPatch(map[string]any{"chartType": ct}, fmt.Sprintf("Changed the chart to %s %s chart.", article(ct), ct))
}

func setChartTitle(m Match, _ *Context) *Result {
	title := unquote(m.Get("text"))
	return PropsPatch(map[string]any{"title": title}, fmt.Sprintf("Set the chart title to %q.", title))
}

func setAxisField(key, axis string) BuildFunc {
	return func(m Match, pc *Context) *Result {
		q, res := boundQuery(pc, "chart")
		if res != nil {
			return res
		}
		f, res := checkField(q, m.Get("field"))
		if res != nil {
			return res
		}
		return PropsPatch(map[string]any{key: f}, fmt.Sprintf("The %s now shows %q.", axis, f))
	}
}

func setSeriesColors(m Match, _ *Context) *Result {
	var colors []string
	for _, w := range words(m.Get("list")) {
		c, ok := grammar.ResolveColor(w)
		if !ok {
			return Invalid("I don't know the color %q.", w)
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		return askColor("series")(m, nil)
	}
	return PropsPatch(map[string]any{"colors": anyList(colors)}, fmt.Sprintf("Updated series colors (%d).", len(colors)))
}
