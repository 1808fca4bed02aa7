package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
)

const maxPageSize = 500

// Table returns the processor for data tables.
func Table() Processor {
	return &patternProcessor{
		name:  "table",
		types: []document.Type{document.TypeTable},
		keywords: []string{
			"header", "border", "strip", "zebra", "page", "pagination", "search",
			"column", "query", "bind", "connect", "link", "rows", "data",
		},
		patterns: slices.Concat(
			colorRule("header-background", `headers?(?:\s+row)?\s+(?:background|bg|fill)(?:\s+colou?r)?`, KindPropsPatch, "headerBackgroundColor", "header background"),
			colorRule("header-text", `headers?(?:\s+row)?(?:\s+(?:text|font))?\s+colou?r`, KindPropsPatch, "headerTextColor", "header text"),
			colorRule("border-color", `(?:table\s+|cell\s+|grid\s+)?borders?(?:\s+colou?r)`, KindPropsPatch, "borderColor", "table border"),
			toggle("striped",
				`\b(?:disable|remove|turn\s+off|no|without)\s+(?:the\s+)?(?:row\s+)?(?:strip(?:es|ed|ing)|zebra)`,
				`\b(?:enable|add|turn\s+on|use|with)\s+(?:row\s+)?(?:strip(?:es|ed|ing)|zebra)|\bmake\s+(?:it\s+|the\s+table\s+|the\s+rows\s+)?striped|\bzebra`,
				KindPropsPatch, "striped"),
			toggle("pagination",
				`\b(?:disable|remove|turn\s+off|hide|no)\s+(?:the\s+)?(?:pagination|paging)`,
				`\b(?:enable|add|turn\s+on|show|use)\s+(?:the\s+)?(?:pagination|paging)|\bpaginate`,
				KindPropsPatch, "pagination"),
			toggle("searchable",
				`\b(?:disable|remove|turn\s+off|hide|no)\s+(?:the\s+)?search(?:\s+(?:box|bar|field))?`,
				`\b(?:enable|add|turn\s+on|show)\s+(?:an?\s+|the\s+)?search(?:\s+(?:box|bar|field))?|\bmake\s+(?:it\s+)?searchable`,
				KindPropsPatch, "searchable"),
			[]Pattern{
				P("page-size-prompt", `\b(?:page\s+size|rows\s+per\s+page)`+tail, func(Match, *Context) *Result {
					return Ask("number", "How many rows per page?", "10", "25", "50", "100")
				}),
				P("page-size", `\b(?:page\s+size|rows\s+per\s+page|page\s+length)`+conn+`(?P<n>\w+)`, setPageSize),
				P("page-size-show", `\bshow\s+(?P<n>\w+)\s+rows(?:\s+(?:per|a|each)\s+page)?`, setPageSize),
				P("hide-column", `\bhide\s+(?:the\s+)?(?:(?:column|field)\s+(?P<col>.+)|(?P<col2>.+?)\s+(?:column|field))$`, hideColumn(true)),
				P("show-column", `\b(?:show|unhide)\s+(?:the\s+)?(?:(?:column|field)\s+(?P<col>.+)|(?P<col2>.+?)\s+(?:column|field))$`, hideColumn(false)),
				P("show-all-columns", `\b(?:show|unhide)\s+all\s+(?:the\s+)?columns`, set(KindPropsPatch, map[string]any{"hiddenColumns": []any{}}, "All columns are visible.")),
			},
			bindRules("bind", func(q host.Query, _ *Context) *Result {
				return PropsPatch(map[string]any{"queryId": q.ID}, boundMessage("table", q))
			}),
		),
		suggestions: []SuggestionGroup{{
			Category: "Table",
			Examples: []string{
				"set header background to navy",
				"change border color to #e2e8f0",
				"enable striped rows",
				"show 25 rows per page",
				"hide the id column",
				"bind to query Sales",
			},
		}},
	}
}

func setPageSize(m Match, _ *Context) *Result {
	raw := m.Get("n")
	n, ok := grammar.ParseInt(raw)
	if !ok || n < 1 || n > maxPageSize {
		return Invalid("Page size must be a number between 1 and %d, not %q.", maxPageSize, raw)
	}
	return PropsPatch(map[string]any{"pageSize": n}, fmt.Sprintf("Showing %d rows per page.", n))
}

func hideColumn(hide bool) BuildFunc {
	return func(m Match, pc *Context) *Result {
		col := unquote(m.First("col", "col2"))
		if pc.PropString("queryId") != "" {
			q, res := boundQuery(pc, "table")
			if res != nil {
				return res
			}
			f, res := checkField(q, col)
			if res != nil {
				return res
			}
			col = f
		}
		hidden := strs(pc.Prop("hiddenColumns"))
		i := slices.IndexFunc(hidden, func(s string) bool { return strings.EqualFold(s, col) })
		switch {
		case hide && i < 0:
			hidden = append(hidden, col)
		case !hide && i >= 0:
			hidden = slices.Delete(hidden, i, i+1)
		}
		verb := "Hid"
		if !hide {
			verb = "Showing"
		}
		return PropsPatch(map[string]any{"hiddenColumns": anyList(hidden)}, fmt.Sprintf("%s column %q.", verb, col))
	}
}
