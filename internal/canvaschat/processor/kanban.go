package processor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

const defaultColumnWidth = 220

// Kanban returns the processor for kanban boards: task and column colors,
// adding, removing and renaming columns, and column width.
func Kanban() Processor {
	return &patternProcessor{
		name:     "kanban",
		types:    []document.Type{document.TypeKanban},
		keywords: []string{"task", "column", "lane", "card", "board", "rename"},
		patterns: slices.Concat(
			colorRule("task-text", `tasks?(?:\s+cards?)?\s+(?:text|font)(?:\s+colou?r)?`, KindPropsPatch, "taskTextColor", "task text"),
			colorRule("task-background", `tasks?(?:\s+cards?)?\s+(?:background|bg|fill)(?:\s+colou?r)?|(?:task|card)\s+colou?r`, KindPropsPatch, "taskBackgroundColor", "tasks"),
			colorRule("column-title", `(?:columns?|lanes?)\s+(?:titles?|headers?|headings?)\s+colou?r`, KindPropsPatch, "columnTitleColor", "column titles"),
			colorRule("column-background", `(?:columns?|lanes?)\s+(?:background|bg|fill)(?:\s+colou?r)?|(?:columns?|lanes?)\s+colou?r`, KindPropsPatch, "columnBackgroundColor", "columns"),
			lengthRule("column-width", `(?:columns?|lanes?)\s+width`, KindPropsPatch, "columnWidth", "columns"),
			[]Pattern{
				P("column-wider", `\b(?:columns?|lanes?)\s+(?P<rel>wider|narrower)|\b(?P<rel2>wider|narrower)\s+(?:columns?|lanes?)`, scaleColumns),
				P("add-column-prompt", `\b(?:add|create|insert)\s+(?:an?\s+)?(?:new\s+|another\s+)?(?:column|lane)$`, func(Match, *Context) *Result {
					return Ask("name", "What should the new column be called?")
				}),
				P("add-column", `\b(?:add|create|insert)\s+(?:an?\s+)?(?:new\s+|another\s+)?(?:column|lane)(?:\s+(?:called|named|titled|for))?[\s:]+(?P<title>.+)$`, addColumn),
				P("remove-column", `\b(?:remove|delete|drop)\s+(?:the\s+)?(?:(?:column|lane)\s+(?P<title>.+)|(?P<title2>.+?)\s+(?:column|lane))$`, removeColumn),
				P("rename-column", `\brename\s+(?:the\s+)?(?:(?:column|lane)\s+)?(?P<from>.+?)(?:\s+(?:column|lane))?\s+to\s+(?P<to>.+)$`, renameColumn),
			},
		),
		suggestions: []SuggestionGroup{{
			Category: "Kanban",
			Examples: []string{
				"change tasks background to #111111",
				"set column color to light gray",
				"add a column called Review",
				"rename In Progress to Doing",
				"remove the Done column",
				"make columns wider",
			},
		}},
	}
}

// columns returns a copy of the board's columns.
func columns(pc *Context) []map[string]any {
	var out []map[string]any
	for _, c := range objects(pc.Prop("columns")) {
		out = append(out, document.CloneMap(c))
	}
	return out
}

func findColumn(cols []map[string]any, title string) int {
	t := unquote(title)
	for i, c := range cols {
		if s, _ := c["title"].(string); strings.EqualFold(s, t) {
			return i
		}
		if s, _ := c["id"].(string); s == t || s == slug(t) {
			return i
		}
	}
	return -1
}

func columnNames(cols []map[string]any) string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if s, _ := c["title"].(string); s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, ", ")
}

func addColumn(m Match, pc *Context) *Result {
	title := unquote(m.Get("title"))
	if title == "" {
		return Ask("name", "What should the new column be called?")
	}
	cols := columns(pc)
	if findColumn(cols, title) >= 0 {
		return Invalid("There is already a column called %q.", title)
	}
	id := slug(title)
	if id == "" {
		id = fmt.Sprintf("column-%d", len(cols)+1)
	}
	cols = append(cols, map[string]any{"id": id, "title": title})
	return PropsPatch(map[string]any{"columns": anyList(cols)}, fmt.Sprintf("Added column %q.", title))
}

func removeColumn(m Match, pc *Context) *Result {
	title := m.First("title", "title2")
	cols := columns(pc)
	i := findColumn(cols, title)
	if i < 0 {
		return Invalid("There is no column called %q. Columns: %s.", unquote(title), columnNames(cols))
	}
	removed, _ := cols[i]["title"].(string)
	cols = slices.Delete(cols, i, i+1)
	return PropsPatch(map[string]any{"columns": anyList(cols)}, fmt.Sprintf("Removed column %q.", removed))
}

func renameColumn(m Match, pc *Context) *Result {
	from, to := m.Get("from"), unquote(m.Get("to"))
	cols := columns(pc)
	i := findColumn(cols, from)
	if i < 0 {
		return Invalid("There is no column called %q. Columns: %s.", unquote(from), columnNames(cols))
	}
	if to == "" {
		return Ask("name", fmt.Sprintf("What should %q be renamed to?", unquote(from)))
	}
	if j := findColumn(cols, to); j >= 0 && j != i {
		return Invalid("There is already a column called %q.", to)
	}
	cols[i]["title"] = to
	return PropsPatch(map[string]any{"columns": anyList(cols)}, fmt.Sprintf("Renamed column %q to %q.", unquote(from), to))
}

func scaleColumns(m Match, pc *Context) *Result {
	factor := grammar.GrowFactor
	if strings.EqualFold(m.First("rel", "rel2"), "narrower") {
		factor = grammar.ShrinkFactor
	}
	v := grammar.Scale(pc.Prop("columnWidth"), defaultColumnWidth, factor)
	return PropsPatch(map[string]any{"columnWidth": v}, fmt.Sprintf("Changed column width to %s.", v))
}
