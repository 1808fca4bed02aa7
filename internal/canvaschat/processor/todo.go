package processor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
)

// Todo returns the processor for todo lists: title text and color, adding
// and completing items, clearing completed items, checkbox color and hiding
// completed items.
func Todo() Processor {
	return &patternProcessor{
		name:     "todo",
		types:    []document.Type{document.TypeTodo},
		keywords: []string{"title", "task", "item", "todo", "to-do", "complete", "check", "done", "finish"},
		patterns: slices.Concat(
			colorRule("title-color", `(?:list\s+)?title\s+colou?r`, KindPropsPatch, "titleColor", "title"),
			colorRule("checkbox-color", `check\s*box(?:es)?(?:\s+colou?r)?|check\s*marks?(?:\s+colou?r)?`, KindPropsPatch, "checkboxColor", "checkboxes"),
			[]Pattern{
				P("title-text", `\b(?:set|change|rename|update)\s+(?:the\s+)?(?:list\s+)?title\s+(?:to|as)\s+(?P<text>.+)$`, setTodoTitle),
				P("title-text-prompt", `\b(?:set|change|rename|update)\s+(?:the\s+)?(?:list\s+)?title(?:\s+to)?$`, func(Match, *Context) *Result {
					return Ask("title", "What should the list be called?")
				}),
				P("hide-completed", `\b(?P<verb>hide|show)\s+(?:the\s+)?(?:completed|done|finished|checked)(?:\s+(?:tasks|items|todos))?`, func(m Match, _ *Context) *Result {
					hide := strings.EqualFold(m.Get("verb"), "hide")
					msg := "Completed items are now shown."
					if hide {
						msg = "Completed items are now hidden."
					}
					return PropsPatch(map[string]any{"hideCompleted": hide}, msg)
				}),
				P("clear-completed", `\b(?:clear|remove|delete)\s+(?:all\s+)?(?:the\s+)?(?:completed|done|finished|checked)(?:\s+(?:tasks|items|todos))?`, clearCompleted),
				P("add-item-prompt", `\badd\s+(?:an?\s+)?(?:new\s+)?(?:task|item|todo|to-do)$`, func(Match, *Context) *Result {
					return Ask("task", "What is the task?")
				}),
				P("add-item", `\badd\s+(?:an?\s+)?(?:new\s+)?(?:task|item|todo|to-do)(?:\s+(?:called|named|to))?[\s:]+(?P<text>.+)$`, addTodoItem),
				P("complete-item", `\b(?:complete|check\s+off|check|finish|tick(?:\s+off)?|mark)\s+(?:the\s+)?(?:task\s+|item\s+)?(?P<text>.+?)(?:\s+as\s+(?:done|complete|completed|finished))?$`, completeTodoItem),
			},
		),
		suggestions: []SuggestionGroup{{
			Category: "Todo list",
			Examples: []string{
				"change title color to blue",
				"set the title to Groceries",
				"add a task buy milk",
				"mark buy milk as done",
				"clear completed tasks",
				"hide completed items",
			},
		}},
	}
}

func todoItems(pc *Context) []map[string]any {
	var out []map[string]any
	for _, it := range objects(pc.Prop("items")) {
		out = append(out, document.CloneMap(it))
	}
	return out
}

// nextTodoID returns "task-N" with N one past the highest existing number.
func nextTodoID(items []map[string]any) string {
	highest := 0
	for _, it := range items {
		id, _ := it["id"].(string)
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "task-")); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("task-%d", max(highest, len(items))+1)
}

func setTodoTitle(m Match, _ *Context) *Result {
	title := unquote(m.Get("text"))
	if title == "" {
		return Ask("title", "What should the list be called?")
	}
	return PropsPatch(map[string]any{"title": title}, fmt.Sprintf("Renamed the list to %q.", title))
}

func addTodoItem(m Match, pc *Context) *Result {
	text := unquote(m.Get("text"))
	if text == "" {
		return Ask("task", "What is the task?")
	}
	items := todoItems(pc)
	items = append(items, map[string]any{"id": nextTodoID(items), "text": text, "done": false})
	return PropsPatch(map[string]any{"items": anyList(items)}, fmt.Sprintf("Added %q to the list.", text))
}

func completeTodoItem(m Match, pc *Context) *Result {
	ref := unquote(m.Get("text"))
	items := todoItems(pc)
	i := findTodoItem(items, ref)
	if i < 0 {
		return Invalid("There is no task %q on the list.", ref)
	}
	items[i]["done"] = true
	text, _ := items[i]["text"].(string)
	return PropsPatch(map[string]any{"items": anyList(items)}, fmt.Sprintf("Marked %q as done.", text))
}

// findTodoItem resolves a reference by text, ID, 1-based position or ordinal.
func findTodoItem(items []map[string]any, ref string) int {
	for i, it := range items {
		if s, _ := it["text"].(string); strings.EqualFold(s, ref) {
			return i
		}
		if s, _ := it["id"].(string); s == ref {
			return i
		}
	}
	r := strings.ToLower(ref)
	for _, noun := range []string{"task", "item", "todo", "to-do", "one"} {
		r = strings.TrimSuffix(r, " "+noun)
		r = strings.TrimPrefix(r, noun+" ")
	}
	r = strings.TrimPrefix(r, "number ")
	switch r {
	case "first":
		r = "1"
	case "second":
		r = "2"
	case "third":
		r = "3"
	case "fourth":
		r = "4"
	case "fifth":
		r = "5"
	case "last":
		r = strconv.Itoa(len(items))
	}
	if n, ok := grammar.ParseInt(r); ok && n >= 1 && n <= len(items) {
		return n - 1
	}
	return -1
}

func clearCompleted(_ Match, pc *Context) *Result {
	items := todoItems(pc)
	kept := slices.DeleteFunc(items, func(it map[string]any) bool {
		done, _ := it["done"].(bool)
		return done
	})
	return PropsPatch(map[string]any{"items": anyList(kept)}, "Cleared completed tasks.")
}
