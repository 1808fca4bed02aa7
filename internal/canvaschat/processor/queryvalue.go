package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bdobrica/canvaschat/common/retry"
	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
)

const maxDecimals = 6

var valueFormats = map[string]string{
	"number":      "number",
	"numeric":     "number",
	"plain":       "number",
	"currency":    "currency",
	"money":       "currency",
	"dollars":     "currency",
	"percent":     "percent",
	"percentage":  "percent",
	"compact":     "compact",
	"short":       "compact",
	"abbreviated": "compact",
}

// queryValueProcessor binds query-value widgets to a query. Binding runs an
// asynchronous preview of the query so the reply can show the live value.
type queryValueProcessor struct {
	*patternProcessor
}

// QueryValue returns the processor for single-value query widgets.
func QueryValue() Processor {
	return &queryValueProcessor{&patternProcessor{
		name:  "queryValue",
		types: []document.Type{document.TypeQueryValue},
		keywords: []string{
			"query", "bind", "connect", "link", "field", "column", "metric", "format",
			"currency", "percent", "decimal", "prefix", "suffix", "data",
		},
		patterns: slices.Concat(
			bindRules("bind", bindQueryValue),
			[]Pattern{
				P("field-prompt", `\b(?:field|column|metric)`+tail, func(_ Match, pc *Context) *Result {
					q, res := boundQuery(pc, "value")
					if res != nil {
						return res
					}
					return Ask("field", "Which field should be shown?", q.Fields...)
				}),
				P("field", `\b(?:value\s+)?(?:field|column|metric)`+conn+`(?:the\s+)?(?P<field>\S+)$`, func(m Match, pc *Context) *Result {
					q, res := boundQuery(pc, "value")
					if res != nil {
						return res
					}
					f, res := checkField(q, m.Get("field"))
					if res != nil {
						return res
					}
					return PropsPatch(map[string]any{"field": f}, fmt.Sprintf("Showing field %q.", f))
				}),
				P("format-prompt", `\bformat`+tail, func(Match, *Context) *Result {
					return Ask("format", "How should the value be formatted?", "number", "currency", "percent", "compact")
				}),
				P("format", `\bformat`+conn+`(?:as\s+)?(?:an?\s+)?(?P<fmt>[a-z]+)`, setValueFormat),
				P("format-show-as", `\b(?:show|display)\s+(?:it\s+|the\s+value\s+)?as\s+(?:an?\s+)?(?P<fmt>[a-z]+)`, setValueFormat),
				P("decimals-count", `\b(?P<n>\d+|no|zero|one|two|three|four|five|six)\s+decimals?(?:\s+places?)?`, setDecimals),
				P("decimals", `\bdecimals?(?:\s+places?)?`+conn+`(?P<n>\w+)`, setDecimals),
				P("affix-remove", `\b(?:remove|clear|delete|no)\s+(?:the\s+)?(?P<which>prefix|suffix)`, func(m Match, _ *Context) *Result {
					which := strings.ToLower(m.Get("which"))
					return PropsPatch(map[string]any{which: ""}, fmt.Sprintf("Removed the %s.", which))
				}),
				P("affix-prompt", `\b(?P<which>prefix|suffix)`+tail, func(m Match, _ *Context) *Result {
					return Ask("text", fmt.Sprintf("What should the %s be?", strings.ToLower(m.Get("which"))), "$", "€", "%", " units")
				}),
				P("affix", `\b(?P<which>prefix|suffix)`+conn+`(?P<text>.+)$`, func(m Match, _ *Context) *Result {
					which := strings.ToLower(m.Get("which"))
					text := unquote(m.Get("text"))
					return PropsPatch(map[string]any{which: text}, fmt.Sprintf("Set the %s to %q.", which, text))
				}),
			},
		),
		suggestions: []SuggestionGroup{{
			Category: "Query value",
			Examples: []string{
				"bind to query Revenue",
				"set field to total",
				"format as currency",
				"show 2 decimal places",
				"set prefix to $",
			},
		}},
	}}
}

func bindQueryValue(q host.Query, _ *Context) *Result {
	patch := map[string]any{"queryId": q.ID}
	if len(q.Fields) == 1 {
		patch["field"] = q.Fields[0]
	}
	return PropsPatch(patch, boundMessage("value", q))
}

// Transform runs the pattern list and, when the result binds a query,
// previews it through the host. Preview failures other than a missing
// preview are returned as errors.
func (p *queryValueProcessor) Transform(ctx context.Context, text string, pc *Context) (*Result, error) {
	res := Run(p.patterns, text, pc)
	if res == nil || res.Kind != KindPropsPatch || pc.Previewer == nil {
		return res, nil
	}
	id, ok := res.Patch["queryId"].(string)
	if !ok {
		return res, nil
	}

	var value any
	err := retry.Do(ctx, pc.Retry, func() error {
		v, err := pc.Previewer.PreviewQuery(ctx, id)
		if errors.Is(err, host.ErrNotFound) {
			return retry.Permanent(err)
		}
		value = v
		return err
	})
	switch {
	case errors.Is(err, host.ErrNotFound):
		slog.Debug("queryValue: no preview available", "query", id)
		return res, nil
	case err != nil:
		return nil, fmt.Errorf("previewing query %q: %w", id, err)
	}
	res.Patch["previewValue"] = value
	res.Message = fmt.Sprintf("%s Current value: %v.", res.Message, value)
	return res, nil
}

func setValueFormat(m Match, _ *Context) *Result {
	raw := strings.ToLower(m.Get("fmt"))
	f, ok := valueFormats[raw]
	if !ok {
		return Invalid("Unknown format %q. Try number, currency, percent or compact.", raw)
	}
	return PropsPatch(map[string]any{"format": f}, fmt.Sprintf("Formatting the value as %s.", f))
}

func setDecimals(m Match, _ *Context) *Result {
	raw := strings.ToLower(m.Get("n"))
	n, ok := grammar.ParseInt(raw)
	if raw == "no" {
		n, ok = 0, true
	}
	if !ok || n > maxDecimals {
		return Invalid("Decimals must be a number between 0 and %d, not %q.", maxDecimals, raw)
	}
	return PropsPatch(map[string]any{"decimals": n}, fmt.Sprintf("Showing %d decimal places.", n))
}
