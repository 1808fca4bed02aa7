package processor

import (
	"fmt"
	"strings"

	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
)

const bindVerb = `(?:bind|connect|link|hook\s+up|wire)`

var (
	bindPromptExpr = `\b` + bindVerb + `\s+(?:it\s+|this\s+|the\s+\w+\s+)?(?:up\s+)?to\s+(?:an?\s+|the\s+)?(?:data\s+)?(?:query|data|data\s*source)$`
	bindExpr       = `\b` + bindVerb + `\s+(?:it\s+|this\s+|the\s+\w+\s+)?(?:up\s+)?to\s+(?:the\s+)?(?:query\s+)?(?P<q>.+?)(?:\s+query)?$`
	useQueryExpr   = `\b(?:use|show|display)\s+(?:data\s+from\s+)?(?:the\s+)?query\s+(?P<q>.+)$`
)

// bindRules resolves a query name against the data snapshot and hands the
// query to bind. Missing names prompt with the available queries.
func bindRules(name string, bind func(q host.Query, pc *Context) *Result) []Pattern {
	return []Pattern{
		P(name+"-prompt", bindPromptExpr, askQuery),
		P(name, bindExpr, resolveQuery(bind)),
		P(name+"-use", useQueryExpr, resolveQuery(bind)),
	}
}

func askQuery(_ Match, pc *Context) *Result {
	if len(pc.Data.Queries) == 0 {
		return Unavailable("There are no queries in this workspace yet. Create a query first.")
	}
	return Ask("query", "Which query should I use?", pc.Data.QueryNames()...)
}

func resolveQuery(bind func(q host.Query, pc *Context) *Result) BuildFunc {
	return func(m Match, pc *Context) *Result {
		name := unquote(m.Get("q"))
		q, ok := pc.Data.QueryByName(name)
		if !ok {
			if len(pc.Data.Queries) == 0 {
				return Unavailable("There are no queries in this workspace yet. Create a query first.")
			}
			return Invalid("There is no query called %q. Available queries: %s.", name, strings.Join(pc.Data.QueryNames(), ", "))
		}
		return bind(q, pc)
	}
}

// boundQuery returns the query the selected component is bound to.
func boundQuery(pc *Context, what string) (host.Query, *Result) {
	id := pc.PropString("queryId")
	if id == "" {
		return host.Query{}, Unavailable("Bind the %s to a query first.", what)
	}
	q, ok := pc.Data.QueryByID(id)
	if !ok {
		return host.Query{}, Unavailable("The %s is bound to query %q, which no longer exists.", what, id)
	}
	return q, nil
}

// checkField validates a field name against a bound query. Queries without a
// known schema accept any field.
func checkField(q host.Query, field string) (string, *Result) {
	field = unquote(field)
	if len(q.Fields) == 0 {
		return field, nil
	}
	f, ok := q.HasField(field)
	if !ok {
		return "", Invalid("Query %q has no field %q. Fields: %s.", q.Name, field, strings.Join(q.Fields, ", "))
	}
	return f, nil
}

func boundMessage(what string, q host.Query) string {
	return fmt.Sprintf("Bound the %s to query %q.", what, q.Name)
}
