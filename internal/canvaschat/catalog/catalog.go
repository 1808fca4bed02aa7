// Package catalog holds the static list of component types the chat can
// create, their default style and props, and optional JSON Schemas that
// props patches are validated against.
//
// The catalog is a YAML document read from an fs.FS. The built-in catalog is
// embedded; operators may point the service at their own file instead.
//
//	cat, err := catalog.Load(os.DirFS("/etc/canvaschat"), "components.yaml")
//	m, ok := cat.Match("add a kanban board")
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
)

//go:embed components.yaml
var builtin embed.FS

// DefaultFile is the name of the embedded catalog document.
const DefaultFile = "components.yaml"

// Verbs are the action verbs that introduce a creation command.
var Verbs = []string{"add", "create", "insert", "place", "put", "new", "make", "build", "drop", "include", "append"}

// fillers may sit between the verb and the component name.
var fillers = []string{"a", "an", "new", "another", "one", "some", "simple", "small", "large", "big", "empty", "blank", "primary", "secondary"}

// Defaults is the initial style and props of a freshly created component.
type Defaults struct {
	Style map[string]any `yaml:"style" json:"style"`
	Props map[string]any `yaml:"props" json:"props"`
}

// Entry describes one creatable component type.
type Entry struct {
	Type      document.Type `yaml:"type" json:"type"`
	Name      string        `yaml:"name" json:"name"`
	Synonyms  []string      `yaml:"synonyms" json:"synonyms,omitempty"`
	Creatable *bool         `yaml:"creatable" json:"-"`
	Defaults  Defaults      `yaml:"defaults" json:"defaults"`
	Schema    string        `yaml:"schema" json:"-"`

	// Derived at load time.
	Container bool     `yaml:"-" json:"container"`
	Variants  []string `yaml:"-" json:"variants"`

	compiled *jsonschema.Schema
	expr     *regexp.Regexp
}

// IsCreatable reports whether the fallback may create this type. Entries are
// creatable unless they say otherwise.
func (e *Entry) IsCreatable() bool {
	return e.Creatable == nil || *e.Creatable
}

// Catalog is an ordered, immutable set of entries.
type Catalog struct {
	entries []*Entry
	byType  map[document.Type]*Entry
}

// Match is the outcome of a successful creation match.
type Match struct {
	Entry   *Entry
	Verb    string
	Variant string
}

// Default loads the embedded catalog. It panics if the embedded document is
// invalid, which only a broken build can cause.
func Default() *Catalog {
	c, err := Load(builtin, DefaultFile)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded %s: %v", DefaultFile, err))
	}
	return c
}

// Load reads and validates a catalog document from root.
func Load(root fs.FS, name string) (*Catalog, error) {
	raw, err := fs.ReadFile(root, name)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", name, err)
	}
	return Parse(raw)
}

// Parse builds a catalog from YAML. Every entry's schema is compiled and its
// default props validated against it.
func Parse(raw []byte) (*Catalog, error) {
	var entries []*Entry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog: no entries")
	}

	c := &Catalog{byType: make(map[document.Type]*Entry, len(entries))}
	for i, e := range entries {
		if e.Type == "" || strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("catalog: entry %d: type and name are required", i)
		}
		if _, dup := c.byType[e.Type]; dup {
			return nil, fmt.Errorf("catalog: duplicate entry for type %q", e.Type)
		}
		if e.Defaults.Style == nil {
			e.Defaults.Style = map[string]any{}
		}
		if e.Defaults.Props == nil {
			e.Defaults.Props = map[string]any{}
		}
		e.Container = e.Type.IsContainer()
		e.Variants = expandVariants(append([]string{e.Name}, e.Synonyms...))
		e.expr = compileMatcher(e.Variants)

		if strings.TrimSpace(e.Schema) != "" {
			compiled, err := compileSchema(e.Type, e.Schema)
			if err != nil {
				return nil, err
			}
			e.compiled = compiled
			if err := validate(compiled, e.Defaults.Props); err != nil {
				return nil, fmt.Errorf("catalog: %s defaults: %w", e.Type, err)
			}
		}

		c.entries = append(c.entries, e)
		c.byType[e.Type] = e
	}
	return c, nil
}

func compileSchema(t document.Type, schema string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	schemaURL := "https://canvaschat.schemas.local/props/" + string(t) + ".schema.json"
	if err := c.AddResource(schemaURL, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("catalog: %s: failed to load schema: %w", t, err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: failed to compile schema: %w", t, err)
	}
	return compiled, nil
}

// validate runs props through a JSON round trip first so typed Go values
// ([]string, nested structs) reach the validator as plain JSON values.
func validate(s *jsonschema.Schema, props map[string]any) error {
	raw, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("encoding props: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decoding props: %w", err)
	}
	return s.Validate(doc)
}

// Entries returns the entries in declared order.
func (c *Catalog) Entries() []*Entry {
	return append([]*Entry(nil), c.entries...)
}

// Lookup returns the entry for a component type.
func (c *Catalog) Lookup(t document.Type) (*Entry, bool) {
	e, ok := c.byType[t]
	return e, ok
}

// Resolve finds the entry one of whose variants equals name, ignoring case,
// surrounding articles and extra whitespace.
func (c *Catalog) Resolve(name string) (*Entry, bool) {
	n := strings.ToLower(strings.Join(strings.Fields(name), " "))
	for _, f := range []string{"a ", "an ", "the ", "new "} {
		n = strings.TrimPrefix(n, f)
	}
	for _, e := range c.entries {
		for _, v := range e.Variants {
			if v == n {
				return e, true
			}
		}
	}
	return nil, false
}

// Match finds the first creatable entry, in declared order, whose
// "<verb> [fillers] <variant>" phrase occurs in text.
func (c *Catalog) Match(text string) (Match, bool) {
	for _, e := range c.entries {
		if !e.IsCreatable() {
			continue
		}
		sm := e.expr.FindStringSubmatch(text)
		if sm == nil {
			continue
		}
		return Match{
			Entry:   e,
			Verb:    strings.ToLower(sm[e.expr.SubexpIndex("verb")]),
			Variant: strings.ToLower(strings.Join(strings.Fields(sm[e.expr.SubexpIndex("variant")]), " ")),
		}, true
	}
	return Match{}, false
}

// Instantiate builds a new component of type t with a deep copy of the
// catalog defaults.
func (c *Catalog) Instantiate(t document.Type, id string) (*document.Component, error) {
	e, ok := c.byType[t]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown component type %q", t)
	}
	comp := document.New(id, t)
	comp.Style = document.CloneMap(e.Defaults.Style)
	comp.Props = document.CloneMap(e.Defaults.Props)
	return comp, nil
}

// ValidateProps checks props against the schema declared for t. Types without
// a schema accept anything.
func (c *Catalog) ValidateProps(t document.Type, props map[string]any) error {
	e, ok := c.byType[t]
	if !ok || e.compiled == nil {
		return nil
	}
	return validate(e.compiled, props)
}

// Creatable lists the display names of the creatable types, in order.
func (c *Catalog) Creatable() []string {
	var names []string
	for _, e := range c.entries {
		if e.IsCreatable() {
			names = append(names, e.Name)
		}
	}
	return names
}

func compileMatcher(variants []string) *regexp.Regexp {
	alts := make([]string, 0, len(variants))
	for _, v := range variants {
		words := strings.Fields(v)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		alts = append(alts, strings.Join(words, `[\s-]+`))
	}
	expr := `(?i)\b(?P<verb>` + strings.Join(Verbs, "|") + `)\s+` +
		`(?:(?:` + strings.Join(fillers, "|") + `)\s+)*` +
		`(?P<variant>` + strings.Join(alts, "|") + `)\b`
	return regexp.MustCompile(expr)
}

// expandVariants adds plurals and container/box substitutions to the
// declared names, lower-cased and de-duplicated in first-seen order.
func expandVariants(names []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		s = strings.ToLower(strings.Join(strings.Fields(s), " "))
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, n := range names {
		forms := []string{n}
		switch {
		case strings.Contains(n, "container"):
			forms = append(forms, strings.ReplaceAll(n, "container", "box"))
		case strings.Contains(n, "box"):
			forms = append(forms, strings.ReplaceAll(n, "box", "container"))
		}
		for _, f := range forms {
			add(f)
			add(plural(f))
		}
	}
	return out
}

// plural pluralizes the last word of a phrase.
func plural(s string) string {
	i := strings.LastIndex(s, " ")
	head, last := s[:i+1], s[i+1:]
	switch {
	case last == "":
		return s
	case strings.HasSuffix(last, "s"), strings.HasSuffix(last, "x"),
		strings.HasSuffix(last, "ch"), strings.HasSuffix(last, "sh"):
		return head + last + "es"
	case strings.HasSuffix(last, "y") && len(last) > 1 && !strings.ContainsRune("aeiou", rune(last[len(last)-2])):
		return head + last[:len(last)-1] + "ies"
	}
	return head + last + "s"
}
