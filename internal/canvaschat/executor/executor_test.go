package executor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/common/retry"
	"github.com/bdobrica/canvaschat/internal/canvaschat/catalog"
	"github.com/bdobrica/canvaschat/internal/canvaschat/clarify"
	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/grammar"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
	"github.com/bdobrica/canvaschat/internal/canvaschat/processor"
)

const seed = `
components:
  - id: page
    type: container
    children:
      - id: card
        type: card
        children:
          - id: title
            type: heading
            style:
              fontSize: 16px
  - id: board
    type: kanban
    props:
      columns:
        - {id: todo, title: To Do}
queries:
  - id: q1
    name: Sales
previews:
  q1: 4200
`

var fastRetry = retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}

// counter returns a deterministic ID generator: "<type>-1", "<type>-2", ...
func counter() executor.IDGenerator {
	n := 0
	return func(t document.Type) string {
		n++
		return fmt.Sprintf("%s-%d", t, n)
	}
}

func newExecutor(t *testing.T, mutate ...func(*executor.Config)) (*executor.Executor, *host.Workspace) {
	t.Helper()
	ws, err := host.LoadWorkspace([]byte(seed))
	require.NoError(t, err)
	cfg := executor.Config{
		Data:      ws,
		Previewer: ws,
		Sink:      ws,
		Settings:  ws,
		Retry:     fastRetry,
		NewID:     counter(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := executor.New(cfg)
	require.NoError(t, err)
	return e, ws
}

func run(e *executor.Executor, text string, thread *clarify.Machine, sel *host.Selection) executor.Result {
	return e.Execute(context.Background(), executor.Command{Text: text, At: time.Now()}, thread, sel)
}

func TestNewRequiresSink(t *testing.T) {
	_, err := executor.New(executor.Config{})
	assert.ErrorIs(t, err, executor.ErrNoSink)
}

func TestStylePatchIsIdempotent(t *testing.T) {
	e, ws := newExecutor(t)

	first := run(e, "set font size to 24px", nil, ws.Selection([]string{"title"}))
	second := run(e, "set font size to 24px", nil, ws.Selection([]string{"title"}))

	require.True(t, first.Success, first.Message)
	assert.Equal(t, processor.KindStylePatch, first.Kind)
	assert.Equal(t, "title", first.ComponentID)
	assert.NotEmpty(t, first.CommandID)
	assert.NotEqual(t, first.CommandID, second.CommandID)
	if diff := cmp.Diff(first, second, cmpopts.IgnoreFields(executor.Result{}, "CommandID")); diff != "" {
		t.Errorf("repeated command differs (-first +second):\n%s", diff)
	}

	title, ok := ws.Component("title")
	require.True(t, ok)
	assert.Equal(t, "24px", title.Style["fontSize"])
}

func TestCommandIDIsKept(t *testing.T) {
	e, ws := newExecutor(t)
	res := e.Execute(context.Background(), executor.Command{ID: "cmd-1", Text: "make it bold"}, nil, ws.Selection([]string{"title"}))
	assert.Equal(t, "cmd-1", res.CommandID)
}

func TestClarificationRoundTrip(t *testing.T) {
	e, ws := newExecutor(t)
	thread := &clarify.Machine{}

	res := run(e, "change the text color", thread, ws.Selection([]string{"title"}))
	require.Equal(t, processor.KindPrompt, res.Kind)
	assert.True(t, res.Success)
	assert.True(t, res.NeedsMoreInfo)
	assert.NotEmpty(t, res.Options)
	require.True(t, thread.Pending())
	assert.Equal(t, "color", thread.State().Expected)

	res = run(e, "red", thread, ws.Selection([]string{"title"}))
	require.True(t, res.Success, res.Message)
	assert.Equal(t, processor.KindStylePatch, res.Kind)
	assert.False(t, thread.Pending())

	red, ok := grammar.ResolveColor("red")
	require.True(t, ok)
	title, _ := ws.Component("title")
	assert.Equal(t, red, title.Style["color"])
}

func TestClarificationClearedOnFailure(t *testing.T) {
	e, ws := newExecutor(t)
	thread := &clarify.Machine{}
	thread.Await("color", "change the text color")

	res := run(e, "sparkly", thread, ws.Selection([]string{"title"}))
	assert.False(t, res.Success)
	assert.False(t, thread.Pending())
}

func TestNestedComponents(t *testing.T) {
	e, ws := newExecutor(t)

	a := run(e, "add a button", nil, ws.Selection([]string{"card"}))
	b := run(e, "add a button", nil, ws.Selection([]string{"card"}))

	for _, res := range []executor.Result{a, b} {
		require.True(t, res.Success, res.Message)
		require.NotNil(t, res.Created)
		assert.Equal(t, document.TypeButton, res.Created.Type)
		assert.Equal(t, "card", res.ComponentID)
		assert.Equal(t, 2, res.Created.Depth)
	}
	assert.NotEqual(t, a.Created.ID, b.Created.ID)

	card, _ := ws.Component("card")
	assert.Len(t, card.Children, 3)
	child, ok := ws.Component(b.Created.ID)
	require.True(t, ok)
	assert.Equal(t, 2, child.Depth)
}

func TestCreationFallback(t *testing.T) {
	e, ws := newExecutor(t)
	before := ws.Count()

	res := run(e, "add a chart", nil, nil)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, processor.KindNestedComponent, res.Kind)
	require.NotNil(t, res.Created)
	assert.Equal(t, document.TypeChart, res.Created.Type)
	assert.Equal(t, &executor.DefaultPosition, res.Created.Position)
	assert.Equal(t, "catalog", res.Processor)
	assert.Equal(t, before+1, ws.Count())

	_, ok := ws.Component(res.Created.ID)
	assert.True(t, ok)
}

func TestRecognitionMiss(t *testing.T) {
	e, _ := newExecutor(t)
	res := run(e, "frobnicate the widget", nil, nil)
	assert.False(t, res.Success)
	assert.Equal(t, executor.ErrorRecognitionMiss, res.ErrorClass)
	assert.Equal(t, executor.MissMessage, res.Message)
}

func TestPatchWithoutSelection(t *testing.T) {
	e, _ := newExecutor(t)
	res := run(e, "set padding to 24px", nil, nil)
	assert.False(t, res.Success)
	assert.Equal(t, processor.KindError, res.Kind)
	assert.Equal(t, executor.ErrorState, res.ErrorClass)
}

func TestProcessorErrorsAreClassified(t *testing.T) {
	e, ws := newExecutor(t)
	res := run(e, "set font size to huge", nil, ws.Selection([]string{"title"}))
	assert.False(t, res.Success)
	assert.Equal(t, executor.ErrorValidation, res.ErrorClass)
}

func TestThemeUpdate(t *testing.T) {
	e, ws := newExecutor(t)
	res := run(e, "set theme to ocean", nil, nil)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, processor.KindThemeUpdate, res.Kind)
	require.NotNil(t, res.Workspace)
	assert.Equal(t, "ocean", ws.Theme().Name)

	res = run(e, "hide the toolbar", nil, nil)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, false, ws.Toolbar()["visible"])
}

type fixed struct {
	res *processor.Result
	err error
}

func (fixed) Name() string                             { return "fixed" }
func (fixed) Types() []document.Type                   { return nil }
func (fixed) Recognize(string) bool                    { return true }
func (fixed) Suggestions() []processor.SuggestionGroup { return nil }

func (f fixed) Transform(context.Context, string, *processor.Context) (*processor.Result, error) {
	return f.res, f.err
}

func TestRepeatedPromptKeepsOriginalCommand(t *testing.T) {
	ask := processor.Ask("color", "What color?")
	e, ws := newExecutor(t, func(c *executor.Config) {
		c.Registry = processor.NewRegistry(fixed{res: ask})
	})
	thread := &clarify.Machine{}
	sel := ws.Selection([]string{"title"})

	res := run(e, "change the text color", thread, sel)
	require.True(t, res.NeedsMoreInfo)

	res = run(e, "blurple", thread, sel)
	require.True(t, res.NeedsMoreInfo)
	st := thread.State()
	assert.Equal(t, clarify.Awaiting, st.Status)
	assert.Equal(t, "change the text color", st.Original)

	text, merged := thread.Take("red")
	assert.True(t, merged)
	assert.Equal(t, "change the text color (color: red)", text)
}

func TestPropsAreValidatedAfterMerge(t *testing.T) {
	patch := processor.PropsPatch(map[string]any{"columns": "not a list"}, "Updated columns.")
	e, ws := newExecutor(t, func(c *executor.Config) {
		c.Registry = processor.NewRegistry(fixed{res: patch})
	})

	res := run(e, "anything", nil, ws.Selection([]string{"board"}))
	assert.False(t, res.Success)
	assert.Equal(t, executor.ErrorValidation, res.ErrorClass)

	board, _ := ws.Component("board")
	assert.IsType(t, []any{}, board.Props["columns"])
}

func TestPartialPropsPatchKeepsRequiredProps(t *testing.T) {
	patch := processor.PropsPatch(map[string]any{"columnWidth": "300px"}, "Updated column width.")
	e, ws := newExecutor(t, func(c *executor.Config) {
		c.Registry = processor.NewRegistry(fixed{res: patch})
	})

	res := run(e, "anything", nil, ws.Selection([]string{"board"}))
	require.True(t, res.Success, res.Message)
	board, _ := ws.Component("board")
	assert.Equal(t, "300px", board.Props["columnWidth"])
}

type failingSink struct{ host.Sink }

func (failingSink) UpdateComponent(context.Context, string, host.Update) error {
	return errors.New("connection reset")
}

type failingData struct{ calls int }

func (f *failingData) Queries(context.Context) ([]host.RawQuery, error) {
	f.calls++
	return nil, errors.New("timeout")
}

func (f *failingData) WebServices(context.Context) ([]host.RawWebService, error) {
	return nil, nil
}

func TestExternalFailures(t *testing.T) {
	t.Run("sink", func(t *testing.T) {
		e, ws := newExecutor(t, func(c *executor.Config) { c.Sink = failingSink{c.Sink} })
		res := run(e, "set font size to 24px", nil, ws.Selection([]string{"title"}))
		assert.False(t, res.Success)
		assert.Equal(t, executor.ErrorExternal, res.ErrorClass)
		assert.NotContains(t, res.Message, "connection reset")
	})
	t.Run("data provider", func(t *testing.T) {
		data := &failingData{}
		e, ws := newExecutor(t, func(c *executor.Config) { c.Data = data })
		res := run(e, "set font size to 24px", nil, ws.Selection([]string{"title"}))
		assert.False(t, res.Success)
		assert.Equal(t, executor.ErrorExternal, res.ErrorClass)
		assert.Equal(t, fastRetry.MaxAttempts, data.calls)
	})
	t.Run("processor", func(t *testing.T) {
		e, ws := newExecutor(t, func(c *executor.Config) {
			c.Registry = processor.NewRegistry(fixed{err: errors.New("boom")})
		})
		res := run(e, "anything", nil, ws.Selection([]string{"title"}))
		assert.Equal(t, executor.ErrorExternal, res.ErrorClass)
	})
}

func TestDefaults(t *testing.T) {
	e, err := executor.New(executor.Config{Sink: host.NewWorkspace()})
	require.NoError(t, err)
	assert.NotNil(t, e.Registry())
	assert.Equal(t, catalog.Default().Creatable(), e.Catalog().Creatable())
}
