package clarify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdobrica/canvaschat/internal/canvaschat/clarify"
)

func TestMachine_IdleTakePassesThrough(t *testing.T) {
	var m clarify.Machine
	got, merged := m.Take("make it red")
	assert.False(t, merged)
	assert.Equal(t, "make it red", got)
	assert.Equal(t, clarify.Idle, m.State().Status)
}

func TestMachine_AwaitThenTake(t *testing.T) {
	var m clarify.Machine
	m.Await("color", "set stroke color to")
	assert.True(t, m.Pending())
	assert.Equal(t, "awaiting_input", m.State().Status.String())

	got, merged := m.Take(" red ")
	assert.True(t, merged)
	assert.Equal(t, "set stroke color to (color: red)", got)
	assert.False(t, m.Pending(), "take always clears the pending state")

	got, merged = m.Take("blue")
	assert.False(t, merged)
	assert.Equal(t, "blue", got)
}

func TestMachine_AwaitReplaces(t *testing.T) {
	var m clarify.Machine
	m.Await("color", "set fill color to")
	m.Await("theme", "apply theme")
	st := m.State()
	assert.Equal(t, "theme", st.Expected)
	assert.Equal(t, "apply theme", st.Original)

	m.Reset()
	assert.False(t, m.Pending())
}
