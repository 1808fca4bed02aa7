package trace_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdobrica/canvaschat/common/trace"
)

func TestGenerateID_Unique(t *testing.T) {
	a, b := trace.GenerateID(), trace.GenerateID()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "c_"))
}

func TestEnsure_KeepsExisting(t *testing.T) {
	ctx := trace.WithTraceID(context.Background(), "c_fixed")
	got, id := trace.Ensure(ctx)
	assert.Equal(t, "c_fixed", id)
	assert.Equal(t, "c_fixed", trace.FromContext(got))
}

func TestEnsure_Generates(t *testing.T) {
	ctx, id := trace.Ensure(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, trace.FromContext(ctx))
}
