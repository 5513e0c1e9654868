package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text", "warn")
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "JSON", "debug").Debug(context.Background(), "dbg", "n", 1)
	assert.Contains(t, buf.String(), `"msg":"dbg"`)
	assert.Contains(t, buf.String(), `"n":1`)
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "text", "info").With("op", "signup").Error(context.Background(), "failed", "kind", "storage")

	for _, s := range []string{"level=ERROR", "op=signup", "kind=storage"} {
		assert.Contains(t, buf.String(), s)
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	Nop().Info(context.Background(), "quiet")
}
