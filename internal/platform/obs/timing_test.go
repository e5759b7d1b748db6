package obs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTimeLogsThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := log.WithContext(context.WithValue(context.Background(), RequestIDKey, "abc"))

	assert.Equal(t, "abc", RequestID(ctx))

	var err error
	Time(ctx, "ok.op")(&err)
	assert.Contains(t, buf.String(), `"op":"ok.op"`)

	buf.Reset()
	err = errors.New("boom")
	Time(ctx, "bad.op")(&err)
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestTimeWithoutLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Time(context.Background(), "silent")(nil)
	})
	assert.Empty(t, RequestID(context.Background()))
}
