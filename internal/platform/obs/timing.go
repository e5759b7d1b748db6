package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of an operation through the logger carried by ctx.
//
//	defer obs.Time(ctx, "drivers.List")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	log := zerolog.Ctx(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Error().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Err(*errp).Msg("operation failed")
			return
		}
		log.Debug().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("operation done")
	}
}
