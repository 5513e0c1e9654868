package service

import (
	"context"
	"time"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/queue"
)

// auditor publishes one event per operation and logs failed operations.
type auditor struct {
	sink EventSink
	log  logging.Logger
	now  func() time.Time
}

func newAuditor(sink EventSink, log logging.Logger) auditor {
	if log == nil {
		log = logging.Nop()
	}
	return auditor{sink: sink, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// record emits ev with the outcome derived from err.  Storage and unknown
// errors are logged at error level, expected rejections at info level.
func (a auditor) record(ctx context.Context, ev queue.AuthEvent, err error) {
	ev.Success = err == nil
	ev.OccurredAt = a.now()
	if err != nil {
		ev.Reason = err.Error()
		kind := KindOf(err)
		args := []any{"op", ev.Type, "account_id", ev.AccountID, "kind", kind.String(), "err", err}
		if kind == KindStorage || kind == KindUnknown {
			a.log.Error(ctx, "operation failed", args...)
		} else {
			a.log.Info(ctx, "operation rejected", args...)
		}
	}
	if a.sink == nil {
		return
	}
	if perr := a.sink.Publish(ctx, ev); perr != nil {
		a.log.Warn(ctx, "audit publish failed", "op", ev.Type, "err", perr)
	}
}
