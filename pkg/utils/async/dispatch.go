package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler on a new goroutine, detached from the caller's
// cancellation. The task name is attached to every log line of the handler.
//
// The new context keeps the caller's logger and, when present, a clone of its
// Sentry hub. Panics are recovered and logged with the stack; panics and
// returned errors are also reported to Sentry.
func Dispatch(ctx context.Context, task string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx, task)

	go func() {
		logger := ctxlog.From(newCtx)

		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
				hubFrom(newCtx).CaptureException(fmt.Errorf("panic in async task %s: %v", task, r))
			}
		}()

		if err := handler(newCtx); err != nil {
			logger.Error("error in async handler", "error", err)
			hubFrom(newCtx).CaptureException(err)
		}
	}()
}

func newBackgroundContext(ctx context.Context, task string) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx).With("task", task))
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		newCtx = sentry.SetHubOnContext(newCtx, hub.Clone())
	}
	return newCtx
}

func hubFrom(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}
