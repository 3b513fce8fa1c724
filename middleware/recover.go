package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
)

// ErrPanic is wrapped by the error a recovered panic is converted into.
var ErrPanic = errors.New("handler panicked")

// PanicError carries the value and stack of a recovered panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPanic, e.Value)
}

func (e *PanicError) Unwrap() error { return ErrPanic }

// Recover converts a panic in any later middleware or handler into a
// *PanicError, so one faulty handler cannot take down the server or a
// websocket receive loop.
func Recover[C scope.RequestScoped]() pipeline.Middleware[C] {
	return RecoverWithLogger[C](slog.Default())
}

// RecoverWithLogger is Recover with a custom logger for the stack trace.
func RecoverWithLogger[C scope.RequestScoped](log *slog.Logger) pipeline.Middleware[C] {
	if log == nil {
		log = logger.Nop()
	}
	return func(next pipeline.RunFunc[C]) pipeline.RunFunc[C] {
		return func(ctx context.Context, c C) (err error) {
			defer func() {
				if p := recover(); p != nil {
					pe := &PanicError{Value: p, Stack: debug.Stack()}
					log.ErrorContext(ctx, "recovered from panic",
						logger.Component("recover"),
						logger.Key("value", fmt.Sprint(p)),
						logger.Key("stack", string(pe.Stack)),
					)
					err = pe
				}
			}()
			return next(ctx, c)
		}
	}
}
