package app

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/example/sprintdesk/internal/core/store"
	"github.com/example/sprintdesk/internal/ctxutil"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// errorSlot is the loading/error bookkeeping of an entity store.
type errorSlot interface {
	SetLoading(bool)
	SetError(models.FieldErrors)
}

// fieldErrorer is implemented by transport errors that carry field errors.
type fieldErrorer interface {
	FieldErrors() models.FieldErrors
}

// failureFields converts err into the FieldErrors stored in an error slot.
func failureFields(err error) models.FieldErrors {
	var fe fieldErrorer
	if errors.As(err, &fe) {
		if fields := fe.FieldErrors(); len(fields) > 0 {
			return fields
		}
	}
	return models.BaseError()
}

// request runs call with the slot's loading flag raised. A failure is
// logged and written to the slot, and ok is false; success clears the slot.
func request[T any](slot errorSlot, logger *log.Logger, op string, call func() (T, error)) (out T, ok bool) {
	slot.SetLoading(true)
	defer slot.SetLoading(false)

	out, err := call()
	if err != nil {
		logger.Printf("%s: %v", op, err)
		slot.SetError(failureFields(err))
		var zero T
		return zero, false
	}
	slot.SetError(nil)
	return out, true
}

// merge loads records into st. Records without an ID are dropped and
// reported in the log; they never fail the load.
func merge[T store.Record](st *store.Store[T], records []T, logger *log.Logger) {
	if err := st.LoadMany(records); err != nil {
		logger.Printf("warning: %v", err)
	}
}

func discardIfNil(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}

// activityLog records confirmed mutations under the session user.
type activityLog struct {
	writer  secondary.ActivityWriter
	session *SessionImpl
	logger  *log.Logger
}

func (a activityLog) actorContext(ctx context.Context) context.Context {
	if a.session == nil {
		return ctx
	}
	if uid, ok := a.session.CurrentUserID(); ok {
		return ctxutil.WithUser(ctx, uid)
	}
	return ctx
}

func (a activityLog) created(ctx context.Context, entityType string, id int) {
	if a.writer == nil {
		return
	}
	if err := a.writer.LogCreate(a.actorContext(ctx), entityType, id); err != nil {
		a.logger.Printf("warning: failed to record %s %d create: %v", entityType, id, err)
	}
}

func (a activityLog) updated(ctx context.Context, entityType string, id int, detail string) {
	if a.writer == nil {
		return
	}
	if err := a.writer.LogUpdate(a.actorContext(ctx), entityType, id, detail); err != nil {
		a.logger.Printf("warning: failed to record %s %d update: %v", entityType, id, err)
	}
}

func (a activityLog) deleted(ctx context.Context, entityType string, id int) {
	if a.writer == nil {
		return
	}
	if err := a.writer.LogDelete(a.actorContext(ctx), entityType, id); err != nil {
		a.logger.Printf("warning: failed to record %s %d delete: %v", entityType, id, err)
	}
}
