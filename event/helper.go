package event

import (
	"fmt"

	"github.com/gookit/event"
	"go.lumeweb.com/provision/core"
)

// Helper function to assert event type
func assertEventType[T core.Eventer](evt event.Event, eventName string) (T, error) {
	typedEvt, ok := evt.(T)
	if !ok {
		return *new(T), fmt.Errorf("event %s is not of expected type", eventName)
	}
	return typedEvt, nil
}

// Fire builds a fresh instance of the named event, lets fill populate it and
// dispatches it synchronously to every listener.
func Fire[T core.Eventer](ctx core.Context, eventName string, fill func(evt T) error) error {
	evt, err := core.NewEvent(eventName)
	if err != nil {
		return err
	}

	typedEvt, err := assertEventType[T](evt, eventName)
	if err != nil {
		return err
	}

	if err := fill(typedEvt); err != nil {
		return err
	}

	return ctx.Event().FireEvent(typedEvt)
}

func Listen[T core.Eventer](ctx core.Context, eventName string, handler func(evt T) error) {
	ctx.Event().On(eventName, event.ListenerFunc(func(e event.Event) error {
		typedEvt, err := assertEventType[T](e, eventName)
		if err != nil {
			return err
		}

		return handler(typedEvt)
	}))
}
