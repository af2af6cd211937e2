package api

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/volunteer-connect-backend/lifecycle"
)

// newValidator reports failed fields by their JSON names.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(store Store, feed Subscriber, notifier lifecycle.Notifier, startupTime time.Time, keepAlive time.Duration) *routeHandlers {
	validate := newValidator()
	actions := lifecycle.NewActions(store, notifier)

	return &routeHandlers{
		healthHandler:  newHealthHandler(store, startupTime),
		projectHandler: newProjectHandler(store, actions, validate),
		streamHandler:  newStreamHandler(store, feed, keepAlive),
		profileHandler: newProfileHandler(store, validate),
	}
}
