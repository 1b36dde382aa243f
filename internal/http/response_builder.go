// Package http provides the server, handlers and HTMX plumbing of the web UI.
//
// This file implements a fluent builder for HTMX responses: HX-Trigger headers
// plus consistent notification fragments.
package http

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// HTMXResponseBuilder provides a fluent API for building HTMX responses.
type HTMXResponseBuilder struct {
	triggers   map[string]any
	statusCode int
	body       []byte
	headers    map[string]string
}

// NewHTMXResponse creates a new response builder with default 200 status.
func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		triggers:   make(map[string]any),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds a named trigger with optional data to the HX-Trigger header.
func (b *HTMXResponseBuilder) Trigger(name string, data any) *HTMXResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerTransactionCreated adds the transaction:created trigger.
func (b *HTMXResponseBuilder) TriggerTransactionCreated(id string) *HTMXResponseBuilder {
	return b.Trigger("transaction:created", map[string]string{"id": id})
}

// TriggerTransactionDeleted adds the transaction:deleted trigger.
func (b *HTMXResponseBuilder) TriggerTransactionDeleted(id string) *HTMXResponseBuilder {
	return b.Trigger("transaction:deleted", map[string]string{"id": id})
}

// TriggerCategoryChanged adds the category:changed trigger; creation, update
// and deletion all refresh the same views.
func (b *HTMXResponseBuilder) TriggerCategoryChanged(id string) *HTMXResponseBuilder {
	return b.Trigger("category:changed", map[string]string{"id": id})
}

// TriggerSettingsChanged adds the settings:changed trigger.
func (b *HTMXResponseBuilder) TriggerSettingsChanged() *HTMXResponseBuilder {
	return b.Trigger("settings:changed", struct{}{})
}

// NotificationType represents the type of notification to display.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
)

// TriggerNotification adds a show-notification trigger.
func (b *HTMXResponseBuilder) TriggerNotification(notifType NotificationType, message string) *HTMXResponseBuilder {
	return b.Trigger("show-notification", map[string]any{
		"type":    string(notifType),
		"message": message,
	})
}

// Header sets an extra response header.
func (b *HTMXResponseBuilder) Header(key, value string) *HTMXResponseBuilder {
	b.headers[key] = value
	return b
}

// BodyHTML sets a raw HTML body.
func (b *HTMXResponseBuilder) BodyHTML(html string) *HTMXResponseBuilder {
	b.body = []byte(html)
	return b
}

// BodyMessage sets an escaped message wrapped in a div with the given class.
func (b *HTMXResponseBuilder) BodyMessage(class, message string) *HTMXResponseBuilder {
	b.body = []byte(`<div class="` + class + `">` + template.HTMLEscapeString(message) + `</div>`)
	return b
}

// Write emits the response: headers first, then status, then body.
func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) error {
	for key, value := range b.headers {
		w.Header().Set(key, value)
	}

	if len(b.triggers) > 0 {
		payload, err := json.Marshal(b.triggers)
		if err != nil {
			return err
		}
		w.Header().Set("HX-Trigger", string(payload))
	}

	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, err := w.Write(b.body)
		return err
	}
	return nil
}
