package views

import (
	"log/slog"
)

// Notifier shows a transient failure message to the user
type Notifier interface {
	Notify(message string, err error)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string, err error)

func (f NotifierFunc) Notify(message string, err error) {
	f(message, err)
}

// LogNotifier reports failures through the logger
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(message string, err error) {
	n.Logger.Error(message, "error", err)
}
