package handlers

import (
	"log/slog"

	"github.com/getmockd/wsconfig/pkg/classloading"
)

// Class names of the framework handlers.
const (
	ClassLogging      = "logging"
	ClassMessageID    = "message-id"
	ClassPayloadGuard = "payload-guard"
)

// Register adds the framework handler classes to reg. Every instantiation
// creates a fresh handler; the guard's compiled programs are shared.
func Register(reg *classloading.Registry, logger *slog.Logger) error {
	guards := newProgramCache()

	if err := reg.Register(ClassLogging, func() (any, error) {
		return NewLogging(logger, 0), nil
	}); err != nil {
		return err
	}
	if err := reg.Register(ClassMessageID, func() (any, error) {
		return NewMessageID(), nil
	}); err != nil {
		return err
	}
	return reg.Register(ClassPayloadGuard, func() (any, error) {
		return &PayloadGuard{programs: guards}, nil
	})
}

// NewServerLoader returns a registry holding only the framework handlers.
func NewServerLoader(logger *slog.Logger) *classloading.Registry {
	reg := classloading.NewRegistry()
	_ = Register(reg, logger)
	return reg
}
