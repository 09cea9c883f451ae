package handlers

import (
	"log/slog"

	"github.com/getmockd/wsconfig/pkg/handler"
	"github.com/getmockd/wsconfig/pkg/logging"
	"github.com/getmockd/wsconfig/pkg/util"
)

// Logging logs every envelope passing through the chain at debug level.
type Logging struct {
	logger  *slog.Logger
	maxBody int
}

// NewLogging creates a Logging handler. maxBody caps the logged envelope;
// zero uses util.MaxLogBodySize.
func NewLogging(logger *slog.Logger, maxBody int) *Logging {
	return &Logging{
		logger:  logging.WithComponent(logger, logging.ComponentHandlers),
		maxBody: maxBody,
	}
}

// Name implements handler.Named.
func (l *Logging) Name() string { return ClassLogging }

// HandleMessage implements handler.ProtocolHandler.
func (l *Logging) HandleMessage(mc *handler.MessageContext) (bool, error) {
	l.log(mc, "soap message")
	return true, nil
}

// HandleFault implements handler.ProtocolHandler.
func (l *Logging) HandleFault(mc *handler.MessageContext) (bool, error) {
	l.log(mc, "soap fault")
	return true, nil
}

// Close implements handler.Handler.
func (l *Logging) Close(*handler.MessageContext) {}

func (l *Logging) log(mc *handler.MessageContext, msg string) {
	m := mc.Message()
	if m == nil {
		return
	}
	direction := "inbound"
	if mc.Outbound() {
		direction = "outbound"
	}
	l.logger.Debug(msg,
		"direction", direction,
		"endpoint", mc.GetString(handler.PropEndpointAddress),
		"envelope", util.TruncateBody(m.String(), l.maxBody),
	)
}
