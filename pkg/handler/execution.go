package handler

import (
	"fmt"
	"log/slog"

	"github.com/getmockd/wsconfig/pkg/logging"
)

// Execution runs one message exchange through a handler chain.
// It is not safe for concurrent use.
type Execution struct {
	handlers []Handler
	invoked  []bool
	order    []int
	logger   *slog.Logger
}

// NewExecution creates an execution over a snapshot of chain.
func NewExecution(chain []Handler, logger *slog.Logger) *Execution {
	handlers := make([]Handler, len(chain))
	copy(handlers, chain)
	return &Execution{
		handlers: handlers,
		invoked:  make([]bool, len(handlers)),
		logger:   logging.WithComponent(logger, logging.ComponentChain),
	}
}

// HandleMessage passes a normal message through the chain in the direction
// given by mc. It returns false when a handler stopped the pass.
func (e *Execution) HandleMessage(mc *MessageContext) (bool, error) {
	return e.run(mc, false)
}

// HandleFault passes a fault message through the chain in the direction
// given by mc.
func (e *Execution) HandleFault(mc *MessageContext) (bool, error) {
	return e.run(mc, true)
}

// Close calls Close on every invoked handler, last invoked first.
// It is safe to call more than once.
func (e *Execution) Close(mc *MessageContext) {
	for i := len(e.order) - 1; i >= 0; i-- {
		e.handlers[e.order[i]].Close(mc)
	}
	e.order = nil
	for i := range e.invoked {
		e.invoked[i] = false
	}
}

func (e *Execution) run(mc *MessageContext, fault bool) (bool, error) {
	n := len(e.handlers)
	for step := 0; step < n; step++ {
		i := step
		if !mc.Outbound() {
			i = n - 1 - step
		}
		h := e.handlers[i]
		if !e.invoked[i] {
			e.invoked[i] = true
			e.order = append(e.order, i)
		}

		cont, err := dispatch(h, mc, fault)
		if err != nil {
			return false, fmt.Errorf("handler %s: %w", Name(h), err)
		}
		if !cont {
			e.logger.Debug("handler stopped processing",
				"handler", Name(h),
				"outbound", mc.Outbound(),
				"fault", fault,
			)
			return false, nil
		}
	}
	return true, nil
}

func dispatch(h Handler, mc *MessageContext, fault bool) (bool, error) {
	switch t := h.(type) {
	case LogicalHandler:
		if fault {
			return t.HandleFault(mc.Logical())
		}
		return t.HandleMessage(mc.Logical())
	case ProtocolHandler:
		if fault {
			return t.HandleFault(mc)
		}
		return t.HandleMessage(mc)
	default:
		return true, nil
	}
}
