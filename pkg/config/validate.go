package config

import (
	"fmt"
	"strings"

	"github.com/getmockd/wsconfig/pkg/binding"
)

// ValidationError represents a single config validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"` // Config path, e.g., "clientConfigs[0].preHandlerChains[1]"
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult contains all validation errors and warnings for a Root.
type ValidationResult struct {
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

// AddWarning adds a validation warning.
func (r *ValidationResult) AddWarning(path, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Path: path, Message: message})
}

// Validate checks a parsed root for problems the parsers let through.
// Unsupported but accepted features (name patterns, init params) are
// reported as warnings.
func Validate(root *Root) *ValidationResult {
	result := &ValidationResult{}
	if root == nil {
		result.AddError("", "configuration is empty")
		return result
	}

	names := make(map[string]bool)
	for i, c := range root.ClientConfigs {
		if c == nil {
			continue
		}
		validateCommon(c.Common(), fmt.Sprintf("clientConfigs[%d]", i), names, result)
	}

	names = make(map[string]bool)
	for i, c := range root.EndpointConfigs {
		if c == nil {
			continue
		}
		validateCommon(c.Common(), fmt.Sprintf("endpointConfigs[%d]", i), names, result)
	}
	return result
}

func validateCommon(c *CommonConfig, path string, names map[string]bool, result *ValidationResult) {
	if c.Name == "" {
		result.AddError(path+".name", "required")
	} else if names[c.Name] {
		result.AddError(path+".name", fmt.Sprintf("duplicate config name %q", c.Name))
	} else {
		names[c.Name] = true
	}

	for i, chain := range c.PreHandlerChains {
		validateChain(chain, fmt.Sprintf("%s.preHandlerChains[%d]", path, i), result)
	}
	for i, chain := range c.PostHandlerChains {
		validateChain(chain, fmt.Sprintf("%s.postHandlerChains[%d]", path, i), result)
	}
}

func validateChain(chain *HandlerChain, path string, result *ValidationResult) {
	if chain == nil {
		return
	}
	for _, tok := range strings.Fields(chain.ProtocolBindings) {
		if !binding.IsKnownToken(tok) {
			result.AddError(path+".protocolBindings", fmt.Sprintf("unknown protocol binding %q", tok))
		}
	}
	if chain.HasNameFilter() {
		result.AddWarning(path, "port and service name patterns are not supported and will be ignored")
	}
	if len(chain.Handlers) == 0 {
		result.AddWarning(path+".handlers", "handler chain is empty")
	}

	for i, h := range chain.Handlers {
		hp := fmt.Sprintf("%s.handlers[%d]", path, i)
		if h == nil {
			result.AddError(hp, "handler is empty")
			continue
		}
		if h.Class == "" {
			result.AddError(hp+".class", "required")
		}
		if len(h.InitParams) > 0 {
			result.AddWarning(hp+".initParams", "init params are not supported and will be ignored")
		}
	}
}
