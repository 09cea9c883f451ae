package handler

// Tag marks a handler installed from a client configuration.
type Tag struct {
	// Config is set on every handler the configurer installs.
	Config bool

	// Pre is set for handlers from pre handler chains and clear for
	// handlers from post handler chains.
	Pre bool
}

// Tagged is implemented by config delegates.
type Tagged interface {
	Tag() Tag
}

// IsConfigHandler reports whether h was installed from a configuration.
func IsConfigHandler(h Handler) bool {
	t, ok := h.(Tagged)
	return ok && t.Tag().Config
}

// Interface compliance checks.
var (
	_ ProtocolHandler = (*ConfigDelegate)(nil)
	_ LogicalHandler  = (*LogicalConfigDelegate)(nil)
	_ Tagged          = (*ConfigDelegate)(nil)
	_ Tagged          = (*LogicalConfigDelegate)(nil)
)

// ConfigDelegate wraps a protocol handler installed from a configuration.
type ConfigDelegate struct {
	tag      Tag
	delegate ProtocolHandler
}

// NewConfigDelegate wraps h as a config handler of the pre or post group.
func NewConfigDelegate(h ProtocolHandler, pre bool) *ConfigDelegate {
	return &ConfigDelegate{tag: Tag{Config: true, Pre: pre}, delegate: h}
}

// HandleMessage forwards to the wrapped handler.
func (d *ConfigDelegate) HandleMessage(mc *MessageContext) (bool, error) {
	return d.delegate.HandleMessage(mc)
}

// HandleFault forwards to the wrapped handler.
func (d *ConfigDelegate) HandleFault(mc *MessageContext) (bool, error) {
	return d.delegate.HandleFault(mc)
}

// Close forwards to the wrapped handler.
func (d *ConfigDelegate) Close(mc *MessageContext) {
	d.delegate.Close(mc)
}

// Tag returns the config tag.
func (d *ConfigDelegate) Tag() Tag { return d.tag }

// IsPre reports whether the handler belongs to the pre group.
func (d *ConfigDelegate) IsPre() bool { return d.tag.Pre }

// Delegate returns the wrapped handler.
func (d *ConfigDelegate) Delegate() ProtocolHandler { return d.delegate }

// Name returns the wrapped handler's name.
func (d *ConfigDelegate) Name() string { return Name(d.delegate) }

// LogicalConfigDelegate wraps a logical handler installed from a
// configuration.
type LogicalConfigDelegate struct {
	tag      Tag
	delegate LogicalHandler
}

// NewLogicalConfigDelegate wraps h as a config handler of the pre or post
// group.
func NewLogicalConfigDelegate(h LogicalHandler, pre bool) *LogicalConfigDelegate {
	return &LogicalConfigDelegate{tag: Tag{Config: true, Pre: pre}, delegate: h}
}

// HandleMessage forwards to the wrapped handler.
func (d *LogicalConfigDelegate) HandleMessage(lc *LogicalContext) (bool, error) {
	return d.delegate.HandleMessage(lc)
}

// HandleFault forwards to the wrapped handler.
func (d *LogicalConfigDelegate) HandleFault(lc *LogicalContext) (bool, error) {
	return d.delegate.HandleFault(lc)
}

// Close forwards to the wrapped handler.
func (d *LogicalConfigDelegate) Close(mc *MessageContext) {
	d.delegate.Close(mc)
}

// Tag returns the config tag.
func (d *LogicalConfigDelegate) Tag() Tag { return d.tag }

// IsPre reports whether the handler belongs to the pre group.
func (d *LogicalConfigDelegate) IsPre() bool { return d.tag.Pre }

// Delegate returns the wrapped handler.
func (d *LogicalConfigDelegate) Delegate() LogicalHandler { return d.delegate }

// Name returns the wrapped handler's name.
func (d *LogicalConfigDelegate) Name() string { return Name(d.delegate) }

// Wrap wraps v in the delegate matching its variant. ok is false when v is
// not a handler.
func Wrap(v any, pre bool) (h Handler, ok bool) {
	switch t := v.(type) {
	case LogicalHandler:
		return NewLogicalConfigDelegate(t, pre), true
	case ProtocolHandler:
		return NewConfigDelegate(t, pre), true
	default:
		return nil, false
	}
}

// SplitConfigHandlers partitions chain into config-installed handlers and
// all others, preserving relative order within each part.
func SplitConfigHandlers(chain []Handler) (config, others []Handler) {
	for _, h := range chain {
		if IsConfigHandler(h) {
			config = append(config, h)
		} else {
			others = append(others, h)
		}
	}
	return config, others
}
