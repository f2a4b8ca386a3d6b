// Package domain holds the value types and collaborator interfaces shared by
// every herald package: channels, users, invocations, command definitions,
// and the small set of interfaces the surrounding framework implements.
package domain

import "context"

// Transport identifies how a command invocation reached the framework.
type Transport string

const (
	TransportMessage     Transport = "message"
	TransportChatInput   Transport = "chatInput"
	TransportContextMenu Transport = "contextMenu"
)

// ChannelKind classifies a channel for gating purposes.
type ChannelKind int

const (
	ChannelUnknown ChannelKind = iota
	ChannelText
	ChannelDirect
	ChannelThread
	ChannelVoice
	ChannelAnnouncement
)

func (k ChannelKind) String() string {
	switch k {
	case ChannelText:
		return "text"
	case ChannelDirect:
		return "direct"
	case ChannelThread:
		return "thread"
	case ChannelVoice:
		return "voice"
	case ChannelAnnouncement:
		return "announcement"
	default:
		return "unknown"
	}
}

// Channel is a resolved conversation surface.
type Channel struct {
	ID   string
	Name string
	Kind ChannelKind
}

// User is the author of an invocation.
type User struct {
	ID   string
	Name string
	Bot  bool
}

// Message is a fully materialized message-like invocation. Its channel is
// already resolved, so preconditions can gate it synchronously.
type Message struct {
	ID      string
	Author  User
	Channel *Channel
	Content string
}

// ComponentKind classifies the structured component that produced an
// interaction event.
type ComponentKind int

const (
	ComponentNone ComponentKind = iota
	ComponentButton
	ComponentSelectMenu
	ComponentModal
)

// Interaction is an event-like invocation: a slash command, a context menu
// action, or a component event. Only the channel ID is carried; resolving
// the channel itself may require an asynchronous lookup.
type Interaction struct {
	ID          string
	User        User
	ChannelID   string
	CommandName string

	// Component event fields. Zero values for command interactions.
	Component ComponentKind
	CustomID  string
	Values    []string
	Fields    map[string]string
}

// PreconditionContext is free-form, command-author-supplied data handed
// unchanged to every precondition entry point.
type PreconditionContext map[string]any

// Command is the definition being gated and executed. Preconditions are an
// ordered list of container names; the surrounding framework resolves them
// to instances.
type Command struct {
	Name                string
	Description         string
	Preconditions       []string
	PreconditionContext PreconditionContext
}

// ChannelResolver turns a bare channel ID into a Channel. Implementations
// may perform network or cache lookups, hence the context.
type ChannelResolver interface {
	ResolveChannel(ctx context.Context, id string) (*Channel, error)
}

// UserResolver turns a bare user ID into a User.
type UserResolver interface {
	ResolveUser(ctx context.Context, id string) (*User, error)
}

// Logger defines the logging operations herald components use. The
// production implementation lives in internal/log.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close flushes and closes the logger.
	Close() error
}
