// Package configurator evaluates product customizations: which options are
// visible given the current selections, whether the selection set is valid,
// and what the configured product costs. Everything here is a pure function
// over catalog data supplied by the caller; the package does no I/O.
package configurator

// DiagnosticKind labels the events the engine reports instead of failing.
type DiagnosticKind string

const (
	// DiagUnknownOption marks a selection referencing an option id that is
	// not part of the priced catalog (stale client state).
	DiagUnknownOption DiagnosticKind = "unknown_option"
	// DiagUnknownChoice marks a selected choice id missing from its option.
	DiagUnknownChoice DiagnosticKind = "unknown_choice"
)

type DiagnosticEvent struct {
	Kind     DiagnosticKind
	OptionID string
	ChoiceID string
}

// DiagnosticFunc receives skip events from validation and pricing. The
// engine calls it inline, so implementations should be cheap.
type DiagnosticFunc func(DiagnosticEvent)

// Engine bundles the injected collaborators of the configurator. The zero
// value is ready to use: built-in bilingual messages, silent skips.
type Engine struct {
	Messages *MessageCatalog // nil = built-in catalog
	Diag     DiagnosticFunc  // nil = stale selections skipped silently
}

func (e *Engine) catalog() *MessageCatalog {
	if e != nil && e.Messages != nil {
		return e.Messages
	}
	return defaultCatalog
}

func (e *Engine) report(ev DiagnosticEvent) {
	if e != nil && e.Diag != nil {
		e.Diag(ev)
	}
}
