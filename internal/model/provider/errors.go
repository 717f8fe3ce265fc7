package provider

import (
	"errors"
	"fmt"
)

// Name identifies an upstream answering service.
type Name string

const (
	Retrieval  Name = "retrieval"
	Generative Name = "generative"
)

// Kind classifies why a provider could not produce an answer.
type Kind int

const (
	// KindUnavailable covers transport failures, timeouts, non-2xx replies and unusable bodies.
	KindUnavailable Kind = iota
	// KindConfigurationAbsent means the provider has no credential and was never called.
	KindConfigurationAbsent
	// KindQuotaExceeded means the provider rejected the call for rate or quota reasons.
	KindQuotaExceeded
)

func (k Kind) String() string {
	switch k {
	case KindConfigurationAbsent:
		return "configuration_absent"
	case KindQuotaExceeded:
		return "quota_exceeded"
	default:
		return "upstream_unavailable"
	}
}

// Error is returned by provider adapters. The gateway switches on Kind, never on the message.
type Error struct {
	Provider Name
	Kind     Kind
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s provider: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s provider: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a provider and kind.
func NewError(name Name, kind Kind, err error) *Error {
	return &Error{Provider: name, Kind: kind, Err: err}
}

// KindOf reports the classified kind of err. Unclassified errors count as unavailable.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUnavailable
}
