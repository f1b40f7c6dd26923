package container

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RebindPolicy decides what happens when a type that already has a binding
// is bound again. The new binding always wins unless the policy panics.
type RebindPolicy int

const (
	// RebindSilent replaces the previous binding without notice. Default.
	RebindSilent RebindPolicy = iota
	// RebindWarn replaces the previous binding and logs a warning.
	RebindWarn
	// RebindStrict panics with an error wrapping [ErrAlreadyBound].
	RebindStrict
)

// String returns the policy name accepted by [ParseRebindPolicy].
func (p RebindPolicy) String() string {
	switch p {
	case RebindSilent:
		return "silent"
	case RebindWarn:
		return "warn"
	case RebindStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseRebindPolicy parses "silent", "warn" or "strict" (case-insensitive).
// The empty string yields [RebindSilent].
func ParseRebindPolicy(s string) (RebindPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "silent":
		return RebindSilent, nil
	case "warn":
		return RebindWarn, nil
	case "strict":
		return RebindStrict, nil
	default:
		return RebindSilent, fmt.Errorf("container: unknown rebind policy %q", s)
	}
}

type options struct {
	logger *zap.Logger
	policy RebindPolicy
}

// Option configures an [Injector] or a [Bindings] registry.
type Option func(*options)

// WithLogger sets the logger used for bind and resolution events. The
// default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRebindPolicy sets the [RebindPolicy]. The default is [RebindSilent].
func WithRebindPolicy(p RebindPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
