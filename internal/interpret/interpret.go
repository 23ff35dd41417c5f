// Package interpret turns a trait report into a narrative reading using an
// LLM provider, falling back to a fixed text when no provider answers.
package interpret

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/physiognomy/internal/evaluator"
	"github.com/kozaktomas/physiognomy/internal/log"
)

// ErrNoProvider is reported when no interpretation provider is configured.
var ErrNoProvider = errors.New("no interpretation provider configured")

// SourceFallback names the fixed interpretation in a Result.
const SourceFallback = "fallback"

// Person is the optional personal context passed to the provider.
type Person struct {
	Name     string `json:"name,omitempty" validate:"max=200"`
	Birthday string `json:"birthday,omitempty" validate:"omitempty,max=40"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE male female"`
}

// Provider generates an interpretation from a prompt.
type Provider interface {
	Name() string
	Interpret(ctx context.Context, prompt string) (*Interpretation, error)
}

// Result is an interpretation together with where it came from.
type Result struct {
	Interpretation *Interpretation `json:"interpret"`
	Source         string          `json:"source"`
	Fallback       bool            `json:"fallback"`
}

// Interpreter tries its providers in order until one succeeds.
type Interpreter struct {
	providers []Provider
}

func New(providers ...Provider) *Interpreter {
	return &Interpreter{providers: providers}
}

// Providers returns the provider names in preference order.
func (i *Interpreter) Providers() []string {
	names := make([]string, 0, len(i.providers))
	for _, p := range i.providers {
		names = append(names, p.Name())
	}
	return names
}

// Interpret never fails: provider errors are logged and the fixed
// interpretation is returned instead. The overview is always filled.
func (i *Interpreter) Interpret(ctx context.Context, report *evaluator.Report, person Person) *Result {
	if len(i.providers) == 0 {
		log.Debug(log.Fields{"error": ErrNoProvider}, "using fallback interpretation")
		return &Result{Interpretation: Fallback(), Source: SourceFallback, Fallback: true}
	}

	prompt, err := BuildPrompt(BuildContext(report, person))
	if err != nil {
		log.Warn(log.Fields{"error": err}, "failed to build interpretation prompt")
		return &Result{Interpretation: Fallback(), Source: SourceFallback, Fallback: true}
	}

	for _, p := range i.providers {
		if err := ctx.Err(); err != nil {
			break
		}
		result, err := p.Interpret(ctx, prompt)
		if err != nil {
			log.Warn(log.Fields{"provider": p.Name(), "error": err}, "interpretation provider failed")
			continue
		}
		if result.Overview == "" {
			result.Overview = fallbackOverview
		}
		if result.Advice == nil {
			result.Advice = []string{}
		}
		return &Result{Interpretation: result, Source: p.Name()}
	}

	return &Result{Interpretation: Fallback(), Source: SourceFallback, Fallback: true}
}

func retryError(attempts int, lastErr error, lastResponse string) error {
	return fmt.Errorf("failed to parse interpretation JSON after %d attempts: %w (last response: %s)", attempts, lastErr, lastResponse)
}
