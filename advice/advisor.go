// Package advice turns a debt projection into a short plain-language summary.
//
// The service always receives an Advisor. When no language model is
// configured it gets Fallback, so call sites never check for a missing client.
package advice

import (
	"context"
	"time"

	"debt-planner/domain"
)

type Advisor interface {
	Advise(ctx context.Context, projection domain.DebtProjection) string
}

type Options struct {
	APIKey     string
	APIURL     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// New returns a ChatAdvisor when an API key is configured and Fallback otherwise.
func New(opts Options) Advisor {
	if opts.APIKey == "" {
		return Fallback{}
	}
	return NewChatAdvisor(opts)
}
