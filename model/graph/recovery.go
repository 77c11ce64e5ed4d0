package graph

type (
	// Retry describes target engine retry behaviour for matching errors
	Retry struct {
		ErrorEquals     []string `json:"errorEquals,omitempty" yaml:"errorEquals,omitempty"`
		BackoffRate     *float64 `json:"backoffRate,omitempty" yaml:"backoffRate,omitempty"`
		IntervalSeconds *int     `json:"intervalSeconds,omitempty" yaml:"intervalSeconds,omitempty"`
		MaxAttempt      *int     `json:"maxAttempt,omitempty" yaml:"maxAttempt,omitempty"`
		MaxDelaySeconds *int     `json:"maxDelaySeconds,omitempty" yaml:"maxDelaySeconds,omitempty"`
	}

	// Catch routes matching errors to a fallback step
	Catch struct {
		ErrorEquals []string `json:"errorEquals,omitempty" yaml:"errorEquals,omitempty"`
		Next        *Next    `json:"next,omitempty" yaml:"next,omitempty"`
	}

	// Recovery groups retry and catch policies of a step
	Recovery struct {
		Retry []*Retry `json:"retry,omitempty" yaml:"retry,omitempty"`
		Catch []*Catch `json:"catch,omitempty" yaml:"catch,omitempty"`
	}

	// Recoverable is implemented by steps supporting retry and catch policies
	Recoverable interface {
		Policies() *Recovery
	}
)

// Policies returns retry and catch policies
func (r *Recovery) Policies() *Recovery {
	return r
}

// NewRetry creates retry policy for supplied errors
func NewRetry(errorEquals ...string) *Retry {
	return &Retry{ErrorEquals: errorEquals}
}

// WithMaxAttempt sets max attempts
func (r *Retry) WithMaxAttempt(attempts int) *Retry {
	r.MaxAttempt = &attempts
	return r
}

// WithInterval sets interval seconds
func (r *Retry) WithInterval(seconds int) *Retry {
	r.IntervalSeconds = &seconds
	return r
}

// WithBackoffRate sets backoff rate
func (r *Retry) WithBackoffRate(rate float64) *Retry {
	r.BackoffRate = &rate
	return r
}

// WithMaxDelay sets max delay seconds
func (r *Retry) WithMaxDelay(seconds int) *Retry {
	r.MaxDelaySeconds = &seconds
	return r
}

// NewCatch creates catch policy routing errors to next
func NewCatch(next *Next, errorEquals ...string) *Catch {
	return &Catch{ErrorEquals: errorEquals, Next: next}
}
