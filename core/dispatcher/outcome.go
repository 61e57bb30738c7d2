package dispatcher

import "time"

// Outcome is the terminal state a request ended in.
type Outcome string

const (
	OutcomeStatic           Outcome = "static-served"
	OutcomeUnauthorized     Outcome = "unauthorized"
	OutcomeNotFound         Outcome = "not-found"
	OutcomeMethodNotAllowed Outcome = "method-not-allowed"
	OutcomeHandled          Outcome = "handled"
	OutcomeFault            Outcome = "fault"
)

// Outcomes lists every terminal state.
var Outcomes = []Outcome{
	OutcomeStatic,
	OutcomeUnauthorized,
	OutcomeNotFound,
	OutcomeMethodNotAllowed,
	OutcomeHandled,
	OutcomeFault,
}

// Observer is notified once per dispatched request.
type Observer interface {
	ObserveDispatch(outcome Outcome, elapsed time.Duration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(outcome Outcome, elapsed time.Duration)

// ObserveDispatch implements Observer.
func (f ObserverFunc) ObserveDispatch(outcome Outcome, elapsed time.Duration) {
	f(outcome, elapsed)
}
