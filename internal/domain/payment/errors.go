// internal/domain/payment/errors.go
package payment

import (
	"fmt"
)

// PhoneFormatError reports a phone number that does not match the
// configured country profile. Field-level and recoverable by re-entry.
type PhoneFormatError struct {
	Raw    string
	Reason string
}

func (e *PhoneFormatError) Error() string {
	return fmt.Sprintf("invalid phone number %q: %s", e.Raw, e.Reason)
}

// NotReadyError rejects an operation that requires a completable
// payment attempt
type NotReadyError struct {
	Method Method
	Reason string
}

func (e *NotReadyError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("payment not ready: %s", e.Reason)
	}
	return fmt.Sprintf("%s payment not ready: %s", e.Method, e.Reason)
}

// StateError rejects a transition the state machine does not allow
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s in state %s", e.Op, e.State)
}
