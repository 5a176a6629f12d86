package gemcanvas

import (
	"errors"
	"fmt"
)

// ErrCredentialMissing is returned when no API credential was configured at
// startup. Every dispatch fails with it until the credential is provided.
var ErrCredentialMissing = errors.New("credential not configured")

// ServiceError is a structured failure reported by the remote generation
// service, distinct from transport-level faults.
type ServiceError struct {
	Code    int
	Status  string
	Message string
	Err     error // Underlying error from the SDK
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error %d (%s): %s", e.Code, e.Status, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// AsServiceError extracts a ServiceError from an error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
