package errors

import "errors"

// Error types used to map application failures to transport responses.
const (
	NotFound           = "NotFound"
	ValidationError    = "ValidationError"
	RepositoryError    = "RepositoryError"
	NotAuthenticated   = "NotAuthenticated"
	NotAuthorized      = "NotAuthorized"
	ChannelUnavailable = "ChannelUnavailable"
	Conflict           = "Conflict"
	UnknownError       = "UnknownError"
)

const (
	notFoundMessage         = "record not found"
	validationErrorMessage  = "validation error"
	repositoryErrorMessage  = "error in repository operation"
	notAuthenticatedMessage = "not authenticated"
	notAuthorizedMessage    = "not authorized"
	channelUnavailableMsg   = "messaging channel is not ready"
	conflictMessage         = "another operation is already in progress"
	unknownErrorMessage     = "something went wrong"
)

// AppError wraps a cause with a coarse error type controllers and the
// error-handler middleware agree on.
type AppError struct {
	Err  error
	Type string
}

func NewAppError(err error, errType string) *AppError {
	return &AppError{
		Err:  err,
		Type: errType,
	}
}

func NewAppErrorWithType(errType string) *AppError {
	var err error
	switch errType {
	case NotFound:
		err = errors.New(notFoundMessage)
	case ValidationError:
		err = errors.New(validationErrorMessage)
	case RepositoryError:
		err = errors.New(repositoryErrorMessage)
	case NotAuthenticated:
		err = errors.New(notAuthenticatedMessage)
	case NotAuthorized:
		err = errors.New(notAuthorizedMessage)
	case ChannelUnavailable:
		err = errors.New(channelUnavailableMsg)
	case Conflict:
		err = errors.New(conflictMessage)
	default:
		err = errors.New(unknownErrorMessage)
	}
	return &AppError{
		Err:  err,
		Type: errType,
	}
}

func (e *AppError) Error() string {
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
