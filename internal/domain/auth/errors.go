package auth

import "fmt"

// AuthErrorKind classifies failures of calls to the account API.
type AuthErrorKind string

const (
	// ErrKindInvalidCredentials means the server rejected the credentials.
	ErrKindInvalidCredentials AuthErrorKind = "invalid_credentials"
	// ErrKindTransport means no usable response came back from the server.
	ErrKindTransport AuthErrorKind = "transport"
	// ErrKindServerMessage means the server answered with its own failure message.
	ErrKindServerMessage AuthErrorKind = "server_message"
)

// AuthError is returned by login, registration, and account deletion.
// Message holds the text the server sent, or for transport failures a short
// description of what went wrong; it may be empty. Detail is the client's
// own description of an HTTP failure, such as "Request failed with status
// code 500", for answers that carried no message.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Detail  string
	Cause   error
}

func (e *AuthError) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	default:
		return string(e.Kind)
	}
}

func (e *AuthError) Unwrap() error { return e.Cause }

// InvalidCredentials builds a credential rejection carrying the server message.
func InvalidCredentials(msg string) *AuthError {
	return &AuthError{Kind: ErrKindInvalidCredentials, Message: msg}
}

// ServerMessage builds a failure carrying the server's own message.
func ServerMessage(msg string) *AuthError {
	return &AuthError{Kind: ErrKindServerMessage, Message: msg}
}

// Transport builds a failure for requests that never produced a usable response.
func Transport(msg string, cause error) *AuthError {
	return &AuthError{Kind: ErrKindTransport, Message: msg, Cause: cause}
}
