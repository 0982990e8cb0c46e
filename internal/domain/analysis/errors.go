package analysis

// Client-facing messages for rejected requests.
const (
	MsgInvalidBody = "Invalid or missing JSON body"
	MsgNoContent   = "No content provided"
)

// ValidationError is a client-caused rejection. Message is safe to return verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
