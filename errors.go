package xlformula

// ErrorCode identifies the failure class of a BuildError
type ErrorCode uint8

const (
	ErrCodeTooFewArguments      ErrorCode = 1 // a call supplied fewer arguments than required
	ErrCodeTooManyArguments     ErrorCode = 2 // a call supplied more arguments than required plus optional
	ErrCodeInvalidReference     ErrorCode = 3 // a column or row input the codec cannot build from
	ErrCodeMalformedReference   ErrorCode = 4 // reference text missing an expected sub-pattern
	ErrCodeUnsupportedValueType ErrorCode = 5 // a value that cannot be coerced into a node
	ErrCodeInvalidDescriptor    ErrorCode = 6 // a descriptor registered with a bad name or arity
	ErrCodeNotImplemented       ErrorCode = 7 // evaluation requested for a render-only descriptor
)

// errorCodeMapper maps error codes to their short labels
var errorCodeMapper = map[ErrorCode]string{
	ErrCodeTooFewArguments:      "too few arguments",
	ErrCodeTooManyArguments:     "too many arguments",
	ErrCodeInvalidReference:     "invalid reference",
	ErrCodeMalformedReference:   "malformed reference",
	ErrCodeUnsupportedValueType: "unsupported value type",
	ErrCodeInvalidDescriptor:    "invalid descriptor",
	ErrCodeNotImplemented:       "not implemented",
}

// BuildError is the error type for every failure the library reports.
// construction errors are fatal to the construction step that raised them;
// a tree is either fully built or not built at all.
type BuildError struct {
	Code    ErrorCode
	Message string
}

func (e *BuildError) Error() string {
	if e.Message != "" {
		return errorCodeMapper[e.Code] + ": " + e.Message
	}
	return errorCodeMapper[e.Code]
}

func NewBuildError(code ErrorCode, message string) *BuildError {
	return &BuildError{
		Code:    code,
		Message: message,
	}
}

// IsCode reports whether err is a *BuildError carrying the given code
func IsCode(err error, code ErrorCode) bool {
	be, ok := err.(*BuildError)
	return ok && be.Code == code
}
