// Package apps holds small helpers shared by the application entry points.
package apps

// ArgumentError reports an invalid command line argument.
type ArgumentError struct {
	msg string
}

func NewArgumentError(msg string) *ArgumentError {
	return &ArgumentError{msg}
}

func (err *ArgumentError) Error() string {
	return err.msg
}
