package errors

// Error is a string which can be declared as a constant sentinel error.
type Error string

func (e Error) Error() string {
	return string(e)
}
