package service

// InvalidInputError marks a failure caused by what the client sent. Its
// message is safe to return to the client.
type InvalidInputError struct {
	Err error
}

func (e *InvalidInputError) Error() string {
	return e.Err.Error()
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

func invalidInput(err error) error {
	return &InvalidInputError{Err: err}
}
