package stratiscmd

import "errors"

var (
	ErrFlagInvalid = errors.New("invalid command flag")

	ErrNoDevice = errors.New("no block device specified")

	ErrPrint = errors.New("print")
)
