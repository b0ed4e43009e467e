package formfile

import "errors"

var (
	// ErrUnsupportedFormat is returned for files whose extension is not
	// .json, .yaml, .yml or .toml.
	ErrUnsupportedFormat = errors.New("formfile: unsupported format")
	// ErrDuplicateForm is returned when two files define the same form id.
	ErrDuplicateForm = errors.New("formfile: duplicate form")
)
