package regfile

import "errors"

// ErrInvalidHeader indicates the input did not start with any recognized
// .reg signature. This is the only parse problem that fails an import
// outright.
var ErrInvalidHeader = errors.New("regfile: invalid registry file header")
