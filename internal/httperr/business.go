package httperr

import "errors"

// BusinessError carries a stable domain failure code across layers. Handlers
// translate codes into HTTP statuses; internal detail never leaks to callers.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsAnyBusiness(err error) bool {
	var be BusinessError
	return errors.As(err, &be)
}
