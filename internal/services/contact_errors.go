package services

import (
	"errors"
	"fmt"
	"net/http"
)

type ContactErrorCode string

const (
	CodeCaptchaRequired ContactErrorCode = "CAPTCHA_REQUIRED"
	CodeCaptchaFailed   ContactErrorCode = "CAPTCHA_FAILED"
)

// ContactError is a client-correctable rejection of a contact submission.
// Abuse signals (honeypot, rate limit) never produce one.
type ContactError struct {
	Code    ContactErrorCode
	Status  int
	Message string
}

func (e *ContactError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ErrCaptchaRequired() *ContactError {
	return &ContactError{
		Code:    CodeCaptchaRequired,
		Status:  http.StatusBadRequest,
		Message: "CAPTCHA verification required",
	}
}

func ErrCaptchaFailed() *ContactError {
	return &ContactError{
		Code:    CodeCaptchaFailed,
		Status:  http.StatusBadRequest,
		Message: "CAPTCHA verification failed",
	}
}

// AsContactError unwraps err into a *ContactError if it is one.
func AsContactError(err error) (*ContactError, bool) {
	var ce *ContactError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
