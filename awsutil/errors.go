package awsutil

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Error codes the Lambda API returns that callers of this module care about.
const (
	AccessDeniedException     = "AccessDeniedException"
	ResourceNotFoundException = "ResourceNotFoundException"
	TooManyRequestsException  = "TooManyRequestsException"
)

// ErrorCode returns the API error code from err or the empty string if err
// didn't come from an AWS API.
func ErrorCode(err error) string {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return ae.ErrorCode()
	}
	return ""
}

func ErrorCodeIs(err error, code string) bool {
	return ErrorCode(err) == code
}

// ErrorMessage returns the API error message from err or, if err didn't come
// from an AWS API, err.Error().
func ErrorMessage(err error) string {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return ae.ErrorMessage()
	}
	return err.Error()
}
