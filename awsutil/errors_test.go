package awsutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func TestErrorCode(t *testing.T) {
	apiErr := &smithy.GenericAPIError{
		Code:    ResourceNotFoundException,
		Message: "Function not found: arn:aws:lambda:us-west-2:123456789012:function:code-interpreter",
	}
	wrapped := fmt.Errorf("invoking: %w", apiErr)
	if code := ErrorCode(wrapped); code != ResourceNotFoundException {
		t.Errorf("ErrorCode got %q", code)
	}
	if !ErrorCodeIs(wrapped, ResourceNotFoundException) {
		t.Error("ErrorCodeIs got false")
	}
	if msg := ErrorMessage(wrapped); msg != apiErr.Message {
		t.Errorf("ErrorMessage got %q", msg)
	}

	plain := errors.New("Vertex AI Service Unavailable")
	if code := ErrorCode(plain); code != "" {
		t.Errorf("ErrorCode got %q for a non-API error", code)
	}
	if msg := ErrorMessage(plain); msg != plain.Error() {
		t.Errorf("ErrorMessage got %q", msg)
	}
}
