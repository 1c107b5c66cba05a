package codeexecutors

import (
	"context"
	"fmt"
)

// File is a file passed to or produced by a code interpreter. Content is
// the base64 encoding of the file's bytes, as it travels over the wire.
type File struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`
}

type CodeExecutionInput struct {
	Code string

	// ExecutionID identifies a session whose state (variables, files)
	// should carry over between executions. Empty means no session.
	ExecutionID string

	InputFiles []File
}

type CodeExecutionResult struct {
	Stdout      string
	Stderr      string
	OutputFiles []File
}

// CodeExecutor runs code somewhere and reports what happened.
type CodeExecutor interface {
	ExecuteCode(context.Context, CodeExecutionInput) (CodeExecutionResult, error)
}

// MissingKeyError is returned when the code interpreter's response lacks a
// key it's contractually obligated to include.
type MissingKeyError string

func (err MissingKeyError) Error() string {
	return fmt.Sprintf("code interpreter response is missing %q", string(err))
}

// WrongTypeError is returned when a key in the code interpreter's response
// has a value of an unexpected type.
type WrongTypeError struct {
	Key   string
	Value interface{}
}

func (err WrongTypeError) Error() string {
	return fmt.Sprintf("code interpreter response has %q of type %T", err.Key, err.Value)
}
