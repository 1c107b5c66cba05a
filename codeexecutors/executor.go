package codeexecutors

import (
	"context"
	"errors"
	"os"
)

const (
	// ExecuteOperationID is the only operation the code interpreter offers.
	ExecuteOperationID = "execute"

	// ResourceNameEnv names the code interpreter when no resource name is
	// given explicitly.
	ResourceNameEnv = "ADK_CODE_INTERPRETER_FUNCTION"
)

// ErrNoResourceName is returned when a LambdaCodeExecutor was constructed
// without a resource name and none was found in the environment.
var ErrNoResourceName = errors.New("no code interpreter resource name given and " + ResourceNameEnv + " is not set")

// Extension is a handle to a remote code interpreter.
type Extension interface {
	Execute(ctx context.Context, operationID string, params OperationParams) (map[string]interface{}, error)
}

// ExtensionFactory makes an Extension for the named remote resource.
type ExtensionFactory func(ctx context.Context, resourceName string) (Extension, error)

// Request is an operation and its parameters as they're serialized for the
// remote code interpreter.
type Request struct {
	OperationID     string          `json:"operation_id"`
	OperationParams OperationParams `json:"operation_params"`
}

// OperationParams are the parameters of the execute operation as they're
// serialized for the remote code interpreter.
type OperationParams struct {
	Code      string       `json:"code"`
	Files     []RemoteFile `json:"files,omitempty"`
	SessionID string       `json:"session_id,omitempty"`
}

// RemoteFile is a File as the remote code interpreter sees it, with no MIME
// type.
type RemoteFile struct {
	Name     string `json:"name"`
	Contents string `json:"contents"`
}

// LambdaCodeExecutor executes code in a code interpreter that runs as an AWS
// Lambda function, identified by its name or ARN. The handle to the function
// isn't made until it's first needed and is then reused for the life of the
// LambdaCodeExecutor.
//
// A LambdaCodeExecutor is not safe for concurrent use; Clone one per
// goroutine instead.
type LambdaCodeExecutor struct {
	ResourceName string
	NewExtension ExtensionFactory

	extension Extension
}

// NewLambdaCodeExecutor returns a LambdaCodeExecutor for the named resource
// or, if resourceName is empty, the resource named by the
// ADK_CODE_INTERPRETER_FUNCTION environment variable.
func NewLambdaCodeExecutor(resourceName string, newExtension ExtensionFactory) *LambdaCodeExecutor {
	if resourceName == "" {
		resourceName = os.Getenv(ResourceNameEnv)
	}
	return &LambdaCodeExecutor{
		ResourceName: resourceName,
		NewExtension: newExtension,
	}
}

// Clone returns a copy of e that will make its own Extension when it's first
// needed. Cloning is safe whether or not e has been used.
func (e *LambdaCodeExecutor) Clone() *LambdaCodeExecutor {
	return &LambdaCodeExecutor{
		ResourceName: e.ResourceName,
		NewExtension: e.NewExtension,
	}
}

// ExecuteCode sends input's code, with Preamble ahead of it, and input files
// to the code interpreter and translates its response. Errors from the code
// interpreter are returned as-is.
func (e *LambdaCodeExecutor) ExecuteCode(ctx context.Context, input CodeExecutionInput) (CodeExecutionResult, error) {
	extension, err := e.Extension(ctx)
	if err != nil {
		return CodeExecutionResult{}, err
	}

	params := OperationParams{
		Code:      WithPreamble(input.Code),
		SessionID: input.ExecutionID,
	}
	for _, f := range input.InputFiles {
		params.Files = append(params.Files, RemoteFile{Name: f.Name, Contents: f.Content})
	}

	response, err := extension.Execute(ctx, ExecuteOperationID, params)
	if err != nil {
		return CodeExecutionResult{}, err
	}
	return parseResponse(response)
}

// Extension returns the handle to the code interpreter, making it first if
// this is the first time it's needed.
func (e *LambdaCodeExecutor) Extension(ctx context.Context) (Extension, error) {
	if e.extension != nil {
		return e.extension, nil
	}
	if e.ResourceName == "" {
		return nil, ErrNoResourceName
	}
	if e.NewExtension == nil {
		return nil, errors.New("LambdaCodeExecutor has no ExtensionFactory")
	}
	extension, err := e.NewExtension(ctx, e.ResourceName)
	if err != nil {
		return nil, err
	}
	e.extension = extension
	return extension, nil
}

func parseResponse(response map[string]interface{}) (result CodeExecutionResult, err error) {
	if result.Stdout, err = stringValue(response, "execution_result", true); err != nil {
		return
	}
	if result.Stderr, err = stringValue(response, "execution_error", false); err != nil {
		return
	}

	v, ok := response["output_files"]
	if !ok {
		return CodeExecutionResult{}, MissingKeyError("output_files")
	}
	var outputFiles []map[string]interface{}
	switch v := v.(type) {
	case nil:
	case []map[string]interface{}:
		outputFiles = v
	case []interface{}:
		for _, f := range v {
			m, ok := f.(map[string]interface{})
			if !ok {
				return CodeExecutionResult{}, WrongTypeError{"output_files", f}
			}
			outputFiles = append(outputFiles, m)
		}
	default:
		return CodeExecutionResult{}, WrongTypeError{"output_files", v}
	}

	for _, m := range outputFiles {
		name, err := stringValue(m, "name", true)
		if err != nil {
			return CodeExecutionResult{}, err
		}
		contents, err := stringValue(m, "contents", true)
		if err != nil {
			return CodeExecutionResult{}, err
		}
		result.OutputFiles = append(result.OutputFiles, File{
			Name:     name,
			Content:  contents,
			MimeType: MimeType(name),
		})
	}

	return result, nil
}

func stringValue(m map[string]interface{}, key string, required bool) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required && !ok {
			return "", MissingKeyError(key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", WrongTypeError{key, v}
	}
	return s, nil
}
