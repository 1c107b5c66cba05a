package awslambda

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/src-bin/adk/awscfg"
	"github.com/src-bin/adk/codeexecutors"
)

// Invoker is the part of *lambda.Client that an Extension needs.
type Invoker interface {
	Invoke(context.Context, *lambda.InvokeInput, ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Extension is a code interpreter running as a Lambda function. It satisfies
// codeexecutors.Extension.
type Extension struct {
	client       Invoker
	functionName string
}

func NewExtension(client Invoker, functionName string) *Extension {
	return &Extension{client: client, functionName: functionName}
}

// ExtensionFactory returns a codeexecutors.ExtensionFactory that makes
// Extensions which invoke Lambda functions using cfg.
func ExtensionFactory(cfg *awscfg.Config) codeexecutors.ExtensionFactory {
	return func(_ context.Context, functionName string) (codeexecutors.Extension, error) {
		return NewExtension(cfg.Lambda(), functionName), nil
	}
}

// Execute synchronously invokes the Lambda function with the operation and
// returns its decoded response. Errors from the Lambda API are returned
// as-is; errors raised by the function itself are returned as
// *FunctionError.
func (e *Extension) Execute(
	ctx context.Context,
	operationID string,
	params codeexecutors.OperationParams,
) (map[string]interface{}, error) {
	payload, err := json.Marshal(codeexecutors.Request{
		OperationID:     operationID,
		OperationParams: params,
	})
	if err != nil {
		return nil, err
	}

	out, err := e.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(e.functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, err
	}
	if out.FunctionError != nil {
		return nil, newFunctionError(aws.ToString(out.FunctionError), out.Payload)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(out.Payload, &response); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", e.functionName, err)
	}
	return response, nil
}

func (e *Extension) FunctionName() string {
	return e.functionName
}

// FunctionError is an error raised by a Lambda function, as opposed to an
// error returned by the Lambda API.
type FunctionError struct {
	Kind    string `json:"-"` // "Handled" or "Unhandled", per Lambda
	Message string `json:"errorMessage"`
	Type    string `json:"errorType"`
}

func newFunctionError(kind string, payload []byte) *FunctionError {
	err := &FunctionError{Kind: kind}
	if json.Unmarshal(payload, err) != nil || err.Message == "" {
		err.Message = string(payload)
	}
	return err
}

func (err *FunctionError) Error() string {
	if err.Type == "" {
		return fmt.Sprintf("%s Lambda function error: %s", err.Kind, err.Message)
	}
	return fmt.Sprintf("%s Lambda function error: %s: %s", err.Kind, err.Type, err.Message)
}
