package awslambda

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/google/go-cmp/cmp"
	"github.com/src-bin/adk/codeexecutors"
)

type fakeInvoker struct {
	in  *lambda.InvokeInput
	out *lambda.InvokeOutput
	err error
}

func (f *fakeInvoker) Invoke(_ context.Context, in *lambda.InvokeInput, _ ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.in = in
	return f.out, f.err
}

func TestExecute(t *testing.T) {
	invoker := &fakeInvoker{out: &lambda.InvokeOutput{
		Payload:    []byte(`{"execution_result":"3\n","execution_error":"","output_files":[{"name":"data.csv","contents":"MSwyLDM="}]}`),
		StatusCode: 200,
	}}
	ext := NewExtension(invoker, "code-interpreter")

	response, err := ext.Execute(context.Background(), codeexecutors.ExecuteOperationID, codeexecutors.OperationParams{
		Code:      "print(1 + 2)",
		Files:     []codeexecutors.RemoteFile{{Name: "input.txt", Contents: "dGVzdA=="}},
		SessionID: "test-session-42",
	})
	if err != nil {
		t.Fatal(err)
	}

	if name := aws.ToString(invoker.in.FunctionName); name != "code-interpreter" {
		t.Errorf("invoked %q", name)
	}
	if invoker.in.InvocationType != types.InvocationTypeRequestResponse {
		t.Errorf("invocation type %q", invoker.in.InvocationType)
	}
	var request map[string]interface{}
	if err := json.Unmarshal(invoker.in.Payload, &request); err != nil {
		t.Fatal(err)
	}
	expectedRequest := map[string]interface{}{
		"operation_id": "execute",
		"operation_params": map[string]interface{}{
			"code":       "print(1 + 2)",
			"files":      []interface{}{map[string]interface{}{"name": "input.txt", "contents": "dGVzdA=="}},
			"session_id": "test-session-42",
		},
	}
	if diff := cmp.Diff(expectedRequest, request); diff != "" {
		t.Error(diff)
	}

	expectedResponse := map[string]interface{}{
		"execution_result": "3\n",
		"execution_error":  "",
		"output_files":     []interface{}{map[string]interface{}{"name": "data.csv", "contents": "MSwyLDM="}},
	}
	if diff := cmp.Diff(expectedResponse, response); diff != "" {
		t.Error(diff)
	}
}

func TestExecuteOmitsEmptyParams(t *testing.T) {
	invoker := &fakeInvoker{out: &lambda.InvokeOutput{Payload: []byte(`{}`)}}
	if _, err := NewExtension(invoker, "f").Execute(context.Background(), "execute", codeexecutors.OperationParams{Code: "1"}); err != nil {
		t.Fatal(err)
	}
	if payload := string(invoker.in.Payload); payload != `{"operation_id":"execute","operation_params":{"code":"1"}}` {
		t.Fatal(payload)
	}
}

func TestExecuteAPIError(t *testing.T) {
	apiErr := errors.New("Service Unavailable")
	_, err := NewExtension(&fakeInvoker{err: apiErr}, "f").Execute(context.Background(), "execute", codeexecutors.OperationParams{})
	if err != apiErr {
		t.Fatal(err)
	}
}

func TestExecuteFunctionError(t *testing.T) {
	invoker := &fakeInvoker{out: &lambda.InvokeOutput{
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`{"errorMessage":"unsupported operation \"explode\"","errorType":"UnsupportedOperationError"}`),
	}}
	_, err := NewExtension(invoker, "f").Execute(context.Background(), "explode", codeexecutors.OperationParams{})
	var fErr *FunctionError
	if !errors.As(err, &fErr) {
		t.Fatalf("got %v but expected a *FunctionError", err)
	}
	if expected := `Unhandled Lambda function error: UnsupportedOperationError: unsupported operation "explode"`; err.Error() != expected {
		t.Fatalf("got %q but expected %q", err.Error(), expected)
	}
}

func TestExecuteFunctionErrorUnstructured(t *testing.T) {
	invoker := &fakeInvoker{out: &lambda.InvokeOutput{
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`Task timed out after 60.00 seconds`),
	}}
	_, err := NewExtension(invoker, "f").Execute(context.Background(), "execute", codeexecutors.OperationParams{})
	if expected := "Unhandled Lambda function error: Task timed out after 60.00 seconds"; err == nil || err.Error() != expected {
		t.Fatalf("got %v but expected %q", err, expected)
	}
}

func TestExtensionWithLambdaCodeExecutor(t *testing.T) {
	invoker := &fakeInvoker{out: &lambda.InvokeOutput{
		Payload: []byte(`{"execution_result":"Success"}`),
	}}
	e := codeexecutors.NewLambdaCodeExecutor("f", func(_ context.Context, name string) (codeexecutors.Extension, error) {
		return NewExtension(invoker, name), nil
	})
	_, err := e.ExecuteCode(context.Background(), codeexecutors.CodeExecutionInput{Code: "print('ok')"})
	var mkErr codeexecutors.MissingKeyError
	if !errors.As(err, &mkErr) {
		t.Fatalf("got %v but expected a MissingKeyError", err)
	}
}
