package codeexecutors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testResourceName = "arn:aws:lambda:us-central1:123456789012:function:code-interpreter"

type fakeCall struct {
	operationID string
	params      OperationParams
}

type fakeExtension struct {
	calls    []fakeCall
	err      error
	response map[string]interface{}
}

func (f *fakeExtension) Execute(_ context.Context, operationID string, params OperationParams) (map[string]interface{}, error) {
	f.calls = append(f.calls, fakeCall{operationID, params})
	return f.response, f.err
}

// testExecutor returns a LambdaCodeExecutor whose factory hands out ext and
// a pointer to the resource names the factory was called with.
func testExecutor(ext Extension) (*LambdaCodeExecutor, *[]string) {
	var names []string
	return NewLambdaCodeExecutor(testResourceName, func(_ context.Context, name string) (Extension, error) {
		names = append(names, name)
		return ext, nil
	}), &names
}

func TestInitIsLazy(t *testing.T) {
	e, names := testExecutor(&fakeExtension{})
	if e.extension != nil {
		t.Fatal("extension created by NewLambdaCodeExecutor")
	}
	if len(*names) != 0 {
		t.Fatalf("factory called %d times by NewLambdaCodeExecutor", len(*names))
	}
}

func TestCloneBeforeUse(t *testing.T) {
	e, _ := testExecutor(&fakeExtension{})
	clone := e.Clone()
	if clone == e {
		t.Fatal("Clone returned the receiver")
	}
	if clone.ResourceName != testResourceName || clone.extension != nil {
		t.Fatalf("%+v", clone)
	}
}

func TestCloneAfterUseDoesNotShareExtension(t *testing.T) {
	e, names := testExecutor(&fakeExtension{})
	if _, err := e.Extension(context.Background()); err != nil {
		t.Fatal(err)
	}
	clone := e.Clone()
	if clone.extension != nil {
		t.Fatal("Clone carried over the cached extension")
	}
	if _, err := clone.Extension(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(*names) != 2 {
		t.Fatalf("factory called %d times; expected once for the original and once for the clone", len(*names))
	}
}

func TestLazyLoadingAndCaching(t *testing.T) {
	ext := &fakeExtension{}
	e, names := testExecutor(ext)
	ctx := context.Background()

	first, err := e.Extension(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first != ext {
		t.Fatalf("got %v but expected %v", first, ext)
	}
	if diff := cmp.Diff([]string{testResourceName}, *names); diff != "" {
		t.Fatal(diff)
	}

	if _, err := e.Extension(ctx); err != nil {
		t.Fatal(err)
	}
	if len(*names) != 1 {
		t.Fatalf("factory called %d times", len(*names))
	}
}

func TestExecuteCodeFlow(t *testing.T) {
	ext := &fakeExtension{response: map[string]interface{}{
		"execution_result": "Final print output",
		"execution_error":  "",
		"output_files": []interface{}{
			map[string]interface{}{"name": "plot.png", "contents": "base64_plot_string"},
			map[string]interface{}{"name": "data.csv", "contents": "1,2,3"},
		},
	}}
	e, _ := testExecutor(ext)

	result, err := e.ExecuteCode(context.Background(), CodeExecutionInput{
		Code:        "df.plot()",
		ExecutionID: "test-session-42",
		InputFiles: []File{
			{Name: "input.txt", Content: "test content", MimeType: "text/plain"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(ext.calls) != 1 {
		t.Fatalf("Execute called %d times", len(ext.calls))
	}
	call := ext.calls[0]
	if call.operationID != "execute" {
		t.Errorf("operation ID %q", call.operationID)
	}
	if !strings.Contains(call.params.Code, "def explore_df(df: pd.DataFrame) -> None:") {
		t.Error("code payload must include the explore_df helper function")
	}
	if !strings.HasSuffix(strings.TrimSpace(call.params.Code), "df.plot()") {
		t.Error("user code must be appended at the end of the payload")
	}
	if call.params.SessionID != "test-session-42" {
		t.Errorf("session ID %q", call.params.SessionID)
	}
	if diff := cmp.Diff([]RemoteFile{{Name: "input.txt", Contents: "test content"}}, call.params.Files); diff != "" {
		t.Error(diff)
	}

	expected := CodeExecutionResult{
		Stdout: "Final print output",
		OutputFiles: []File{
			{Name: "plot.png", Content: "base64_plot_string", MimeType: "image/png"},
			{Name: "data.csv", Content: "1,2,3", MimeType: "text/csv"},
		},
	}
	if diff := cmp.Diff(expected, result); diff != "" {
		t.Error(diff)
	}
}

func TestExecuteCodeWithoutSessionOrFiles(t *testing.T) {
	ext := &fakeExtension{response: map[string]interface{}{
		"execution_result": "ok\n",
		"execution_error":  "warning\n",
		"output_files":     []map[string]interface{}{},
	}}
	e, _ := testExecutor(ext)
	result, err := e.ExecuteCode(context.Background(), CodeExecutionInput{Code: "print('ok')"})
	if err != nil {
		t.Fatal(err)
	}
	if params := ext.calls[0].params; params.SessionID != "" || params.Files != nil {
		t.Errorf("%+v", params)
	}
	if diff := cmp.Diff(CodeExecutionResult{Stdout: "ok\n", Stderr: "warning\n"}, result); diff != "" {
		t.Error(diff)
	}
}

func TestExecuteCodeAPIError(t *testing.T) {
	apiErr := errors.New("Vertex AI Service Unavailable")
	e, _ := testExecutor(&fakeExtension{err: apiErr})
	_, err := e.ExecuteCode(context.Background(), CodeExecutionInput{Code: "print('fail')"})
	if err != apiErr {
		t.Fatalf("got %v but expected %v", err, apiErr)
	}
	if err.Error() != "Vertex AI Service Unavailable" {
		t.Fatal(err)
	}
}

func TestExecuteCodeFactoryError(t *testing.T) {
	factoryErr := errors.New("no credentials")
	e := NewLambdaCodeExecutor(testResourceName, func(context.Context, string) (Extension, error) {
		return nil, factoryErr
	})
	if _, err := e.ExecuteCode(context.Background(), CodeExecutionInput{Code: "1"}); err != factoryErr {
		t.Fatal(err)
	}
	if e.extension != nil {
		t.Fatal("failed extension was cached")
	}
}

func TestExecuteCodeMalformedResponse(t *testing.T) {
	e, _ := testExecutor(&fakeExtension{response: map[string]interface{}{
		"execution_result": "Success",
	}})
	_, err := e.ExecuteCode(context.Background(), CodeExecutionInput{Code: "print('ok')"})
	var mkErr MissingKeyError
	if !errors.As(err, &mkErr) || mkErr != "output_files" {
		t.Fatalf("got %v but expected a MissingKeyError for output_files", err)
	}
}

func TestExecuteCodeWrongTypes(t *testing.T) {
	for _, response := range []map[string]interface{}{
		{"execution_result": 42, "output_files": []interface{}{}},
		{"execution_result": "", "output_files": "plot.png"},
		{"execution_result": "", "output_files": []interface{}{"plot.png"}},
		{"execution_result": "", "output_files": []interface{}{map[string]interface{}{"name": "plot.png", "contents": 7}}},
	} {
		e, _ := testExecutor(&fakeExtension{response: response})
		_, err := e.ExecuteCode(context.Background(), CodeExecutionInput{Code: "1"})
		var wtErr WrongTypeError
		if !errors.As(err, &wtErr) {
			t.Errorf("%v: got %v but expected a WrongTypeError", response, err)
		}
	}
}

func TestResourceNameFromEnvironment(t *testing.T) {
	t.Setenv(ResourceNameEnv, "code-interpreter")
	e := NewLambdaCodeExecutor("", nil)
	if e.ResourceName != "code-interpreter" {
		t.Fatal(e.ResourceName)
	}

	t.Setenv(ResourceNameEnv, "")
	e = NewLambdaCodeExecutor("", nil)
	if _, err := e.Extension(context.Background()); err != ErrNoResourceName {
		t.Fatal(err)
	}
}

func TestWithPreamble(t *testing.T) {
	code := WithPreamble("print(1)\n")
	if !strings.HasPrefix(code, Preamble) || !strings.HasSuffix(code, "\n\nprint(1)\n") {
		t.Fatalf("%q", code)
	}
}
