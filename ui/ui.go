package ui

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/src-bin/adk/awsutil"
	"github.com/src-bin/adk/version"
)

func Fatal(args ...interface{}) {
	args = dereference(args)
	for i, arg := range args {
		if err, ok := arg.(error); ok {
			args[i] = helpful(err)
		}
	}
	op(opFatal, fmt.Sprint(withCaller(args...)...))
}

func Must(err error) {
	if err != nil {
		op(opFatal, fmt.Sprint(withCaller(helpful(err))...))
	}
}

// Must2 is Must for functions that return a value alongside their error.
func Must2[T any](v T, err error) T {
	if err != nil {
		op(opFatal, fmt.Sprint(withCaller(helpful(err))...))
	}
	return v
}

func Print(args ...interface{}) {
	args = dereference(args)
	op(opPrint, fmt.Sprint(args...))
}

func Printf(format string, args ...interface{}) {
	args = dereference(args)
	op(opPrint, fmt.Sprintf(format, args...))
}

// Quiet suppresses all further status and diagnostic output. Fatal errors
// and warnings are still printed.
func Quiet() {
	op(opQuiet, "")
}

// SetOutput redirects all further output, which goes to standard error
// unless this is called.
func SetOutput(w io.Writer) {
	ch := make(chan struct{})
	chInst <- instruction{ch: ch, opcode: opOutput, w: w}
	<-ch
}

func Spin(args ...interface{}) {
	args = dereference(args)
	op(opSpin, fmt.Sprint(args...))
}

func Spinf(format string, args ...interface{}) {
	args = dereference(args)
	op(opSpin, fmt.Sprintf(format, args...))
}

func Stop(args ...interface{}) {
	args = dereference(args)
	op(opStop, fmt.Sprint(args...))
}

// StopErr calls Stop with either the error code from the given non-nil error as an argument or
// with the string "ok" otherwise.
func StopErr(err error) error {
	s := "ok"
	if err != nil {
		s = awsutil.ErrorCode(err)
		if s == "" {
			s = err.Error()
		}
	}
	Stop(s)
	return err
}

// Warn prints like Print but isn't suppressed by Quiet.
func Warn(args ...interface{}) {
	args = dereference(args)
	op(opWarn, fmt.Sprint(args...))
}

func dereference(args []interface{}) []interface{} {
	returns := make([]interface{}, len(args))
	for i, arg := range args {
		if p, ok := arg.(*string); ok {
			if p != nil {
				returns[i] = *p
			} else {
				returns[i] = ""
			}
		} else {
			returns[i] = args[i]
		}
	}
	return returns
}

// helpful might swap an obtuse error for one that's more helpful so that the
// fatal error that's about to terminate the program can be...helpful.
func helpful(err error) error {

	// The code interpreter's Lambda function can't be found without a
	// region and the AWS SDK won't guess one.
	var mrErr *aws.MissingRegionError
	if errors.As(err, &mrErr) {
		return errors.New("couldn't find your AWS region; set AWS_REGION in your environment, pass --region, or set region in the [code_interpreter] section of adk.toml")
	}

	// If the AWS SDK reports a signing error the most likely explanation is
	// that there aren't any AWS credentials in the environment.
	var sErr *v4.SigningError
	if errors.As(err, &sErr) {
		return fmt.Errorf("%w\ncouldn't find AWS credentials in the environment", err)
	}

	return err
}

func shorten(pathname string) string {
	return filepath.Join(
		filepath.Base(filepath.Dir(pathname)),
		filepath.Base(pathname),
	)
}

// withCaller decorates log lines with caller information, though in a way that
// feels less to users like they did something horrible. This is cribbed
// from the standard library's log.Logger.Output.
// <https://cs.opensource.google/go/go/+/refs/tags/go1.18.3:src/log/log.go;l=172>
func withCaller(args ...interface{}) []interface{} {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		fatal := fmt.Sprintf("%s:%d", shorten(file), line)
		_, file, line, ok = runtime.Caller(3)
		if ok {
			args = append(args, fmt.Sprintf(
				" (%s via %s:%d; adk version %s)",
				fatal,
				shorten(file),
				line,
				version.Version,
			))
		} else {
			args = append(args, fmt.Sprintf(
				" (%s; adk version %s)",
				fatal,
				version.Version,
			))
		}
	}
	return args
}
