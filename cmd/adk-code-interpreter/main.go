package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/src-bin/adk/features"
	"github.com/src-bin/adk/interpreter"
	"github.com/src-bin/adk/ui"
)

// main serves the code interpreter as a Lambda function. See the interpreter
// package for its configuration, all of which comes from the environment.
func main() {
	h, err := interpreter.NewHandler()
	if err != nil {
		ui.Fatal(err)
	}
	h.Sessions = features.CodeInterpreterSessions.Enabled()
	lambda.Start(h.Handle)
}
