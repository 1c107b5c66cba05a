package awslambda

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/src-bin/adk/awscfg"
	"github.com/src-bin/adk/awscloudwatch"
	"github.com/src-bin/adk/awsutil"
	"github.com/src-bin/adk/ui"
	"github.com/src-bin/adk/version"
)

const (
	ResourceConflictException = "ResourceConflictException"

	handler = "bootstrap"
	runtime = types.RuntimeProvidedal2

	logRetention = 7 // days
)

// Function describes a Lambda function built from this module's
// adk-code-interpreter program, zipped with its bootstrap at the root.
type Function struct {
	Name, RoleARN string
	Environment   map[string]string
	Layers        []string // e.g. a layer that provides python3
	MemorySize    int32    // in MB
	Timeout       int32    // in seconds
	Zip           []byte
}

// EnsureFunction creates the Lambda function or, if it already exists,
// updates its configuration and code to match fn.
func EnsureFunction(ctx context.Context, cfg *awscfg.Config, fn *Function) (functionARN string, err error) {
	ui.Spinf("finding or creating the %s Lambda function", fn.Name)
	functionARN, err = createFunction(ctx, cfg, fn)
	if awsutil.ErrorCodeIs(err, ResourceConflictException) {
		ui.Stop("already exists")
		ui.Spinf("updating the %s Lambda function's configuration", fn.Name)
		functionARN, err = updateFunctionConfiguration(ctx, cfg, fn)
		ui.StopErr(err)
		if err != nil {
			return
		}
		ui.Spinf("updating the %s Lambda function's code", fn.Name)
		err = updateFunctionCode(ctx, cfg, fn)
	}
	ui.StopErr(err)
	return
}

func createFunction(ctx context.Context, cfg *awscfg.Config, fn *Function) (functionARN string, err error) {
	if err = awscloudwatch.EnsureLogGroup(ctx, cfg, fmt.Sprintf("/aws/lambda/%s", fn.Name), logRetention); err != nil {
		return
	}

	var out *lambda.CreateFunctionOutput
	out, err = cfg.Lambda().CreateFunction(ctx, &lambda.CreateFunctionInput{
		Architectures: []types.Architecture{types.ArchitectureArm64},
		Code:          &types.FunctionCode{ZipFile: fn.Zip},
		Environment:   &types.Environment{Variables: fn.Environment},
		FunctionName:  aws.String(fn.Name),
		Handler:       aws.String(handler),
		Layers:        fn.Layers,
		MemorySize:    optionalInt32(fn.MemorySize),
		PackageType:   types.PackageTypeZip,
		Role:          aws.String(fn.RoleARN),
		Runtime:       runtime,
		Tags: map[string]string{
			"Manager":     "adk",
			"adk:Version": version.Version,
		},
		Timeout: optionalInt32(fn.Timeout),
	})
	if err == nil {
		functionARN = aws.ToString(out.FunctionArn)
	}
	return
}

func optionalInt32(i int32) *int32 {
	if i == 0 {
		return nil
	}
	return aws.Int32(i)
}

func updateFunctionCode(ctx context.Context, cfg *awscfg.Config, fn *Function) (err error) {
	for jeb := awsutil.StandardJitteredExponentialBackoff(); jeb(); {
		_, err = cfg.Lambda().UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
			Architectures: []types.Architecture{types.ArchitectureArm64},
			FunctionName:  aws.String(fn.Name),
			Publish:       true,
			ZipFile:       fn.Zip,
		})

		// Lambda refuses to update code while a configuration update is
		// still in progress.
		if !awsutil.ErrorCodeIs(err, ResourceConflictException) {
			break
		}
	}
	return
}

func updateFunctionConfiguration(ctx context.Context, cfg *awscfg.Config, fn *Function) (functionARN string, err error) {
	for jeb := awsutil.StandardJitteredExponentialBackoff(); jeb(); {
		var out *lambda.UpdateFunctionConfigurationOutput
		out, err = cfg.Lambda().UpdateFunctionConfiguration(ctx, &lambda.UpdateFunctionConfigurationInput{
			Environment:  &types.Environment{Variables: fn.Environment},
			FunctionName: aws.String(fn.Name),
			Handler:      aws.String(handler),
			Layers:       fn.Layers,
			MemorySize:   optionalInt32(fn.MemorySize),
			Role:         aws.String(fn.RoleARN),
			Runtime:      runtime,
			Timeout:      optionalInt32(fn.Timeout),
		})
		if err == nil {
			functionARN = aws.ToString(out.FunctionArn)
			break
		} else if !awsutil.ErrorCodeIs(err, ResourceConflictException) {
			break
		}
	}
	return
}
