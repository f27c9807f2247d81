package ec2

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"

	"github.com/imamik/ec2ctl/internal/cmdlet"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitLocal    = 1
	ExitAPI      = 2
	ExitEndpoint = 3
)

// ErrorCode returns the service error code, or "" if err is not a
// service error.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func hasCode(err error, codes ...string) bool {
	code := ErrorCode(err)
	return code != "" && slices.Contains(codes, code)
}

// IsNotFound checks if an error reports a missing resource, such as
// InvalidVolume.NotFound or InvalidInstanceID.NotFound.
func IsNotFound(err error) bool {
	code := ErrorCode(err)
	return strings.HasSuffix(code, ".NotFound") || code == "NotFound"
}

// IsThrottled checks if the request was rejected by rate limiting.
func IsThrottled(err error) bool {
	return hasCode(err, "RequestLimitExceeded", "Throttling", "ThrottlingException")
}

// IsUnauthorized checks if the caller lacks credentials or permissions.
func IsUnauthorized(err error) bool {
	return hasCode(err, "UnauthorizedOperation", "AuthFailure", "InvalidClientTokenId", "OptInRequired")
}

// IsDryRun checks for the error a successful dry run reports.
func IsDryRun(err error) bool {
	return hasCode(err, "DryRunOperation")
}

// ResolveFailure extends cmdlet.DNSFailure with the SDK's endpoint
// resolution error.
func ResolveFailure(err error) (string, bool) {
	if endpoint, ok := cmdlet.DNSFailure(err); ok {
		return endpoint, true
	}
	var notFound *aws.EndpointNotFoundError
	if errors.As(err, &notFound) {
		return "ec2", true
	}
	return "", false
}

// Describe renders err for the terminal. Service errors use the familiar
// AWS CLI wording; everything else is returned as is.
func Describe(err error) string {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	operation := "unknown"
	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		operation = opErr.Operation()
	}
	return fmt.Sprintf("An error occurred (%s) when calling the %s operation: %s",
		apiErr.ErrorCode(), operation, apiErr.ErrorMessage())
}

// ExitCode maps an invocation error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var endpointErr *cmdlet.EndpointError
	if errors.As(err, &endpointErr) {
		return ExitEndpoint
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return ExitAPI
	}
	return ExitLocal
}
