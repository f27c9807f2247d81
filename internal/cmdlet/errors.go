package cmdlet

import (
	"errors"
	"fmt"
	"net"
)

// EndpointError reports that the service endpoint could not be resolved.
// The underlying failure is kept as the cause.
type EndpointError struct {
	Endpoint string
	Region   string
	Err      error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("could not resolve the service endpoint %q for region %q: check the region name and network connectivity: %v",
		e.Endpoint, e.Region, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }

// ResolveFailure inspects an error's cause chain and reports the endpoint
// whose name resolution failed.
type ResolveFailure func(err error) (endpoint string, ok bool)

// DNSFailure detects a *net.DNSError anywhere in the cause chain.
func DNSFailure(err error) (string, bool) {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Name, true
	}
	return "", false
}

// classifyError rewraps endpoint resolution failures. Every other error,
// remote or local, is returned unchanged.
func classifyError(err error, target Target, resolve ResolveFailure) error {
	if err == nil {
		return nil
	}
	if resolve == nil {
		resolve = DNSFailure
	}
	if endpoint, ok := resolve(err); ok {
		return &EndpointError{Endpoint: endpoint, Region: target.Region, Err: err}
	}
	return err
}
