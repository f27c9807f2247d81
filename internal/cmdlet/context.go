package cmdlet

import (
	"github.com/google/uuid"
)

// Credentials are static access keys. The zero value means the SDK's
// default credential chain (environment, shared profile, instance role).
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// IsZero reports whether no static credentials are configured.
func (c Credentials) IsZero() bool {
	return c.AccessKeyID == "" && c.SecretAccessKey == ""
}

// Target identifies the region and credentials a client is bound to.
// It is comparable and used as the client cache key.
type Target struct {
	Region      string
	Profile     string
	EndpointURL string
	Credentials Credentials
}

// Paging holds the caller's pagination controls for list operations.
type Paging struct {
	NextToken  *string
	MaxResults *int32
	MaxItems   *int
	NoPaginate bool
}

// Manual reports whether the caller controls pagination, in which case
// exactly one page is fetched.
func (p Paging) Manual() bool {
	return p.NextToken != nil || p.MaxResults != nil || p.NoPaginate
}

// Switches are the per-invocation options every operation shares.
type Switches struct {
	Force    bool
	PassThru bool
	Paging   Paging
}

// Context is the execution context of one invocation. It is built once by
// NewContext after binding and only read afterwards.
type Context[P any] struct {
	ID       string
	Target   Target
	Params   P
	Switches Switches
}

// NewContext builds the execution context for one invocation.
func NewContext[P any](target Target, params P, sw Switches) Context[P] {
	return Context[P]{
		ID:       uuid.NewString(),
		Target:   target,
		Params:   params,
		Switches: sw,
	}
}
