package tags

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/samber/lo"
)

var (
	// ErrInvalidPair is returned for input that is not a Key=Value pair.
	ErrInvalidPair = errors.New("expected Key=Value")

	// ErrNoFilterValues is returned for a filter without any value.
	ErrNoFilterValues = errors.New("filter has no values")
)

// Builder collects tags for a single resource.
type Builder struct {
	tags map[string]string
}

// NewBuilder creates an empty tag builder.
func NewBuilder() *Builder {
	return &Builder{tags: make(map[string]string)}
}

// With sets a tag. A later value for the same key wins.
func (b *Builder) With(key, value string) *Builder {
	b.tags[key] = value
	return b
}

// Build returns the tags sorted by key.
func (b *Builder) Build() []types.Tag {
	keys := lo.Keys(b.tags)
	slices.Sort(keys)
	return lo.Map(keys, func(k string, _ int) types.Tag {
		return types.Tag{Key: aws.String(k), Value: aws.String(b.tags[k])}
	})
}

// Specifications wraps tags into the tag specification list used by create
// operations. It returns nil when tags is nil so the request field stays unset.
func Specifications(resource types.ResourceType, tags []types.Tag) []types.TagSpecification {
	if tags == nil {
		return nil
	}
	return []types.TagSpecification{{ResourceType: resource, Tags: tags}}
}

// ParsePair splits a Key=Value pair. The value may be empty; the key may not.
func ParsePair(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("%w, got %q", ErrInvalidPair, s)
	}
	return strings.TrimSpace(key), value, nil
}

// ParseFilter parses "Name=<name>,Values=<v1>,<v2>" or "<name>=<v1>,<v2>".
func ParseFilter(s string) (types.Filter, error) {
	if rest, ok := strings.CutPrefix(s, "Name="); ok {
		name, values, found := strings.Cut(rest, ",Values=")
		if !found || name == "" {
			return types.Filter{}, fmt.Errorf("invalid filter %q: expected Name=<name>,Values=<v1>,<v2>", s)
		}
		return newFilter(name, values)
	}

	name, values, err := ParsePair(s)
	if err != nil {
		return types.Filter{}, fmt.Errorf("invalid filter: %w", err)
	}
	return newFilter(name, values)
}

// newFilter splits the comma separated values. At least one must remain.
func newFilter(name, values string) (types.Filter, error) {
	split := lo.Filter(strings.Split(values, ","), func(v string, _ int) bool { return v != "" })
	if len(split) == 0 {
		return types.Filter{}, fmt.Errorf("invalid filter %s: %w", name, ErrNoFilterValues)
	}
	return types.Filter{Name: aws.String(name), Values: split}, nil
}
