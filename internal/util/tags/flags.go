package tags

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/samber/lo"
)

// TagValue is a repeatable flag value collecting Key=Value tags.
// The destination slice stays nil until the flag is given.
type TagValue struct {
	dst     *[]types.Tag
	builder *Builder
}

// NewTagValue returns a flag value writing tags into dst.
func NewTagValue(dst *[]types.Tag) *TagValue {
	return &TagValue{dst: dst, builder: NewBuilder()}
}

// Set parses one Key=Value pair.
func (v *TagValue) Set(s string) error {
	key, value, err := ParsePair(s)
	if err != nil {
		return err
	}
	v.builder.With(key, value)
	*v.dst = v.builder.Build()
	return nil
}

// String renders the collected tags.
func (v *TagValue) String() string {
	if v.dst == nil || *v.dst == nil {
		return ""
	}
	return strings.Join(lo.Map(*v.dst, func(t types.Tag, _ int) string {
		return aws.ToString(t.Key) + "=" + aws.ToString(t.Value)
	}), ",")
}

// Type names the flag type in help output.
func (v *TagValue) Type() string { return "Key=Value" }

// FilterValue is a repeatable flag value collecting describe filters.
type FilterValue struct {
	dst *[]types.Filter
}

// NewFilterValue returns a flag value writing filters into dst.
func NewFilterValue(dst *[]types.Filter) *FilterValue {
	return &FilterValue{dst: dst}
}

// Set parses one filter expression.
func (v *FilterValue) Set(s string) error {
	f, err := ParseFilter(s)
	if err != nil {
		return err
	}
	*v.dst = append(*v.dst, f)
	return nil
}

// String renders the collected filters.
func (v *FilterValue) String() string {
	if v.dst == nil || *v.dst == nil {
		return ""
	}
	return strings.Join(lo.Map(*v.dst, func(f types.Filter, _ int) string {
		return aws.ToString(f.Name) + "=" + strings.Join(f.Values, ",")
	}), ";")
}

// Type names the flag type in help output.
func (v *FilterValue) Type() string { return "filter" }
