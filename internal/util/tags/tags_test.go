package tags

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Parallel()
	got := NewBuilder().
		With("team", "storage").
		With("Name", "db-data").
		With("env", "prod").
		Build()

	require.Len(t, got, 3)
	assert.Equal(t, "Name", aws.ToString(got[0].Key))
	assert.Equal(t, "db-data", aws.ToString(got[0].Value))
	assert.Equal(t, "env", aws.ToString(got[1].Key))
	assert.Equal(t, "team", aws.ToString(got[2].Key))
}

func TestBuilder_LaterValueWins(t *testing.T) {
	t.Parallel()
	got := NewBuilder().With("env", "dev").With("env", "prod").Build()
	require.Len(t, got, 1)
	assert.Equal(t, "prod", aws.ToString(got[0].Value))
}

func TestSpecifications(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Specifications(types.ResourceTypeVolume, nil))

	specs := Specifications(types.ResourceTypeVolume, []types.Tag{{Key: aws.String("a"), Value: aws.String("b")}})
	require.Len(t, specs, 1)
	assert.Equal(t, types.ResourceTypeVolume, specs[0].ResourceType)
	assert.Len(t, specs[0].Tags, 1)
}

func TestParsePair(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		key     string
		value   string
		wantErr bool
	}{
		{name: "simple", input: "env=prod", key: "env", value: "prod"},
		{name: "empty value", input: "flag=", key: "flag", value: ""},
		{name: "value with equals", input: "expr=a=b", key: "expr", value: "a=b"},
		{name: "missing equals", input: "env", wantErr: true},
		{name: "empty key", input: "=prod", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			key, value, err := ParsePair(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestParseFilter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    types.Filter
		wantErr string
	}{
		{
			name:  "long form",
			input: "Name=instance-state-name,Values=running,stopped",
			want:  types.Filter{Name: aws.String("instance-state-name"), Values: []string{"running", "stopped"}},
		},
		{
			name:  "shorthand",
			input: "vpc-id=vpc-1",
			want:  types.Filter{Name: aws.String("vpc-id"), Values: []string{"vpc-1"}},
		},
		{
			name:  "tag filter keeps colon",
			input: "tag:env=prod",
			want:  types.Filter{Name: aws.String("tag:env"), Values: []string{"prod"}},
		},
		{name: "long form without values", input: "Name=vpc-id", wantErr: "expected Name=<name>,Values=<v1>,<v2>"},
		{name: "garbage", input: "nothing", wantErr: "expected Key=Value"},
		{name: "long form empty values", input: "Name=vpc-id,Values=", wantErr: "invalid filter vpc-id: filter has no values"},
		{name: "long form only commas", input: "Name=vpc-id,Values=,,", wantErr: "filter has no values"},
		{name: "shorthand empty value", input: "vpc-id=", wantErr: "filter has no values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFilter(tt.input)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagValue(t *testing.T) {
	t.Parallel()
	var dst []types.Tag
	v := NewTagValue(&dst)
	assert.Equal(t, "", v.String())

	require.NoError(t, v.Set("b=2"))
	require.NoError(t, v.Set("a=1"))
	assert.Equal(t, "a=1,b=2", v.String())
	assert.Len(t, dst, 2)
	assert.Error(t, v.Set("broken"))
}

func TestFilterValue(t *testing.T) {
	t.Parallel()
	var dst []types.Filter
	v := NewFilterValue(&dst)
	assert.Nil(t, dst)

	require.NoError(t, v.Set("vpc-id=vpc-1"))
	require.NoError(t, v.Set("Name=state,Values=available"))
	require.Len(t, dst, 2)
	assert.Equal(t, "vpc-id=vpc-1;state=available", v.String())
}
