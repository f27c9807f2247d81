package ec2

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ec2ctl/internal/cmdlet"
)

// recordingLoader resolves option functions the way LoadDefaultConfig
// would and records the result.
type recordingLoader struct {
	mu    sync.Mutex
	calls []config.LoadOptions
	err   error
}

func (l *recordingLoader) load(_ context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
	var opts config.LoadOptions
	for _, fn := range optFns {
		if err := fn(&opts); err != nil {
			return aws.Config{}, err
		}
	}
	l.mu.Lock()
	l.calls = append(l.calls, opts)
	l.mu.Unlock()
	if l.err != nil {
		return aws.Config{}, l.err
	}
	return aws.Config{Region: opts.Region}, nil
}

func newTestCache(retry RetryOptions) (*Cache, *recordingLoader) {
	loader := &recordingLoader{}
	c := NewCache(retry, nil)
	c.load = loader.load
	return c, loader
}

func TestCache_ReusesClientPerTarget(t *testing.T) {
	c, loader := newTestCache(RetryOptions{})
	ctx := context.Background()

	first, err := c.Client(ctx, cmdlet.Target{Region: "eu-west-1"})
	require.NoError(t, err)
	again, err := c.Client(ctx, cmdlet.Target{Region: "eu-west-1"})
	require.NoError(t, err)
	other, err := c.Client(ctx, cmdlet.Target{Region: "us-east-1"})
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Len(t, loader.calls, 2)
}

func TestCache_LoadOptions(t *testing.T) {
	c, loader := newTestCache(RetryOptions{MaxAttempts: 7, Mode: aws.RetryModeAdaptive})

	_, err := c.Client(context.Background(), cmdlet.Target{
		Region:  "eu-central-1",
		Profile: "ops",
		Credentials: cmdlet.Credentials{
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
		},
	})
	require.NoError(t, err)
	require.Len(t, loader.calls, 1)

	opts := loader.calls[0]
	assert.Equal(t, "eu-central-1", opts.Region)
	assert.Equal(t, "ops", opts.SharedConfigProfile)
	assert.Equal(t, 7, opts.RetryMaxAttempts)
	assert.Equal(t, aws.RetryModeAdaptive, opts.RetryMode)
	require.NotNil(t, opts.Credentials)

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestCache_DefaultsLeftToSDK(t *testing.T) {
	c, loader := newTestCache(RetryOptions{})
	c.load = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		_, _ = loader.load(ctx, optFns...)
		return aws.Config{Region: "from-environment"}, nil
	}

	_, err := c.Client(context.Background(), cmdlet.Target{})
	require.NoError(t, err)

	opts := loader.calls[0]
	assert.Empty(t, opts.Region)
	assert.Empty(t, opts.SharedConfigProfile)
	assert.Nil(t, opts.Credentials)
	assert.Zero(t, opts.RetryMaxAttempts)
	assert.Empty(t, opts.RetryMode)
}

func TestCache_EndpointOverride(t *testing.T) {
	c, _ := newTestCache(RetryOptions{})

	api, err := c.Client(context.Background(), cmdlet.Target{Region: "us-east-1", EndpointURL: "http://localhost:4566"})
	require.NoError(t, err)

	client, ok := api.(*ec2.Client)
	require.True(t, ok)
	require.NotNil(t, client.Options().BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *client.Options().BaseEndpoint)
}

func TestCache_Errors(t *testing.T) {
	t.Run("load failure", func(t *testing.T) {
		c, loader := newTestCache(RetryOptions{})
		loader.err = errors.New("bad profile")

		_, err := c.Client(context.Background(), cmdlet.Target{Region: "eu-west-1"})
		assert.ErrorContains(t, err, "bad profile")
	})

	t.Run("no region", func(t *testing.T) {
		c, _ := newTestCache(RetryOptions{})

		_, err := c.Client(context.Background(), cmdlet.Target{})
		assert.ErrorIs(t, err, ErrNoRegion)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		c, loader := newTestCache(RetryOptions{})
		loader.err = errors.New("transient")
		_, err := c.Client(context.Background(), cmdlet.Target{Region: "eu-west-1"})
		require.Error(t, err)

		loader.err = nil
		_, err = c.Client(context.Background(), cmdlet.Target{Region: "eu-west-1"})
		assert.NoError(t, err)
	})
}
