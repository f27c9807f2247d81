package cmdlet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listParams struct {
	Owner *string
}

type listInput struct {
	Owner     *string
	NextToken *string
	PageSize  *int32
}

type listOutput struct {
	Items     []string
	NextToken *string
}

func (c *fakeClient) list(_ context.Context, in *listInput) (*listOutput, error) {
	c.listCalls = append(c.listCalls, in)
	n := len(c.listCalls)
	if c.pageErrAt == n {
		return nil, fmt.Errorf("page %d: RequestLimitExceeded", n)
	}
	if n > len(c.pages) {
		return &listOutput{}, nil
	}
	out := c.pages[n-1]
	return &out, nil
}

func listOperation() *Operation[*fakeClient, listParams, listInput, listOutput] {
	return &Operation[*fakeClient, listParams, listInput, listOutput]{
		Name:  "describe-things",
		Group: "thing",
		Params: func(p *listParams) []*Param {
			return []*Param{String(&p.Owner, "owner", "Owner")}
		},
		Request: func(p listParams) *listInput { return &listInput{Owner: p.Owner} },
		Call: func(ctx context.Context, c *fakeClient, in *listInput) (*listOutput, error) {
			return c.list(ctx, in)
		},
		Output: func(out *listOutput) any { return out.Items },
		Pages: &Pages[listInput, listOutput]{
			Token:       func(out *listOutput) *string { return out.NextToken },
			SetToken:    func(in *listInput, token *string) { in.NextToken = token },
			SetPageSize: func(in *listInput, size *int32) { in.PageSize = size },
			Count:       func(out *listOutput) int { return len(out.Items) },
		},
	}
}

func listPage(token string, items ...string) listOutput {
	out := listOutput{Items: items}
	if token != "" {
		out.NextToken = ptrTo(token)
	}
	return out
}

func TestPaginate_StopsOnEmptyToken(t *testing.T) {
	t.Parallel()
	client := &fakeClient{pages: []listOutput{
		listPage("t1", "a", "b"),
		listPage("t2", "c"),
		{Items: []string{"d"}, NextToken: ptrTo("")},
		listPage("", "never"),
	}}
	env, rec := newEnv(client, nil)

	require.NoError(t, run(t, listOperation(), env, "--owner", "self"))

	require.Len(t, client.listCalls, 3)
	assert.Nil(t, client.listCalls[0].NextToken)
	assert.Equal(t, "t1", *client.listCalls[1].NextToken)
	assert.Equal(t, "t2", *client.listCalls[2].NextToken)
	for _, in := range client.listCalls {
		assert.Equal(t, "self", *in.Owner)
		assert.Nil(t, in.PageSize)
	}

	assert.Equal(t, []any{[]string{"a", "b"}, []string{"c"}, []string{"d"}}, rec.Outputs())
	for _, e := range rec.Envelopes() {
		assert.Empty(t, e.Notes, "automatic paging attaches no token notes")
	}
}

func TestPaginate_FreshRequestPerPage(t *testing.T) {
	t.Parallel()
	client := &fakeClient{pages: []listOutput{listPage("t1", "a"), listPage("", "b")}}
	env, _ := newEnv(client, nil)

	require.NoError(t, run(t, listOperation(), env))
	require.Len(t, client.listCalls, 2)
	assert.NotSame(t, client.listCalls[0], client.listCalls[1])
	assert.Nil(t, client.listCalls[0].NextToken, "first request is not touched by later pages")
}

func TestPaginate_EmitLimit(t *testing.T) {
	t.Parallel()
	four := []string{"1", "2", "3", "4"}
	client := &fakeClient{pages: []listOutput{
		listPage("t1", four...),
		listPage("t2", four...),
		listPage("t3", four...),
		listPage("t4", four...),
	}}
	env, rec := newEnv(client, nil)

	require.NoError(t, run(t, listOperation(), env, "--max-items", "10"))

	assert.Len(t, client.listCalls, 3, "12 >= 10 after the third page")
	envs := rec.Envelopes()
	require.Len(t, envs, 3)
	token, ok := envs[2].Note(NoteNextToken)
	assert.True(t, ok, "stopping early reports where to resume")
	assert.Equal(t, "t3", token)
}

func TestPaginate_ManualToken(t *testing.T) {
	t.Parallel()
	client := &fakeClient{pages: []listOutput{listPage("t9", "x"), listPage("", "y")}}
	env, rec := newEnv(client, nil)

	require.NoError(t, run(t, listOperation(), env, "--next-token", "t8"))

	require.Len(t, client.listCalls, 1)
	assert.Equal(t, "t8", *client.listCalls[0].NextToken)
	envs := rec.Envelopes()
	require.Len(t, envs, 1)
	token, ok := envs[0].Note(NoteNextToken)
	assert.True(t, ok)
	assert.Equal(t, "t9", token)
}

func TestPaginate_ManualPageSize(t *testing.T) {
	t.Parallel()
	client := &fakeClient{pages: []listOutput{listPage("t1", "x"), listPage("", "y")}}
	env, _ := newEnv(client, nil)

	require.NoError(t, run(t, listOperation(), env, "--max-results", "5"))
	require.Len(t, client.listCalls, 1)
	assert.Equal(t, int32(5), *client.listCalls[0].PageSize)
	assert.Nil(t, client.listCalls[0].NextToken)
}

func TestPaginate_NoPaginate(t *testing.T) {
	t.Parallel()
	client := &fakeClient{pages: []listOutput{listPage("t1", "x"), listPage("", "y")}}
	env, _ := newEnv(client, nil)

	require.NoError(t, run(t, listOperation(), env, "--no-paginate"))
	assert.Len(t, client.listCalls, 1)
}

func TestPaginate_FailureKeepsEarlierPages(t *testing.T) {
	t.Parallel()
	client := &fakeClient{
		pages:     []listOutput{listPage("t1", "a"), listPage("t2", "b"), listPage("", "c")},
		pageErrAt: 2,
	}
	env, rec := newEnv(client, nil)

	err := run(t, listOperation(), env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RequestLimitExceeded")

	envs := rec.Envelopes()
	require.Len(t, envs, 2)
	assert.False(t, envs[0].Failed())
	assert.Equal(t, []string{"a"}, envs[0].Output)
	assert.True(t, envs[1].Failed())
	assert.Len(t, client.listCalls, 2, "no page is fetched after a failure")
}

func TestPaginate_RepeatedTokenStops(t *testing.T) {
	t.Parallel()
	client := &fakeClient{pages: []listOutput{listPage("same", "a"), listPage("same", "b"), listPage("same", "c")}}
	env, rec := newEnv(client, nil)

	require.NoError(t, run(t, listOperation(), env))
	assert.Len(t, client.listCalls, 2)
	assert.Len(t, rec.Envelopes(), 2)
}

func TestPaginate_InvalidLimits(t *testing.T) {
	t.Parallel()
	for _, args := range [][]string{{"--max-items", "0"}, {"--max-results", "-1"}} {
		client := &fakeClient{}
		env, _ := newEnv(client, nil)
		assert.Error(t, run(t, listOperation(), env, args...), args)
		assert.Empty(t, client.listCalls)
	}
}

func TestPaginate_SinkErrorStops(t *testing.T) {
	t.Parallel()
	client := &fakeClient{pages: []listOutput{listPage("t1", "a"), listPage("", "b")}}
	env, _ := newEnv(client, nil)
	closed := errors.New("broken pipe")
	env.Sink = SinkFunc(func(context.Context, Envelope) error { return closed })

	assert.ErrorIs(t, run(t, listOperation(), env), closed)
	assert.Len(t, client.listCalls, 1)
}

func TestPaginate_ObservesPages(t *testing.T) {
	t.Parallel()
	client := &fakeClient{pages: []listOutput{listPage("t1", "a", "b"), listPage("", "c")}}
	env, _ := newEnv(client, nil)
	obs := &recordingObserver{}
	env.Observer = obs

	require.NoError(t, run(t, listOperation(), env))
	assert.Equal(t, []int{2, 1}, obs.pages)
	assert.Equal(t, []string{"describe-things:true", "describe-things:true"}, obs.calls)
}
