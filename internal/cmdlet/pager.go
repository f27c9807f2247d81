package cmdlet

import (
	"context"
	"errors"
)

// Pages describes how a list operation exposes continuation tokens.
type Pages[In, Out any] struct {
	// Token returns the continuation token of a response.
	Token func(out *Out) *string
	// SetToken sets the continuation token on a request.
	SetToken func(in *In, token *string)
	// SetPageSize sets the per-page result limit. Optional.
	SetPageSize func(in *In, size *int32)
	// Count returns the number of items in a response.
	Count func(out *Out) int
}

func (pg *Pages[In, Out]) prepare(in *In, token *string, size *int32) {
	if token != nil {
		pg.SetToken(in, token)
	}
	if size != nil && pg.SetPageSize != nil {
		pg.SetPageSize(in, size)
	}
}

func pagingParams(pg *Paging) []*Param {
	return []*Param{
		String(&pg.NextToken, "next-token", "Continuation token from a previous call; fetches one page"),
		Int32(&pg.MaxResults, "max-results", "Maximum results per page; fetches one page"),
		Int(&pg.MaxItems, "max-items", "Stop following pages once this many results were emitted"),
	}
}

func validatePaging(pg Paging) error {
	if pg.MaxItems != nil && *pg.MaxItems < 1 {
		return errors.New("--max-items must be at least 1")
	}
	if pg.MaxResults != nil && *pg.MaxResults < 1 {
		return errors.New("--max-results must be at least 1")
	}
	return nil
}

func nextTokenNote(token *string) []Note {
	if token == nil || *token == "" {
		return nil
	}
	return []Note{{Name: NoteNextToken, Value: *token}}
}

// paginate follows continuation tokens, emitting each page as it arrives.
// It stops on an empty token, a repeated token, or once MaxItems results
// were emitted. A failed page is emitted and ends the loop; pages emitted
// before it stay valid.
func (op *Operation[C, P, In, Out]) paginate(ctx context.Context, env *Env[C], client C, ic Context[P], params P) error {
	logger := env.logger().With("operation", op.Name, "invocation", ic.ID)
	limit := ic.Switches.Paging.MaxItems

	var token *string
	emitted := 0
	for page := 1; ; page++ {
		out, err := op.call(ctx, env, client, ic, params, token)
		if err != nil {
			logger.Debug("page failed", "page", page, "err", err)
			return emit(ctx, env.Sink, Failure(err))
		}

		n := op.Pages.Count(out)
		emitted += n
		env.observer().ObservePage(op.Name, n)

		next := op.Pages.Token(out)
		logger.Debug("fetched page", "page", page, "items", n, "emitted", emitted)

		var notes []Note
		done := next == nil || *next == ""
		if !done && limit != nil && emitted >= *limit {
			done = true
			notes = nextTokenNote(next)
		}
		if !done && token != nil && *next == *token {
			logger.Warn("service returned the same continuation token twice, stopping", "page", page)
			done = true
		}

		if err := emit(ctx, env.Sink, Success(op.project(params, out, false), out, notes...)); err != nil {
			return err
		}
		if done {
			return nil
		}
		token = next
	}
}
