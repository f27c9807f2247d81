package cmdlet

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

// Operation describes one remote operation exposed as a command.
//
// C is the client type, P the bound parameter record, In and Out the SDK
// request and response types.
type Operation[C, P, In, Out any] struct {
	Name    string
	Group   string
	Short   string
	Long    string
	Example string

	// Impact is ImpactNone for read-only operations.
	Impact Impact

	// Params declares the inputs, binding them into fields of p.
	Params func(p *P) []*Param

	// Target names the primary resource for the confirmation prompt.
	Target func(p P) string

	// Prepare optionally validates or normalizes the bound parameters. It
	// returns a new value rather than mutating shared state.
	Prepare func(p P) (P, error)

	// Request copies the present parameters into a new SDK request.
	Request func(p P) *In

	// Call issues the remote call.
	Call func(ctx context.Context, c C, in *In) (*Out, error)

	// Output selects the pipeline output from the response. Nil means the
	// whole response.
	Output func(out *Out) any

	// PassThru, when set, adds --pass-thru and returns the value emitted
	// in place of the output, usually the primary resource identifier.
	PassThru func(p P) any

	// Pages marks a list operation that follows continuation tokens.
	Pages *Pages[In, Out]
}

// Info summarizes an operation for listings and help.
type Info struct {
	Name      string
	Group     string
	Short     string
	Impact    Impact
	Paginated bool
}

// Command is an operation with its type parameters hidden, ready to be
// turned into a cobra command.
type Command[C any] interface {
	Info() Info
	Cobra(env *Env[C]) *cobra.Command
}

// Nothing is an Output projection for operations without a result.
func Nothing[Out any](*Out) any { return nil }

// Info implements Command.
func (op *Operation[C, P, In, Out]) Info() Info {
	return Info{
		Name:      op.Name,
		Group:     op.Group,
		Short:     op.Short,
		Impact:    op.Impact,
		Paginated: op.Pages != nil,
	}
}

// Cobra builds the command for the operation. Flags bind into a parameter
// record owned by the returned command.
func (op *Operation[C, P, In, Out]) Cobra(env *Env[C]) *cobra.Command {
	var (
		p      P
		sw     Switches
		params []*Param
	)
	if op.Params != nil {
		params = op.Params(&p)
	}

	cmd := &cobra.Command{
		Use:     usageLine(op.Name, params),
		Short:   op.Short,
		Long:    op.Long,
		Example: op.Example,
		GroupID: op.Group,
		Args:    cobra.MaximumNArgs(len(positional(params))),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindPositional(params, args); err != nil {
				return err
			}
			if err := checkRequired(params); err != nil {
				return err
			}
			if err := validatePaging(sw.Paging); err != nil {
				return err
			}
			return op.Execute(cmd.Context(), env, NewContext(env.Target, p, sw))
		},
	}

	fs := cmd.Flags()
	for _, prm := range params {
		prm.register(fs)
		if len(prm.completions) > 0 {
			values := prm.completions
			_ = cmd.RegisterFlagCompletionFunc(prm.Name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return values, cobra.ShellCompDirectiveNoFileComp
			})
		}
	}
	if op.Impact != ImpactNone {
		fs.BoolVarP(&sw.Force, "force", "f", false, "Skip the confirmation prompt")
	}
	if op.PassThru != nil {
		fs.BoolVar(&sw.PassThru, "pass-thru", false, "Emit the affected resource identifier on success")
	}
	if op.Pages != nil {
		for _, prm := range pagingParams(&sw.Paging) {
			prm.register(fs)
		}
		fs.BoolVar(&sw.Paging.NoPaginate, "no-paginate", false, "Fetch a single page only")
	}

	return cmd
}

// Execute runs one invocation: confirmation, request construction, remote
// call and output. A declined confirmation returns nil without calling
// the service. A remote failure is emitted to the sink and returned.
func (op *Operation[C, P, In, Out]) Execute(ctx context.Context, env *Env[C], ic Context[P]) error {
	if env.Sink == nil {
		return errors.New("no output sink configured")
	}
	logger := env.logger().With("operation", op.Name, "invocation", ic.ID)

	params := ic.Params
	if op.Prepare != nil {
		var err error
		if params, err = op.Prepare(params); err != nil {
			return err
		}
	}

	if op.Impact != ImpactNone {
		prompt := Prompt{Operation: op.Name, Target: op.target(params)}
		ok, err := env.Gate.Allow(ctx, op.Impact, ic.Switches.Force, prompt)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("operation not confirmed, nothing was changed", "target", prompt.Target)
			return nil
		}
	}

	client, err := env.Clients.Client(ctx, ic.Target)
	if err != nil {
		return err
	}

	logger.Debug("invoking", "region", ic.Target.Region)
	if op.Pages != nil && !ic.Switches.Paging.Manual() {
		return op.paginate(ctx, env, client, ic, params)
	}

	out, err := op.call(ctx, env, client, ic, params, ic.Switches.Paging.NextToken)
	if err != nil {
		return emit(ctx, env.Sink, Failure(err))
	}
	var notes []Note
	if op.Pages != nil {
		env.observer().ObservePage(op.Name, op.Pages.Count(out))
		notes = nextTokenNote(op.Pages.Token(out))
	}
	return emit(ctx, env.Sink, Success(op.project(params, out, ic.Switches.PassThru), out, notes...))
}

// call builds a fresh request and issues the remote call.
func (op *Operation[C, P, In, Out]) call(ctx context.Context, env *Env[C], client C, ic Context[P], params P, token *string) (*Out, error) {
	in := op.Request(params)
	if op.Pages != nil {
		op.Pages.prepare(in, token, ic.Switches.Paging.MaxResults)
	}

	start := time.Now()
	out, err := op.Call(ctx, client, in)
	env.observer().ObserveCall(op.Name, time.Since(start), err)
	if err != nil {
		return nil, classifyError(err, ic.Target, env.Resolve)
	}
	return out, nil
}

func (op *Operation[C, P, In, Out]) project(params P, out *Out, passThru bool) any {
	if passThru && op.PassThru != nil {
		return op.PassThru(params)
	}
	if op.Output == nil {
		return out
	}
	return op.Output(out)
}

func (op *Operation[C, P, In, Out]) target(params P) string {
	if op.Target == nil {
		return ""
	}
	return op.Target(params)
}

// emit hands the envelope to the sink and returns the envelope's error.
func emit(ctx context.Context, sink Sink, e Envelope) error {
	if err := sink.Emit(ctx, e); err != nil {
		return err
	}
	return e.Err
}
