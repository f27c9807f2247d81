// Package cmdlet implements the generic machinery shared by every remote
// operation command.
//
// An [Operation] is a declarative descriptor: the parameters it binds, how
// those parameters become an SDK request, which SDK call to make, and how
// the response is projected for output. A single executor runs every
// descriptor through the same stages:
//
//	bind -> (confirm) -> build request -> invoke -> project -> emit
//
// # Parameters
//
// Parameters bind into pointers or nil-able slices so that "not supplied"
// and "supplied with a zero value" stay distinct all the way into the
// request. See [String], [Int32], [Bool], [Strings], [Enum] and [Var].
//
// # Confirmation
//
// Mutating operations carry an [Impact]. When the impact reaches the
// configured threshold and --force is not given, a [Confirmer] is asked
// before anything is sent. A declined prompt ends the invocation without
// an error.
//
// # Pagination
//
// List operations attach a [Pages] descriptor. Without manual paging flags
// the executor follows the continuation token and emits every page as it
// arrives, stopping on an empty token or once --max-items results have
// been emitted. With --next-token, --max-results or --no-paginate exactly
// one page is fetched and the next token is attached as a [Note].
//
// # Output
//
// Each call produces an [Envelope] holding either the projected output and
// raw response, or the error. Envelopes are pushed to a [Sink].
package cmdlet
