package cmdlet

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

var (
	// ErrMissingParameter is returned when a required parameter was not supplied.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrPositionalConflict is returned when a parameter is given both by flag and by position.
	ErrPositionalConflict = errors.New("parameter given both by flag and by position")
)

// Param is a single named input bound to a command flag.
//
// Params are created with the typed constructors ([String], [Int32], ...)
// and refined with the chainable options.
type Param struct {
	Name      string
	Shorthand string
	Aliases   []string
	Usage     string

	// Position is the 1-based positional slot, or 0 when the parameter is
	// flag-only.
	Position int

	required     bool
	value        *tracked
	noOptDefault string
	completions  []string
}

// tracked records whether a value was supplied by the caller.
type tracked struct {
	pflag.Value
	set bool
}

func (t *tracked) Set(s string) error {
	if err := t.Value.Set(s); err != nil {
		return err
	}
	t.set = true
	return nil
}

func newParam(v pflag.Value, name, usage string) *Param {
	return &Param{Name: name, Usage: usage, value: &tracked{Value: v}}
}

// Alias registers additional hidden flag names for the parameter.
func (p *Param) Alias(names ...string) *Param {
	p.Aliases = append(p.Aliases, names...)
	return p
}

// At binds the parameter to a 1-based positional argument slot.
func (p *Param) At(position int) *Param {
	p.Position = position
	return p
}

// Required marks the parameter as mandatory.
func (p *Param) Required() *Param {
	p.required = true
	return p
}

// Short sets a one-letter shorthand flag.
func (p *Param) Short(s string) *Param {
	p.Shorthand = s
	return p
}

// Default applies an explicit default value. The parameter counts as
// present in the request but not as supplied by the caller, so a
// positional argument may still override it.
func (p *Param) Default(v string) *Param {
	if err := p.value.Value.Set(v); err != nil {
		panic(fmt.Sprintf("invalid default %q for --%s: %v", v, p.Name, err))
	}
	return p
}

// Complete sets the values offered by shell completion.
func (p *Param) Complete(values ...string) *Param {
	p.completions = values
	return p
}

// IsSet reports whether the caller supplied the parameter.
func (p *Param) IsSet() bool { return p.value.set }

// IsRequired reports whether the parameter is mandatory.
func (p *Param) IsRequired() bool { return p.required }

// Completions returns the values offered by shell completion.
func (p *Param) Completions() []string { return p.completions }

func (p *Param) register(fs *pflag.FlagSet) {
	f := fs.VarPF(p.value, p.Name, p.Shorthand, p.Usage)
	f.NoOptDefVal = p.noOptDefault
	for _, alias := range p.Aliases {
		af := fs.VarPF(p.value, alias, "", p.Usage)
		af.NoOptDefVal = p.noOptDefault
		af.Hidden = true
	}
}

// positional returns the params bound to positional slots, ordered by slot.
func positional(params []*Param) []*Param {
	var out []*Param
	for _, p := range params {
		if p.Position > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// bindPositional assigns unnamed arguments to their positional params.
func bindPositional(params []*Param, args []string) error {
	slots := positional(params)
	if len(args) > len(slots) {
		return fmt.Errorf("unexpected argument %q", args[len(slots)])
	}
	for i, arg := range args {
		p := slots[i]
		if p.IsSet() {
			return fmt.Errorf("%w: --%s and argument %q", ErrPositionalConflict, p.Name, arg)
		}
		if err := p.value.Set(arg); err != nil {
			return fmt.Errorf("invalid argument %q for %s: %w", arg, p.Name, err)
		}
	}
	return nil
}

// checkRequired reports every required parameter that is still missing.
func checkRequired(params []*Param) error {
	var missing []string
	for _, p := range params {
		if p.required && !p.IsSet() {
			missing = append(missing, "--"+p.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingParameter, strings.Join(missing, ", "))
	}
	return nil
}

// usageLine renders "name [first] [second]" for positional params.
func usageLine(name string, params []*Param) string {
	parts := []string{name}
	for _, p := range positional(params) {
		parts = append(parts, "["+p.Name+"]")
	}
	return strings.Join(parts, " ")
}

// AnySet reports whether at least one of the values is present. Nil
// pointers, slices and maps, empty strings (unset enums) and zero values
// count as absent. It decides whether an optional sub-structure is built.
func AnySet(values ...any) bool {
	return slices.ContainsFunc(values, isPresent)
}

func isPresent(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return !rv.IsNil()
	case reflect.String:
		return rv.Len() > 0
	default:
		return !rv.IsZero()
	}
}
