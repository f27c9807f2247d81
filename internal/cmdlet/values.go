package cmdlet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

// scalar binds a single value into a pointer that stays nil until set.
type scalar[T any] struct {
	dst    **T
	parse  func(string) (T, error)
	format func(T) string
	typ    string
}

func (s *scalar[T]) Set(v string) error {
	x, err := s.parse(v)
	if err != nil {
		return err
	}
	*s.dst = &x
	return nil
}

func (s *scalar[T]) String() string {
	if s.dst == nil || *s.dst == nil {
		return ""
	}
	if s.format != nil {
		return s.format(**s.dst)
	}
	return fmt.Sprint(**s.dst)
}

func (s *scalar[T]) Type() string { return s.typ }

// String binds a string parameter.
func String(dst **string, name, usage string) *Param {
	return newParam(&scalar[string]{
		dst:   dst,
		parse: func(s string) (string, error) { return s, nil },
		typ:   "string",
	}, name, usage)
}

// Int binds an int parameter.
func Int(dst **int, name, usage string) *Param {
	return newParam(&scalar[int]{dst: dst, parse: strconv.Atoi, typ: "int"}, name, usage)
}

// Int32 binds an int32 parameter.
func Int32(dst **int32, name, usage string) *Param {
	return newParam(&scalar[int32]{
		dst: dst,
		parse: func(s string) (int32, error) {
			n, err := strconv.ParseInt(s, 10, 32)
			return int32(n), err
		},
		typ: "int32",
	}, name, usage)
}

// Int64 binds an int64 parameter.
func Int64(dst **int64, name, usage string) *Param {
	return newParam(&scalar[int64]{
		dst:   dst,
		parse: func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
		typ:   "int64",
	}, name, usage)
}

// Bool binds a boolean parameter. A bare --name means true; --name=false
// is an explicit false and is sent as such.
func Bool(dst **bool, name, usage string) *Param {
	p := newParam(&scalar[bool]{dst: dst, parse: strconv.ParseBool, typ: "bool"}, name, usage)
	p.noOptDefault = "true"
	return p
}

// Time binds an RFC 3339 timestamp parameter.
func Time(dst **time.Time, name, usage string) *Param {
	return newParam(&scalar[time.Time]{
		dst:    dst,
		parse:  func(s string) (time.Time, error) { return time.Parse(time.RFC3339, s) },
		format: func(t time.Time) string { return t.Format(time.RFC3339) },
		typ:    "time",
	}, name, usage)
}

// stringList binds a homogeneous string array. The slice stays nil until
// the flag is given; an explicit empty value yields an empty, non-nil slice.
type stringList struct {
	dst *[]string
}

func (l *stringList) Set(v string) error {
	if *l.dst == nil {
		*l.dst = []string{}
	}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l.dst = append(*l.dst, item)
		}
	}
	return nil
}

func (l *stringList) String() string {
	if l.dst == nil {
		return ""
	}
	return strings.Join(*l.dst, ",")
}

func (l *stringList) Type() string { return "strings" }

// Strings binds a string array given as a comma separated list or by
// repeating the flag.
func Strings(dst *[]string, name, usage string) *Param {
	return newParam(&stringList{dst: dst}, name, usage)
}

// enum binds one of a fixed set of string values. The empty string is the
// unset state, matching how the SDK omits empty enum fields.
type enum[T ~string] struct {
	dst     *T
	allowed []T
}

func (e *enum[T]) Set(v string) error {
	if len(e.allowed) == 0 {
		*e.dst = T(v)
		return nil
	}
	match, ok := lo.Find(e.allowed, func(a T) bool { return strings.EqualFold(string(a), v) })
	if !ok {
		return fmt.Errorf("must be one of: %s", strings.Join(lo.Map(e.allowed, func(a T, _ int) string {
			return string(a)
		}), ", "))
	}
	*e.dst = match
	return nil
}

func (e *enum[T]) String() string { return string(*e.dst) }

func (e *enum[T]) Type() string { return "enum" }

// Enum binds a string enum. Input is matched case-insensitively against
// allowed and stored in its canonical spelling. An empty allowed list
// accepts any value.
func Enum[T ~string](dst *T, allowed []T, name, usage string) *Param {
	p := newParam(&enum[T]{dst: dst, allowed: allowed}, name, usage)
	p.completions = lo.Map(allowed, func(a T, _ int) string { return string(a) })
	return p
}

// Var binds a custom flag value, typically a structured record parsed from
// text (filters, tags).
func Var(v pflag.Value, name, usage string) *Param {
	return newParam(v, name, usage)
}
