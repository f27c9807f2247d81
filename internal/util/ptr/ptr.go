// Package ptr provides helper functions for creating and reading pointers.
//
// Request fields in the EC2 API are pointers so that an unset field can be
// told apart from an explicit zero value. These helpers keep that
// distinction visible at call sites.
package ptr

// To returns a pointer to a copy of v.
func To[T any](v T) *T { return &v }

// Deref returns the value p points to, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// IsSet reports whether p is non-nil.
func IsSet[T any](p *T) bool { return p != nil }
