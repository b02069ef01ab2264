package access

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrPermissionFormat indicates a permission string that does not match
// the "verb:scope" wire form.
var ErrPermissionFormat = errors.New("access: malformed permission")

// Verb is the action half of a permission.
type Verb int

const (
	VerbRead Verb = iota
	VerbWrite
	VerbDelete
)

// String returns the wire form of the verb.
func (v Verb) String() string {
	switch v {
	case VerbWrite:
		return "write"
	case VerbDelete:
		return "delete"
	case VerbRead:
		return "read"
	}
	return fmt.Sprintf("verb(%d)", int(v))
}

func parseVerb(s string) (Verb, error) {
	switch s {
	case "read":
		return VerbRead, nil
	case "write":
		return VerbWrite, nil
	case "delete":
		return VerbDelete, nil
	}
	return 0, fmt.Errorf("%w: verb %q", ErrPermissionFormat, s)
}

// Permission is a capability tag: a verb applied to a resource-class
// scope such as "admin-tasks". Permissions compare by value.
type Permission struct {
	Verb  Verb
	Scope string
}

// Read builds a read permission for the given scope.
func Read(scope string) Permission { return Permission{Verb: VerbRead, Scope: scope} }

// Write builds a write permission for the given scope.
func Write(scope string) Permission { return Permission{Verb: VerbWrite, Scope: scope} }

// Delete builds a delete permission for the given scope.
func Delete(scope string) Permission { return Permission{Verb: VerbDelete, Scope: scope} }

// String returns the "verb:scope" wire form.
func (p Permission) String() string {
	return p.Verb.String() + ":" + p.Scope
}

// ParsePermission converts the "verb:scope" wire form back to a value.
func ParsePermission(s string) (Permission, error) {
	verb, scope, ok := strings.Cut(s, ":")
	if !ok || scope == "" {
		return Permission{}, fmt.Errorf("%w: %q", ErrPermissionFormat, s)
	}
	v, err := parseVerb(verb)
	if err != nil {
		return Permission{}, err
	}
	return Permission{Verb: v, Scope: scope}, nil
}

// Set is an unordered collection of permissions.
type Set map[Permission]struct{}

// NewSet builds a set from the given permissions.
func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Contains reports membership of a single permission.
func (s Set) Contains(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Union returns a new set holding the permissions of both sets.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for p := range s {
		out[p] = struct{}{}
	}
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

// IsSupersetOf reports whether every permission in required is present.
func (s Set) IsSupersetOf(required Set) bool {
	for p := range required {
		if _, ok := s[p]; !ok {
			return false
		}
	}
	return true
}

// Strings returns the sorted wire forms, the canonical token encoding.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p.String())
	}
	sort.Strings(out)
	return out
}

// ParseSet converts wire forms back to a set, rejecting malformed entries.
func ParseSet(raw []string) (Set, error) {
	s := make(Set, len(raw))
	for _, item := range raw {
		p, err := ParsePermission(item)
		if err != nil {
			return nil, err
		}
		s[p] = struct{}{}
	}
	return s, nil
}
