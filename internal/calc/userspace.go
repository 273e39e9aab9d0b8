package calc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ObjectKind tells user variables and user functions apart.
type ObjectKind string

const (
	ObjectVariable ObjectKind = "variable"
	ObjectFunction ObjectKind = "function"
)

// UserObject is a user defined variable or function.
type UserObject struct {
	Kind       ObjectKind
	Value      decimal.Decimal
	Parameters []string
	Body       []Token
}

// UserSpace maps names to user definitions.
type UserSpace map[string]UserObject

// Clone returns a shallow copy. Objects are never mutated in place, so sharing their
// slices is safe.
func (s UserSpace) Clone() UserSpace {
	out := make(UserSpace, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// StoredObject is the serialised form of a UserObject.
type StoredObject struct {
	Type       ObjectKind `yaml:"type" json:"type"`
	Value      string     `yaml:"value,omitempty" json:"value,omitempty"`
	Parameters []string   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Body       string     `yaml:"body,omitempty" json:"body,omitempty"`
}

// Export converts the space into its serialised form.
func (s UserSpace) Export() map[string]StoredObject {
	out := make(map[string]StoredObject, len(s))
	for name, obj := range s {
		switch obj.Kind {
		case ObjectVariable:
			out[name] = StoredObject{Type: ObjectVariable, Value: obj.Value.String()}
		case ObjectFunction:
			out[name] = StoredObject{
				Type:       ObjectFunction,
				Parameters: append([]string(nil), obj.Parameters...),
				Body:       Source(obj.Body),
			}
		}
	}
	return out
}

// ImportUserSpace rebuilds a space from its serialised form.
func ImportUserSpace(stored map[string]StoredObject) (UserSpace, error) {
	space := make(UserSpace, len(stored))
	for name, obj := range stored {
		if IsReserved(name) {
			return nil, fmt.Errorf("user object %q: %w", name, nameError(KindReservedName, name))
		}
		switch obj.Type {
		case ObjectVariable:
			v, err := decimal.NewFromString(obj.Value)
			if err != nil {
				return nil, fmt.Errorf("user variable %q: %w", name, err)
			}
			space[name] = UserObject{Kind: ObjectVariable, Value: v}
		case ObjectFunction:
			body, err := Tokenise(obj.Body)
			if err != nil {
				return nil, fmt.Errorf("user function %q: %w", name, err)
			}
			space[name] = UserObject{
				Kind:       ObjectFunction,
				Parameters: append([]string(nil), obj.Parameters...),
				Body:       body,
			}
		default:
			return nil, fmt.Errorf("user object %q: unknown type %q", name, obj.Type)
		}
	}
	return space, nil
}

// IsReserved reports whether name belongs to a built-in function, constant or alias
// and therefore cannot be redefined.
func IsReserved(name string) bool {
	switch name {
	case "pi", "e", "ans":
		return true
	}
	if _, ok := builtins[name]; ok {
		return true
	}
	if _, ok := functionAliases[name]; ok {
		return true
	}
	_, ok := variableAliases[name]
	return ok
}
