package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute is a compile-time constant attached to an Operation.
type Attribute interface {
	String() string
	isAttr()
}

// IntAttr is a signed integer attribute.
type IntAttr struct {
	Value int64
}

func (a IntAttr) String() string { return strconv.FormatInt(a.Value, 10) }
func (IntAttr) isAttr()          {}

// IntsAttr is a dense list of integers, e.g. static offsets.
type IntsAttr struct {
	Values []int64
}

func (a IntsAttr) String() string {
	var b strings.Builder
	b.WriteString("(ints")
	for _, v := range a.Values {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(v, 10))
	}
	b.WriteByte(')')
	return b.String()
}
func (IntsAttr) isAttr() {}

// StringAttr is a string attribute, also used for symbol names.
type StringAttr struct {
	Value string
}

func (a StringAttr) String() string { return strconv.Quote(a.Value) }
func (StringAttr) isAttr()          {}

// TypeAttr wraps a Type, e.g. a function signature.
type TypeAttr struct {
	Type Type
}

func (a TypeAttr) String() string { return "(type " + a.Type.String() + ")" }
func (TypeAttr) isAttr()          {}

// NamedAttribute is an attribute with its name.
type NamedAttribute struct {
	Value Attribute
	Name  string
}

// Attrs is the ordered attribute dictionary of an Operation.
// Order is insertion order and is preserved by rewrites that copy attributes.
type Attrs []NamedAttribute

// Get returns the attribute called name, or nil.
func (a Attrs) Get(name string) Attribute {
	for _, na := range a {
		if na.Name == name {
			return na.Value
		}
	}
	return nil
}

// Clone returns a shallow copy of the dictionary.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

func (a *Attrs) set(name string, value Attribute) {
	for i := range *a {
		if (*a)[i].Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, NamedAttribute{Name: name, Value: value})
}

func (a *Attrs) remove(name string) bool {
	for i := range *a {
		if (*a)[i].Name == name {
			*a = append((*a)[:i], (*a)[i+1:]...)
			return true
		}
	}
	return false
}

// AttrInt returns the integer attribute name of op.
func AttrInt(op *Operation, name string) (int64, bool) {
	if a, ok := op.Attr(name).(IntAttr); ok {
		return a.Value, true
	}
	return 0, false
}

// AttrInts returns the integer list attribute name of op.
func AttrInts(op *Operation, name string) ([]int64, bool) {
	if a, ok := op.Attr(name).(IntsAttr); ok {
		return a.Values, true
	}
	return nil, false
}

// AttrString returns the string attribute name of op.
func AttrString(op *Operation, name string) (string, bool) {
	if a, ok := op.Attr(name).(StringAttr); ok {
		return a.Value, true
	}
	return "", false
}

// AttrType returns the type attribute name of op.
func AttrType(op *Operation, name string) (Type, bool) {
	if a, ok := op.Attr(name).(TypeAttr); ok {
		return a.Type, true
	}
	return nil, false
}

func formatAttrs(a Attrs) string {
	parts := make([]string, len(a))
	for i, na := range a {
		parts[i] = fmt.Sprintf("%s=%s", na.Name, na.Value)
	}
	return strings.Join(parts, " ")
}
