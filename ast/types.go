package ast

import (
	"fmt"
	"strings"
)

// Type is a type node.  It is a closed sum over the type kinds defined below.
type Type interface {
	// Repr returns the representative string of the type.
	Repr() string

	typeNode()
}

// AliasType is a reference to a named type.
type AliasType struct {
	Name string
}

func (at *AliasType) Repr() string {
	return at.Name
}

// PointerType is a pointer to a base type.
type PointerType struct {
	Base Type
}

func (pt *PointerType) Repr() string {
	return "*" + pt.Base.Repr()
}

// ArrayType is a fixed-length array.
type ArrayType struct {
	Item  Type
	Count int64
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("[%d]%s", at.Count, at.Item.Repr())
}

// StructType is a struct type literal.
type StructType struct {
	// The members of the struct in declaration order.
	Members []*Decl

	// The scope of the struct's members.  It is created once when the struct is
	// resolved.
	Scope *Scope
}

func (st *StructType) Repr() string {
	sb := strings.Builder{}
	sb.WriteString("struct{")
	for i, member := range st.Members {
		if i > 0 {
			sb.WriteString("; ")
		}

		sb.WriteString(member.Name)
		if member.Type != nil {
			sb.WriteString(": ")
			sb.WriteString(member.Type.Repr())
		}
	}
	sb.WriteRune('}')

	return sb.String()
}

// Member returns the member of the struct with the given name.
func (st *StructType) Member(name string) (*Decl, bool) {
	for _, member := range st.Members {
		if member.Name == name {
			return member, true
		}
	}

	return nil, false
}

// EnumType is an enum type literal.
type EnumType struct {
	// The names of the enum's members in declaration order.
	Members []string

	// The scope containing the enum's member constants.  It is created once
	// when the enum is resolved.
	Scope *Scope

	// The type of each member: set during resolution.
	ItemType Type
}

func (et *EnumType) Repr() string {
	return "enum{" + strings.Join(et.Members, ", ") + "}"
}

// HasMember returns whether the enum has a member with the given name.
func (et *EnumType) HasMember(name string) bool {
	for _, member := range et.Members {
		if member == name {
			return true
		}
	}

	return false
}

// FuncType is a function signature.
type FuncType struct {
	// The parameters of the function.
	Params []*Decl

	// The return type of the function.
	Return Type

	// Whether the implicit context parameter has been appended.
	HasContext bool
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}
	sb.WriteRune('(')
	for i, param := range ft.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param.Name)
		if param.Type != nil {
			sb.WriteString(": ")
			sb.WriteString(param.Type.Repr())
		}
	}
	sb.WriteString(") -> ")
	sb.WriteString(ft.Return.Repr())

	return sb.String()
}

func (*AliasType) typeNode()   {}
func (*PointerType) typeNode() {}
func (*ArrayType) typeNode()   {}
func (*StructType) typeNode()  {}
func (*EnumType) typeNode()    {}
func (*FuncType) typeNode()    {}
