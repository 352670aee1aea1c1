package ast

import (
	"github.com/amber-lang/amber/internal/token"
)

// Identifier is a variable or parameter read.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) GetToken() token.Token { return i.Token }

// IvarExpression is an instance-variable read (@name).
type IvarExpression struct {
	Token token.Token
	Name  string
}

func (ie *IvarExpression) expressionNode()       {}
func (ie *IvarExpression) GetToken() token.Token { return ie.Token }

// IntegerLiteral is a decimal integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// StringLiteral is a string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// SymbolLiteral is a :symbol literal.
type SymbolLiteral struct {
	Token token.Token
	Value string
}

func (sl *SymbolLiteral) expressionNode()       {}
func (sl *SymbolLiteral) GetToken() token.Token { return sl.Token }

// RegexpLiteral is a /pattern/ literal.
type RegexpLiteral struct {
	Token   token.Token
	Pattern string
}

func (rl *RegexpLiteral) expressionNode()       {}
func (rl *RegexpLiteral) GetToken() token.Token { return rl.Token }

// RangeLiteral is a low..high (or low...high when Exclusive) literal.
type RangeLiteral struct {
	Token     token.Token
	Low       Expression
	High      Expression
	Exclusive bool
}

func (rl *RangeLiteral) expressionNode()       {}
func (rl *RangeLiteral) GetToken() token.Token { return rl.Token }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// NilLiteral is the nil literal.
type NilLiteral struct {
	Token token.Token
}

func (nl *NilLiteral) expressionNode()       {}
func (nl *NilLiteral) GetToken() token.Token { return nl.Token }

// ArrayLiteral is [e1, e2, ...].
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// HashLiteral is {k1 => v1, ...}. Keys and values are parallel slices to
// preserve declaration order.
type HashLiteral struct {
	Token  token.Token
	Keys   []Expression
	Values []Expression
}

func (hl *HashLiteral) expressionNode()       {}
func (hl *HashLiteral) GetToken() token.Token { return hl.Token }

// AssignExpression is a local binding: name = value. Re-binding shadows any
// outer binding for the remainder of the frame.
type AssignExpression struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

// IvarAssignExpression is @name = value inside a method body.
type IvarAssignExpression struct {
	Token token.Token
	Name  string
	Value Expression
}

func (ia *IvarAssignExpression) expressionNode()       {}
func (ia *IvarAssignExpression) GetToken() token.Token { return ia.Token }

// IfExpression is a two-way branch. Alternative may be nil; the untaken path
// then contributes Nil to the result.
type IfExpression struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

// CaseExpression is a multi-way branch on a subject expression.
type CaseExpression struct {
	Token   token.Token
	Subject Expression
	Whens   []*WhenClause
	Else    *BlockStatement
}

func (ce *CaseExpression) expressionNode()       {}
func (ce *CaseExpression) GetToken() token.Token { return ce.Token }

// WhenClause is one arm of a case expression.
type WhenClause struct {
	Token  token.Token
	Values []Expression
	Body   *BlockStatement
}

func (wc *WhenClause) GetToken() token.Token { return wc.Token }

// WhileExpression is a pure looping construct. Its result is never observed
// by the surrounding expression and always types as Nil.
type WhileExpression struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (we *WhileExpression) expressionNode()       {}
func (we *WhileExpression) GetToken() token.Token { return we.Token }

// CallExpression is receiver.method(args). A nil Receiver is a toplevel
// function call (or an implicit-self method call).
type CallExpression struct {
	Token     token.Token
	Receiver  Expression
	Method    string
	Arguments []Expression
	Block     *FunctionLiteral
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// FunctionLiteral is an anonymous function (lambda or block argument).
// Closures retain a reference to the frames active at creation, not a copy.
type FunctionLiteral struct {
	Token  token.Token
	Params []*Identifier
	Body   *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()       {}
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }

// PrefixExpression is !x or -x.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression is left op right. Operators other than the logical pair
// (&&, ||) desugar to a method call on the left operand.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }
