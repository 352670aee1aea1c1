package ast

import (
	"github.com/amber-lang/amber/internal/token"
)

// Node is the base interface for all AST nodes. The tree is produced by the
// parser and borrowed by the type-inference engine, which reads node shapes
// and records inferred types in a side table keyed by node identity.
type Node interface {
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST the parser produces. When several
// source files are merged into one logical program, the merge happens before
// inference and yields a single Program.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode() {}
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// BlockStatement is a sequence of statements. Its value is the value of the
// last expression statement, Nil when empty.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (bs *BlockStatement) statementNode() {}
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// MethodDef represents `def name(params) body end`, either at toplevel or
// inside a class body.
type MethodDef struct {
	Token  token.Token
	Name   string
	Params []*Identifier
	Body   *BlockStatement
}

func (md *MethodDef) statementNode()        {}
func (md *MethodDef) GetToken() token.Token { return md.Token }

// ClassDecl represents `class Name < Super ... end`. SuperName is empty for
// root classes.
type ClassDecl struct {
	Token     token.Token
	Name      string
	SuperName string
	Body      *BlockStatement
}

func (cd *ClassDecl) statementNode()        {}
func (cd *ClassDecl) GetToken() token.Token { return cd.Token }

// ReturnStatement represents an explicit `return expr` (Value may be nil for
// a bare return, which yields Nil).
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }
