package token

// Type identifies the lexical class of a token.
type Type string

const (
	IDENT   Type = "IDENT"
	CONST   Type = "CONST" // Capitalized names (classes, constants)
	IVAR    Type = "IVAR"  // @name
	INT     Type = "INT"
	FLOAT   Type = "FLOAT"
	STRING  Type = "STRING"
	SYMBOL  Type = "SYMBOL"
	REGEXP  Type = "REGEXP"
	KEYWORD Type = "KEYWORD"
	OP      Type = "OP"
	EOF     Type = "EOF"
)

// Token is a single lexeme with its source position. The engine only uses
// tokens for diagnostics; the parser producing them is an external
// collaborator.
type Token struct {
	Type   Type
	Lexeme string
	Line   int
	Column int
}
