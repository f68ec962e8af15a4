package generated

type Parser struct { // want "Type Parser is immutable \\(fp:imm\\)"
	lexer Token
}
