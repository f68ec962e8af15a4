// Code generated by hand. DO NOT EDIT.

package generated

type Token struct{ text string }

type Lexer struct{ pos int }

func (l *Lexer) Next() { l.pos++ }
