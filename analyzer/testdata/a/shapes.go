package a

type Area interface{ Area() int } // want "Type Area has only final fields \\(fp:imm\\)"

type Square struct{ side int } // want "Type Square is immutable \\(fp:imm\\)"

func (s Square) Area() int { return s.side * s.side }

type Grid struct { // want "Type Grid is immutable \\(fp:imm\\)"
	origin Point
	size   Square
}
