package a

type Even struct{ n int }

func (e *Even) A(k int) { // want "Method Even.A modifies its receiver \\(assumed\\) \\(fp:mod\\)"
	if k > 0 {
		e.B(k - 1)
	}
}

func (e *Even) B(k int) { // want "Method Even.B modifies its receiver \\(assumed\\) \\(fp:mod\\)"
	if k > 0 {
		e.A(k - 1)
	}
}

type Ping struct { // want "Type Ping has only final fields \\(assumed\\) \\(fp:imm\\)"
	next *Pong
}

type Pong struct { // want "Type Pong has only final fields \\(assumed\\) \\(fp:imm\\)"
	prev *Ping
}
