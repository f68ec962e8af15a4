package capped

type Ping struct { // want "immutability of Ping is undetermined: cyclic dependency \\(fp:cyc\\)"
	n    int
	next *Pong // want "content of Ping.next is undetermined: cyclic dependency \\(fp:cyc\\)"
}

type Pong struct { // want "immutability of Pong is undetermined: cyclic dependency \\(fp:cyc\\)"
	prev *Ping // want "content of Pong.prev is undetermined: cyclic dependency \\(fp:cyc\\)"
}

type Pair struct{ p Ping } // want "immutability of Pair is undetermined: depends on a cyclic dependency \\(fp:dep\\)" "content of Pair.p is undetermined: depends on a cyclic dependency \\(fp:dep\\)"

type Quiet struct{ p *Ping } //nolint:fixpoint

type Even struct{ n int }

func (e *Even) A(k int) {
	if k > 0 {
		e.B(k - 1)
	}
}

func (e *Even) B(k int) {
	if k > 0 {
		e.A(k - 1)
	}
}
