package a

type Point struct{ x, y int } // want "Type Point is immutable \\(fp:imm\\)"

func (p Point) Sum() int { return p.x + p.y }

type Counter struct{ n int }

func (c *Counter) Inc() { c.n++ } // want "Method Counter.Inc modifies its receiver \\(fp:mod\\)"

func (c *Counter) Twice() { // want "Method Counter.Twice modifies its receiver \\(fp:mod\\)"
	c.Inc()
	c.Inc()
}

func (c *Counter) Value() int { return c.n }

type Holder struct{ c *Counter } // want "Type Holder has only final fields \\(fp:imm\\)"

type Label string // want "Type Label is immutable \\(fp:imm\\)"

type Num int

func (n *Num) Inc() { *n++ } // want "Method Num.Inc modifies its receiver \\(fp:mod\\)"

type Quiet struct{ v int } //nolint:fixpoint
