package eval

// Op identifies an expression tree node. Expression *parsing* (text to
// tree) is out of scope; trees are built by calling the constructors below,
// the same way the kernel this package is modeled on builds its Token
// trees by hand (Token::operation(Opcode::OP_ADD, ...)).
type Op int

// The supported opcodes. X, Y and Z read the coordinates a box or point is
// evaluated at; Const is a literal; the rest are the arithmetic operators
// an implicit-function tree is built from.
const (
	OpX Op = iota
	OpY
	OpZ
	OpConst
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpMin
	OpMax
	OpAbs
	OpSqrt
	OpSquare
)

// Expr is a node in an implicit-function expression tree.
type Expr struct {
	Op    Op
	Const float32
	A, B  *Expr // B is nil for unary and leaf nodes.
}

// X returns the expression that reads the x coordinate.
func X() *Expr { return &Expr{Op: OpX} }

// Y returns the expression that reads the y coordinate.
func Y() *Expr { return &Expr{Op: OpY} }

// Z returns the expression that reads the z coordinate.
func Z() *Expr { return &Expr{Op: OpZ} }

// Const returns a literal constant expression.
func Const(v float32) *Expr { return &Expr{Op: OpConst, Const: v} }

// Add returns a + b.
func Add(a, b *Expr) *Expr { return &Expr{Op: OpAdd, A: a, B: b} }

// Sub returns a - b.
func Sub(a, b *Expr) *Expr { return &Expr{Op: OpSub, A: a, B: b} }

// Mul returns a * b.
func Mul(a, b *Expr) *Expr { return &Expr{Op: OpMul, A: a, B: b} }

// Div returns a / b.
func Div(a, b *Expr) *Expr { return &Expr{Op: OpDiv, A: a, B: b} }

// Neg returns -a.
func Neg(a *Expr) *Expr { return &Expr{Op: OpNeg, A: a} }

// Min returns min(a, b), the CSG union of two signed-distance expressions.
func Min(a, b *Expr) *Expr { return &Expr{Op: OpMin, A: a, B: b} }

// Max returns max(a, b), the CSG intersection of two signed-distance
// expressions.
func Max(a, b *Expr) *Expr { return &Expr{Op: OpMax, A: a, B: b} }

// Abs returns |a|.
func Abs(a *Expr) *Expr { return &Expr{Op: OpAbs, A: a} }

// Sqrt returns sqrt(a).
func Sqrt(a *Expr) *Expr { return &Expr{Op: OpSqrt, A: a} }

// Square returns a * a, evaluated once.
func Square(a *Expr) *Expr { return &Expr{Op: OpSquare, A: a} }
