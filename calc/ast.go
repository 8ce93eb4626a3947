package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is an arithmetic expression.
type Node interface {
	Eval() (float64, error)
	String() string
}

var ErrDivisionByZero = errors.New("division by zero")

type Num float64

func (n Num) Eval() (float64, error) { return float64(n), nil }
func (n Num) String() string         { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

type Neg struct {
	X Node
}

func (n *Neg) Eval() (float64, error) {
	x, err := n.X.Eval()
	return -x, err
}

func (n *Neg) String() string { return "(-" + n.X.String() + ")" }

type Binary struct {
	Op   string
	L, R Node
}

func (b *Binary) Eval() (float64, error) {
	l, err := b.L.Eval()
	if err != nil {
		return 0, err
	}
	r, err := b.R.Eval()
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("unknown operator %q", b.Op)
}

func (b *Binary) String() string {
	return "(" + b.L.String() + " " + b.Op + " " + b.R.String() + ")"
}

type Call struct {
	Name string
	Args []Node
}

type function struct {
	arity int // -1 for one or more
	fn    func(args []float64) float64
}

var functions = map[string]function{
	"abs":  {1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"sqrt": {1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"min": {-1, func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Min(m, v)
		}
		return m
	}},
	"max": {-1, func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Max(m, v)
		}
		return m
	}},
}

func (c *Call) Eval() (float64, error) {
	f, ok := functions[c.Name]
	if !ok {
		return 0, fmt.Errorf("unknown function %q", c.Name)
	}
	if (f.arity < 0 && len(c.Args) == 0) || (f.arity >= 0 && len(c.Args) != f.arity) {
		return 0, fmt.Errorf("%s: wrong number of arguments: %d", c.Name, len(c.Args))
	}
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Eval()
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return f.fn(args), nil
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}
