package tally

import (
	"fmt"
	"sort"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Inherit(t2 *ValueLookup) {
	for k, v := range t2.vals {
		l.Set(k, v)
	}
}

func (l *ValueLookup) Get(id string) value.Value {
	if val, ok := l.vals[id]; ok {
		return val
	}

	// The program is evaluated before codegen, so an undefined identifier
	// can't reach this point
	panic("undefined identifier: " + id)
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type IRGenerator interface {
	Do() IR
}

type IR interface {
	fmt.Stringer
}

type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	values *ValueLookup
	names  map[string]value.Value
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
		names:  make(map[string]value.Value),
	}

	defineBuiltins(builder)
	return builder
}

func (b *LLVMIRBuilder) assignment(expr *Assignment) []ir.Instruction {
	v, ins := b.recursiveLoad(expr.Value)
	b.values.Set(expr.Name, v)

	return ins
}

func (b *LLVMIRBuilder) recursiveLoad(expr Expr) (value.Value, []ir.Instruction) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return constant.NewInt(types.I64, e.Value), []ir.Instruction{}
	case *BinaryExpr:
		return b.binaryExpression(e)
	case *UnaryExpr:
		return b.unaryExpression(e)
	case *Identifier:
		return b.values.Get(e.Name), []ir.Instruction{}
	default:
		panic(fmt.Sprintf("unexpected expression node %T", expr))
	}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) (value.Value, []ir.Instruction) {
	v1, i1 := b.recursiveLoad(expr.Op1)
	v2, i2 := b.recursiveLoad(expr.Op2)
	ins := append(i1, i2...)

	switch expr.Operation {
	case BinaryAddition:
		op := ir.NewAdd(v1, v2)
		return op, append(ins, op)
	case BinarySubtraction:
		op := ir.NewSub(v1, v2)
		return op, append(ins, op)
	case BinaryMultiplication:
		op := ir.NewMul(v1, v2)
		return op, append(ins, op)
	default:
		panic("unexpected binary op: " + expr.Operation)
	}
}

func (b *LLVMIRBuilder) unaryExpression(expr *UnaryExpr) (value.Value, []ir.Instruction) {
	v, ins := b.recursiveLoad(expr.Operand)

	switch expr.Operation {
	case UnaryNegative:
		minusOne := constant.NewInt(types.I64, -1)
		op := ir.NewMul(v, minusOne)
		return op, append(ins, op)
	case UnaryPositive:
		return v, ins
	default:
		panic("unexpected unary op: " + expr.Operation)
	}
}

// namePtr interns a variable name as a null-terminated global char array
// and returns an i8* to it for the print call.
func (b *LLVMIRBuilder) namePtr(name string) value.Value {
	if ptr, ok := b.names[name]; ok {
		return ptr
	}

	data := name + "\x00"
	glob := b.mod.NewGlobalDef("._name_"+name, constant.NewCharArrayFromString(data))

	zero := constant.NewInt(types.I32, 0)
	ptr := constant.NewGetElementPtr(types.NewArray(uint64(len(data)), types.I8), glob, zero, zero)

	b.names[name] = ptr
	return ptr
}

// LLVMGenerator lowers an already-validated program to an LLVM module whose
// main computes every assignment and prints the final bindings.
type LLVMGenerator struct {
	prog *Program
}

func NewLLVMGenerator(prog *Program) *LLVMGenerator {
	return &LLVMGenerator{
		prog: prog,
	}
}

func (g LLVMGenerator) Do() IR {
	builder := NewLLVMIRBuilder()

	f := builder.mod.NewFunc("main", types.I32)
	builder.block = f.NewBlock("")

	assigned := make(map[string]bool)
	for _, stmt := range g.prog.Statements {
		a, ok := stmt.(*Assignment)
		if !ok {
			continue
		}

		builder.block.Insts = append(builder.block.Insts, builder.assignment(a)...)
		assigned[a.Name] = true
	}

	var names []string
	for name := range assigned {
		names = append(names, name)
	}
	sort.Strings(names)

	printFn := builder.values.Get("print")
	for _, name := range names {
		builder.block.NewCall(printFn, builder.namePtr(name), builder.values.Get(name))
	}

	builder.block.NewRet(constant.NewInt(types.I32, 0))

	return builder.mod
}
