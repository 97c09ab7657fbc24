package tally

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func defineBuiltins(b *LLVMIRBuilder) {
	defineBuiltinFunc(b, "print", builtinPrint)
}

type funcDefinition = func(mod *ir.Module) *ir.Func

func defineBuiltinFunc(b *LLVMIRBuilder, name string, definition funcDefinition) {
	f := definition(b.mod)
	f.SetName(name)
	b.values.Set(name, f)
}

// builtinPrint wraps variadic printf into print(name i8*, v i64), emitting
// one "name = value" line.
func builtinPrint(mod *ir.Module) *ir.Func {
	name := ir.NewParam("name", types.I8Ptr)
	v := ir.NewParam("v", types.I64)

	f := mod.NewFunc("", types.Void, name, v)
	b := f.NewBlock("")

	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	zero := constant.NewInt(types.I32, 0)

	format := constant.NewCharArrayFromString("%s = %lld\n\x00")
	formatGlob := mod.NewGlobalDef("._printf_fmt", format)

	fmtAddr := constant.NewGetElementPtr(types.NewArray(11, types.I8), formatGlob, zero, zero)

	b.NewCall(printf, fmtAddr, name, v)

	b.NewRet(nil)

	return f
}
