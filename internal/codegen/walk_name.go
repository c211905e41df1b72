package codegen

import (
	"ranoc/internal/ast"
	"ranoc/internal/diag"
	"ranoc/internal/ir"
	"ranoc/internal/source"
)

func walkName(ctx *Context, id ast.ExprID, sp source.Span) error {
	name, ok := ctx.Builder.Exprs.Name(id)
	if !ok {
		return internalFault(sp, "name payload missing")
	}
	switch name.Kind {
	case ast.NamePlaceholder:
		return userFault(diag.GenPlaceholderValue, sp, "`_` cannot be used as a value")
	case ast.NameIdent:
		text := ctx.Builder.NameText(*name)
		if !ctx.bound(text) {
			return userFault(diag.GenUndefinedName, sp, "cannot find `%s` in this scope", text)
		}
		ctx.emit(ir.Instr{Op: ir.OpLoad, Str: scopeKey(text)}, sp)
		return nil
	default:
		return internalFault(sp, "unknown name kind %v", name.Kind)
	}
}
