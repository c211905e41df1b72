package ast

import (
	"ranoc/internal/source"
)

// Module is the root of one parsed source: its top-level nodes in order.
type Module struct {
	Span  source.Span
	Nodes []NodeID
}

type Modules struct {
	Arena *Arena[Module]
}

func NewModules(capHint uint) *Modules {
	return &Modules{
		Arena: NewArena[Module](capHint),
	}
}

func (m *Modules) New(sp source.Span) ModuleID {
	return ModuleID(m.Arena.Allocate(Module{
		Span:  sp,
		Nodes: make([]NodeID, 0),
	}))
}

func (m *Modules) Get(id ModuleID) *Module {
	return m.Arena.Get(uint32(id))
}
