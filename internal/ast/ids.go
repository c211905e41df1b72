package ast

type (
	// главные сущности
	ModuleID uint32
	NodeID   uint32
	StmtID   uint32
	ExprID   uint32
	// подсущности
	PayloadID uint32
)

const (
	NoModuleID  ModuleID  = 0
	NoNodeID    NodeID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
)

func (id ModuleID) IsValid() bool  { return id != NoModuleID }
func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
