package syntax

// Slot indices of fixed-shape nodes. Optional slots hold nil when absent.

const (
	UnitUsings = iota
	UnitMembers
	UnitEOF
)

const (
	UsingKeyword = iota
	UsingName
	UsingSemicolon
)

const (
	NamespaceKeyword = iota
	NamespaceName
	NamespaceOpen
	NamespaceUsings
	NamespaceMembers
	NamespaceClose
)

// ClassDecl, InterfaceDecl, StructDecl
const (
	TypeModifiers = iota
	TypeKeyword
	TypeName
	TypeTypeParams // optional
	TypeBaseList   // optional
	TypeOpen
	TypeMembers
	TypeClose
	TypeSemicolon // optional
)

// TypeParameterList, TypeArgumentList, ParameterList, ArgumentList
const (
	DelimOpen = iota
	DelimItems
	DelimClose
)

const (
	BaseColon = iota
	BaseTypes
)

const (
	FieldModifiers = iota
	FieldDeclaration
	FieldSemicolon
)

const (
	VarDeclType = iota
	VarDeclDeclarators
)

const (
	DeclaratorName = iota
	DeclaratorInit // optional EqualsValueClause
)

const (
	EqualsToken = iota
	EqualsValue
)

const (
	MethodModifiers = iota
	MethodReturnType
	MethodName
	MethodTypeParams // optional
	MethodParams
	MethodBody      // optional Block
	MethodExprBody  // optional ArrowExpressionClause
	MethodSemicolon // optional
)

const (
	CtorModifiers = iota
	CtorName
	CtorParams
	CtorInitializer // optional
	CtorBody        // optional
	CtorExprBody    // optional
	CtorSemicolon   // optional
)

const (
	DtorModifiers = iota
	DtorTilde
	DtorName
	DtorParams
	DtorBody      // optional
	DtorExprBody  // optional
	DtorSemicolon // optional
)

const (
	InitColon = iota
	InitKeyword
	InitArgs
)

const (
	ArrowToken = iota
	ArrowExpr
)

const (
	ParamModifiers = iota
	ParamType
	ParamName
	ParamDefault // optional
)

const (
	ArgRefKind = iota // optional
	ArgExpr
)

const (
	GenericIdent = iota
	GenericArgs
)

const (
	QualifiedLeft = iota
	QualifiedDot
	QualifiedRight
)

const (
	ArrayElem = iota
	ArrayOpen
	ArrayClose
)

const (
	NullableElem = iota
	NullableQuestion
)

const (
	BlockOpen = iota
	BlockStatements
	BlockClose
)

const (
	LocalModifiers = iota
	LocalDeclaration
	LocalSemicolon
)

const (
	ExprStmtExpr = iota
	ExprStmtSemicolon
)

// ReturnStmt, ThrowStmt
const (
	JumpKeyword = iota
	JumpExpr    // optional
	JumpSemicolon
)

const (
	IfKeyword = iota
	IfOpen
	IfCond
	IfClose
	IfThen
	IfElse // optional ElseClause
)

const (
	ElseKeyword = iota
	ElseStmt
)

const (
	WhileKeyword = iota
	WhileOpen
	WhileCond
	WhileClose
	WhileBody
)

const (
	ForKeyword = iota
	ForOpen
	ForDecl  // optional VariableDeclaration
	ForInits // SeparatedList of expressions
	ForFirstSemicolon
	ForCond // optional
	ForSecondSemicolon
	ForIncrements // SeparatedList of expressions
	ForClose
	ForBody
)

const (
	ForeachKeyword = iota
	ForeachOpen
	ForeachType
	ForeachName
	ForeachIn
	ForeachExpr
	ForeachClose
	ForeachBody
)

// Binary expressions, AssignExpr, IsExpr, AsExpr
const (
	BinaryLeft = iota
	BinaryOp
	BinaryRight
)

const (
	CondExpr = iota
	CondQuestion
	CondWhenTrue
	CondColon
	CondWhenFalse
)

const (
	PrefixOp = iota
	PrefixOperand
)

const (
	PostfixOperand = iota
	PostfixOp
)

const (
	ParenOpen = iota
	ParenInner
	ParenClose
)

const (
	InvokeExpr = iota
	InvokeArgs
)

const (
	MemberExpr = iota
	MemberDot
	MemberName
)

const (
	ElementExpr = iota
	ElementArgs
)

const (
	NewKeyword = iota
	NewType
	NewArgs // optional
)

const (
	TypeofKeyword = iota
	TypeofOpen
	TypeofType
	TypeofClose
)

// optionalSlots marks slots that Remove may clear.
var optionalSlots = map[Kind]uint32{
	ClassDecl:          bits(TypeTypeParams, TypeBaseList, TypeSemicolon),
	InterfaceDecl:      bits(TypeTypeParams, TypeBaseList, TypeSemicolon),
	StructDecl:         bits(TypeTypeParams, TypeBaseList, TypeSemicolon),
	VariableDeclarator: bits(DeclaratorInit),
	MethodDecl:         bits(MethodTypeParams, MethodBody, MethodExprBody, MethodSemicolon),
	ConstructorDecl:    bits(CtorInitializer, CtorBody, CtorExprBody, CtorSemicolon),
	DestructorDecl:     bits(DtorBody, DtorExprBody, DtorSemicolon),
	Parameter:          bits(ParamDefault),
	Argument:           bits(ArgRefKind),
	ReturnStmt:         bits(JumpExpr),
	ThrowStmt:          bits(JumpExpr),
	IfStmt:             bits(IfElse),
	ForStmt:            bits(ForDecl, ForCond),
	ObjectCreationExpr: bits(NewArgs),
}

func bits(slots ...int) uint32 {
	var m uint32
	for _, s := range slots {
		m |= 1 << uint(s)
	}
	return m
}

// IsOptionalSlot reports whether slot of a node of kind k may be absent.
func IsOptionalSlot(k Kind, slot int) bool {
	if slot < 0 || slot >= 32 {
		return false
	}
	return optionalSlots[k]&(1<<uint(slot)) != 0
}
