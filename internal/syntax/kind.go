package syntax

// Kind is the syntactic category of a node.
type Kind uint16

const (
	KindInvalid Kind = iota
	// KindToken is a leaf holding one token.Token.
	KindToken
	// KindError wraps tokens the parser skipped during recovery.
	KindError
	// KindList is an ordered list (members, statements, modifiers, usings).
	KindList
	// KindSeparatedList alternates elements and comma tokens.
	KindSeparatedList

	CompilationUnit
	UsingDirective
	NamespaceDecl
	ClassDecl
	InterfaceDecl
	StructDecl
	TypeParameterList
	BaseList
	FieldDecl
	VariableDeclaration
	VariableDeclarator
	EqualsValueClause
	MethodDecl
	ConstructorDecl
	DestructorDecl
	ConstructorInitializer
	ArrowExpressionClause
	ParameterList
	Parameter
	ArgumentList
	Argument

	PredefinedType
	IdentifierName
	GenericName
	QualifiedName
	TypeArgumentList
	ArrayType
	NullableType

	Block
	LocalDeclStmt
	ExprStmt
	ReturnStmt
	IfStmt
	ElseClause
	WhileStmt
	ForStmt
	ForeachStmt
	ThrowStmt
	BreakStmt
	ContinueStmt
	EmptyStmt

	AddExpr
	SubtractExpr
	MultiplyExpr
	DivideExpr
	ModuloExpr
	LessThanExpr
	LessThanOrEqualExpr
	GreaterThanExpr
	GreaterThanOrEqualExpr
	EqualsExpr
	NotEqualsExpr
	LogicalAndExpr
	LogicalOrExpr
	BitwiseAndExpr
	BitwiseOrExpr
	ExclusiveOrExpr
	CoalesceExpr
	IsExpr
	AsExpr
	AssignExpr
	ConditionalExpr
	UnaryPlusExpr
	UnaryMinusExpr
	LogicalNotExpr
	BitwiseNotExpr
	PreIncrementExpr
	PreDecrementExpr
	PostIncrementExpr
	PostDecrementExpr
	ParenExpr
	InvocationExpr
	MemberAccessExpr
	ElementAccessExpr
	ObjectCreationExpr
	TypeofExpr
	ThisExpr
	BaseExpr
	NumericLiteral
	StringLiteral
	CharLiteral
	TrueLiteral
	FalseLiteral
	NullLiteral

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid: "Invalid", KindToken: "Token", KindError: "Error", KindList: "List",
	KindSeparatedList: "SeparatedList", CompilationUnit: "CompilationUnit",
	UsingDirective: "UsingDirective", NamespaceDecl: "NamespaceDecl", ClassDecl: "ClassDecl",
	InterfaceDecl: "InterfaceDecl", StructDecl: "StructDecl", TypeParameterList: "TypeParameterList",
	BaseList: "BaseList", FieldDecl: "FieldDecl", VariableDeclaration: "VariableDeclaration",
	VariableDeclarator: "VariableDeclarator", EqualsValueClause: "EqualsValueClause",
	MethodDecl: "MethodDecl", ConstructorDecl: "ConstructorDecl", DestructorDecl: "DestructorDecl",
	ConstructorInitializer: "ConstructorInitializer", ArrowExpressionClause: "ArrowExpressionClause",
	ParameterList: "ParameterList", Parameter: "Parameter", ArgumentList: "ArgumentList",
	Argument: "Argument", PredefinedType: "PredefinedType", IdentifierName: "IdentifierName",
	GenericName: "GenericName", QualifiedName: "QualifiedName", TypeArgumentList: "TypeArgumentList",
	ArrayType: "ArrayType", NullableType: "NullableType", Block: "Block", LocalDeclStmt: "LocalDeclStmt",
	ExprStmt: "ExprStmt", ReturnStmt: "ReturnStmt", IfStmt: "IfStmt", ElseClause: "ElseClause",
	WhileStmt: "WhileStmt", ForStmt: "ForStmt", ForeachStmt: "ForeachStmt", ThrowStmt: "ThrowStmt",
	BreakStmt: "BreakStmt", ContinueStmt: "ContinueStmt", EmptyStmt: "EmptyStmt",
	AddExpr: "AddExpr", SubtractExpr: "SubtractExpr", MultiplyExpr: "MultiplyExpr",
	DivideExpr: "DivideExpr", ModuloExpr: "ModuloExpr", LessThanExpr: "LessThanExpr",
	LessThanOrEqualExpr: "LessThanOrEqualExpr", GreaterThanExpr: "GreaterThanExpr",
	GreaterThanOrEqualExpr: "GreaterThanOrEqualExpr", EqualsExpr: "EqualsExpr",
	NotEqualsExpr: "NotEqualsExpr", LogicalAndExpr: "LogicalAndExpr", LogicalOrExpr: "LogicalOrExpr",
	BitwiseAndExpr: "BitwiseAndExpr", BitwiseOrExpr: "BitwiseOrExpr", ExclusiveOrExpr: "ExclusiveOrExpr",
	CoalesceExpr: "CoalesceExpr", IsExpr: "IsExpr", AsExpr: "AsExpr", AssignExpr: "AssignExpr",
	ConditionalExpr: "ConditionalExpr", UnaryPlusExpr: "UnaryPlusExpr", UnaryMinusExpr: "UnaryMinusExpr",
	LogicalNotExpr: "LogicalNotExpr", BitwiseNotExpr: "BitwiseNotExpr",
	PreIncrementExpr: "PreIncrementExpr", PreDecrementExpr: "PreDecrementExpr",
	PostIncrementExpr: "PostIncrementExpr", PostDecrementExpr: "PostDecrementExpr",
	ParenExpr: "ParenExpr", InvocationExpr: "InvocationExpr", MemberAccessExpr: "MemberAccessExpr",
	ElementAccessExpr: "ElementAccessExpr", ObjectCreationExpr: "ObjectCreationExpr",
	TypeofExpr: "TypeofExpr", ThisExpr: "ThisExpr", BaseExpr: "BaseExpr",
	NumericLiteral: "NumericLiteral", StringLiteral: "StringLiteral", CharLiteral: "CharLiteral",
	TrueLiteral: "TrueLiteral", FalseLiteral: "FalseLiteral", NullLiteral: "NullLiteral",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// KindByName resolves a kind from its String form.
func KindByName(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return Kind(k), true // #nosec G115 -- bounded by kindCount
		}
	}
	return KindInvalid, false
}

// IsList reports whether children of k can be removed by deleting their slot.
func (k Kind) IsList() bool { return k == KindList || k == KindSeparatedList }

// IsTypeDecl reports class, interface and struct declarations.
func (k Kind) IsTypeDecl() bool { return k == ClassDecl || k == InterfaceDecl || k == StructDecl }

// IsBinary reports binary operator expressions laid out as [Left, Op, Right].
func (k Kind) IsBinary() bool { return k >= AddExpr && k <= CoalesceExpr }

// IsStatement reports statement kinds.
func (k Kind) IsStatement() bool { return k >= Block && k <= EmptyStmt }

// IsLiteral reports literal expressions.
func (k Kind) IsLiteral() bool { return k >= NumericLiteral && k <= NullLiteral }
