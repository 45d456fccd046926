package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (stray character).
	Invalid Kind = iota
	// EOF marks the end of the source input; it carries the final trivia.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit is an integer literal, optionally suffixed (10, 0x1F, 5u, 7L).
	IntLit
	// RealLit is a floating literal (1.5, 2e10, 3f, 4.0m).
	RealLit
	// StringLit is a regular or verbatim string literal.
	StringLit
	// CharLit is a character literal.
	CharLit

	kwStart
	KwAbstract  // abstract
	KwAs        // as
	KwBase      // base
	KwBool      // bool
	KwBreak     // break
	KwByte      // byte
	KwChar      // char
	KwClass     // class
	KwConst     // const
	KwContinue  // continue
	KwDecimal   // decimal
	KwDouble    // double
	KwElse      // else
	KwFalse     // false
	KwFloat     // float
	KwFor       // for
	KwForeach   // foreach
	KwIf        // if
	KwIn        // in
	KwInt       // int
	KwInterface // interface
	KwInternal  // internal
	KwIs        // is
	KwLong      // long
	KwNamespace // namespace
	KwNew       // new
	KwNull      // null
	KwObject    // object
	KwOut       // out
	KwOverride  // override
	KwParams    // params
	KwPrivate   // private
	KwProtected // protected
	KwPublic    // public
	KwReadonly  // readonly
	KwRef       // ref
	KwReturn    // return
	KwSbyte     // sbyte
	KwSealed    // sealed
	KwShort     // short
	KwStatic    // static
	KwString    // string
	KwStruct    // struct
	KwThis      // this
	KwThrow     // throw
	KwTrue      // true
	KwTypeof    // typeof
	KwUint      // uint
	KwUlong     // ulong
	KwUshort    // ushort
	KwUsing     // using
	KwVirtual   // virtual
	KwVoid      // void
	KwWhile     // while
	kwEnd

	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	Assign           // =
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	PercentAssign    // %=
	AmpAssign        // &=
	PipeAssign       // |=
	CaretAssign      // ^=
	EqEq             // ==
	Bang             // !
	BangEq           // !=
	Lt               // <
	LtEq             // <=
	Gt               // >
	GtEq             // >=
	Amp              // &
	Pipe             // |
	Caret            // ^
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	PlusPlus         // ++
	MinusMinus       // --
	Question         // ?
	QuestionQuestion // ??
	Colon            // :
	Semicolon        // ;
	Comma            // ,
	Dot              // .
	FatArrow         // =>
	LParen           // (
	RParen           // )
	LBrace           // {
	RBrace           // }
	LBracket         // [
	RBracket         // ]
)

var kindNames = map[Kind]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident",
	IntLit: "IntLit", RealLit: "RealLit", StringLit: "StringLit", CharLit: "CharLit",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	EqEq: "==", Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", AndAnd: "&&", OrOr: "||",
	PlusPlus: "++", MinusMinus: "--", Question: "?", QuestionQuestion: "??",
	Colon: ":", Semicolon: ";", Comma: ",", Dot: ".", FatArrow: "=>",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func (k Kind) String() string {
	if k.IsKeyword() {
		return keywordText[k]
	}
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > kwStart && k < kwEnd }

// IsLiteral reports whether k is a literal, including true/false/null.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, RealLit, StringLit, CharLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsPredefinedType reports whether k names a built-in type.
func (k Kind) IsPredefinedType() bool {
	switch k {
	case KwBool, KwByte, KwSbyte, KwChar, KwDecimal, KwDouble, KwFloat, KwInt, KwUint,
		KwLong, KwUlong, KwShort, KwUshort, KwObject, KwString, KwVoid:
		return true
	default:
		return false
	}
}

// IsModifier reports whether k may appear in a declaration modifier list.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPublic, KwPrivate, KwProtected, KwInternal, KwStatic, KwAbstract, KwSealed,
		KwOverride, KwVirtual, KwReadonly, KwConst:
		return true
	default:
		return false
	}
}

// IsWordLike reports whether two adjacent tokens of this kind need separating whitespace.
func (k Kind) IsWordLike() bool {
	return k == Ident || k == IntLit || k == RealLit || k.IsKeyword()
}
