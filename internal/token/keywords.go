package token

var keywords = map[string]Kind{}

var keywordText = map[Kind]string{
	KwAbstract: "abstract", KwAs: "as", KwBase: "base", KwBool: "bool", KwBreak: "break",
	KwByte: "byte", KwChar: "char", KwClass: "class", KwConst: "const", KwContinue: "continue",
	KwDecimal: "decimal", KwDouble: "double", KwElse: "else", KwFalse: "false", KwFloat: "float",
	KwFor: "for", KwForeach: "foreach", KwIf: "if", KwIn: "in", KwInt: "int",
	KwInterface: "interface", KwInternal: "internal", KwIs: "is", KwLong: "long",
	KwNamespace: "namespace", KwNew: "new", KwNull: "null", KwObject: "object", KwOut: "out",
	KwOverride: "override", KwParams: "params", KwPrivate: "private", KwProtected: "protected",
	KwPublic: "public", KwReadonly: "readonly", KwRef: "ref", KwReturn: "return", KwSbyte: "sbyte",
	KwSealed: "sealed", KwShort: "short", KwStatic: "static", KwString: "string", KwStruct: "struct",
	KwThis: "this", KwThrow: "throw", KwTrue: "true", KwTypeof: "typeof", KwUint: "uint",
	KwUlong: "ulong", KwUshort: "ushort", KwUsing: "using", KwVirtual: "virtual", KwVoid: "void",
	KwWhile: "while",
}

func init() {
	for k, s := range keywordText {
		keywords[s] = k
	}
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
