package token

var keywords = map[string]Kind{
	"abstract":     KwAbstract,
	"assert":       KwAssert,
	"break":        KwBreak,
	"case":         KwCase,
	"catch":        KwCatch,
	"class":        KwClass,
	"continue":     KwContinue,
	"default":      KwDefault,
	"do":           KwDo,
	"else":         KwElse,
	"enum":         KwEnum,
	"extends":      KwExtends,
	"final":        KwFinal,
	"finally":      KwFinally,
	"for":          KwFor,
	"if":           KwIf,
	"implements":   KwImplements,
	"import":       KwImport,
	"instanceof":   KwInstanceof,
	"interface":    KwInterface,
	"native":       KwNative,
	"new":          KwNew,
	"package":      KwPackage,
	"private":      KwPrivate,
	"protected":    KwProtected,
	"public":       KwPublic,
	"return":       KwReturn,
	"static":       KwStatic,
	"strictfp":     KwStrictfp,
	"super":        KwSuper,
	"switch":       KwSwitch,
	"synchronized": KwSynchronized,
	"this":         KwThis,
	"throw":        KwThrow,
	"throws":       KwThrows,
	"transient":    KwTransient,
	"try":          KwTry,
	"void":         KwVoid,
	"volatile":     KwVolatile,
	"while":        KwWhile,
	"true":         KwTrue,
	"false":        KwFalse,
	"null":         KwNull,
}

// LookupKeyword returns the keyword kind for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
