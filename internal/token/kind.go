package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates malformed lexical input.
	Invalid Kind = iota
	// EOF marks the end of the scanned range.
	EOF

	// LineComment is a `// ...` comment.
	LineComment
	// BlockComment is a `/* ... */` comment.
	BlockComment
	// DocComment is a `/** ... */` comment.
	DocComment
	// MarkdownDoc is a `/// ...` documentation comment.
	MarkdownDoc

	Ident
	IntLit
	FloatLit
	CharLit
	StringLit
	TextBlock // """ ... """

	KwAbstract
	KwAssert
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwContinue
	KwDefault
	KwDo
	KwElse
	KwEnum
	KwExtends
	KwFinal
	KwFinally
	KwFor
	KwIf
	KwImplements
	KwImport
	KwInstanceof
	KwInterface
	KwNative
	KwNew
	KwPackage
	KwPrivate
	KwProtected
	KwPublic
	KwReturn
	KwStatic
	KwStrictfp
	KwSuper
	KwSwitch
	KwSynchronized
	KwThis
	KwThrow
	KwThrows
	KwTransient
	KwTry
	KwVoid
	KwVolatile
	KwWhile
	KwTrue
	KwFalse
	KwNull

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Ellipsis  // ...
	At        // @
	ColonColon
	Colon    // :
	Arrow    // ->
	Question // ?
	Assign   // =
	Lt       // <
	Gt       // >
	Operator // any other operator: + - * / % ! ~ & | ^ == != <= >= && || ++ -- += ...
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	LineComment:    "LineComment",
	BlockComment:   "BlockComment",
	DocComment:     "DocComment",
	MarkdownDoc:    "MarkdownDoc",
	Ident:          "Ident",
	IntLit:         "IntLit",
	FloatLit:       "FloatLit",
	CharLit:        "CharLit",
	StringLit:      "StringLit",
	TextBlock:      "TextBlock",
	KwAbstract:     "KwAbstract",
	KwAssert:       "KwAssert",
	KwBreak:        "KwBreak",
	KwCase:         "KwCase",
	KwCatch:        "KwCatch",
	KwClass:        "KwClass",
	KwContinue:     "KwContinue",
	KwDefault:      "KwDefault",
	KwDo:           "KwDo",
	KwElse:         "KwElse",
	KwEnum:         "KwEnum",
	KwExtends:      "KwExtends",
	KwFinal:        "KwFinal",
	KwFinally:      "KwFinally",
	KwFor:          "KwFor",
	KwIf:           "KwIf",
	KwImplements:   "KwImplements",
	KwImport:       "KwImport",
	KwInstanceof:   "KwInstanceof",
	KwInterface:    "KwInterface",
	KwNative:       "KwNative",
	KwNew:          "KwNew",
	KwPackage:      "KwPackage",
	KwPrivate:      "KwPrivate",
	KwProtected:    "KwProtected",
	KwPublic:       "KwPublic",
	KwReturn:       "KwReturn",
	KwStatic:       "KwStatic",
	KwStrictfp:     "KwStrictfp",
	KwSuper:        "KwSuper",
	KwSwitch:       "KwSwitch",
	KwSynchronized: "KwSynchronized",
	KwThis:         "KwThis",
	KwThrow:        "KwThrow",
	KwThrows:       "KwThrows",
	KwTransient:    "KwTransient",
	KwTry:          "KwTry",
	KwVoid:         "KwVoid",
	KwVolatile:     "KwVolatile",
	KwWhile:        "KwWhile",
	KwTrue:         "KwTrue",
	KwFalse:        "KwFalse",
	KwNull:         "KwNull",
	LParen:         "LParen",
	RParen:         "RParen",
	LBrace:         "LBrace",
	RBrace:         "RBrace",
	LBracket:       "LBracket",
	RBracket:       "RBracket",
	Semicolon:      "Semicolon",
	Comma:          "Comma",
	Dot:            "Dot",
	Ellipsis:       "Ellipsis",
	At:             "At",
	ColonColon:     "ColonColon",
	Colon:          "Colon",
	Arrow:          "Arrow",
	Question:       "Question",
	Assign:         "Assign",
	Lt:             "Lt",
	Gt:             "Gt",
	Operator:       "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
