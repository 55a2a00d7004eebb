package ast

// Kind is the closed set of constructs the tree distinguishes.
type Kind uint8

const (
	KindFile Kind = iota
	KindImportGroup
	KindTypeDecl
	KindAnonClass // anonymous class body or enum constant body
	KindMethod    // methods and constructors
	KindInitializer
	KindField
	KindBlock
	KindIf
	KindFor
	KindForEach
	KindWhile
	KindDo
	KindTry
	KindCatch
	KindSwitch
	KindCase
	KindLambda
	KindSynchronized
	KindBreak
	KindYield
	KindStmt // any other statement
)

var kindNames = [...]string{
	KindFile:         "file",
	KindImportGroup:  "imports",
	KindTypeDecl:     "type",
	KindAnonClass:    "anonymous",
	KindMethod:       "method",
	KindInitializer:  "initializer",
	KindField:        "field",
	KindBlock:        "block",
	KindIf:           "if",
	KindFor:          "for",
	KindForEach:      "foreach",
	KindWhile:        "while",
	KindDo:           "do",
	KindTry:          "try",
	KindCatch:        "catch",
	KindSwitch:       "switch",
	KindCase:         "case",
	KindLambda:       "lambda",
	KindSynchronized: "synchronized",
	KindBreak:        "break",
	KindYield:        "yield",
	KindStmt:         "stmt",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsElement reports whether the kind is a declaration-level element (the part of
// the tree an element-only model would expose).
func (k Kind) IsElement() bool {
	switch k {
	case KindFile, KindImportGroup, KindTypeDecl, KindAnonClass, KindMethod, KindInitializer, KindField:
		return true
	default:
		return false
	}
}

// IsMember reports whether the kind is a member of a type body.
func (k Kind) IsMember() bool {
	switch k {
	case KindMethod, KindInitializer, KindField:
		return true
	default:
		return false
	}
}

// IsLoop reports whether the kind is one of the loop statements.
func (k Kind) IsLoop() bool {
	switch k {
	case KindFor, KindForEach, KindWhile, KindDo:
		return true
	default:
		return false
	}
}

// TypeFlavor tells type declarations apart.
type TypeFlavor uint8

const (
	FlavorClass TypeFlavor = iota
	FlavorInterface
	FlavorEnum
	FlavorRecord
	FlavorAnnotation
)

func (f TypeFlavor) String() string {
	switch f {
	case FlavorInterface:
		return "interface"
	case FlavorEnum:
		return "enum"
	case FlavorRecord:
		return "record"
	case FlavorAnnotation:
		return "@interface"
	default:
		return "class"
	}
}
