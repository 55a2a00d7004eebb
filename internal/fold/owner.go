package fold

// OwnerKind says what kind of construct owns a region.
type OwnerKind uint8

const (
	OwnerNone      OwnerKind = iota
	OwnerHeader              // the file header comment
	OwnerImports             // the import block
	OwnerTopType             // a top-level type (only its leading comment folds)
	OwnerType                // a member, local or anonymous type
	OwnerMember              // method, constructor, initializer, field
	OwnerStatement           // control statements and their branches
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerHeader:
		return "header"
	case OwnerImports:
		return "imports"
	case OwnerTopType:
		return "top-type"
	case OwnerType:
		return "type"
	case OwnerMember:
		return "member"
	case OwnerStatement:
		return "statement"
	default:
		return "none"
	}
}

// Owner identifies the construct a region belongs to. It is a plain value;
// two owners are the same construct when they compare equal.
type Owner struct {
	Key  string
	Kind OwnerKind
}

// IsZero reports whether the region has no owner.
func (o Owner) IsZero() bool {
	return o.Key == ""
}

// Nested reports whether the owner sits below the top level of the file.
func (o Owner) Nested() bool {
	switch o.Kind {
	case OwnerType, OwnerMember, OwnerStatement:
		return true
	default:
		return false
	}
}

func (o Owner) String() string {
	if o.IsZero() {
		return "-"
	}
	return o.Key
}

// RegionKind classifies regions for rendering and bulk operations.
type RegionKind uint8

const (
	RegionImports RegionKind = iota
	RegionType
	RegionMember
	RegionStatement
	RegionComment // block comment
	RegionDoc     // doc comment, markdown doc run
	RegionHeader
	RegionCustom
)

var regionKindNames = [...]string{
	RegionImports:   "imports",
	RegionType:      "type",
	RegionMember:    "member",
	RegionStatement: "statement",
	RegionComment:   "comment",
	RegionDoc:       "doc",
	RegionHeader:    "header",
	RegionCustom:    "custom",
}

func (k RegionKind) String() string {
	if int(k) < len(regionKindNames) {
		return regionKindNames[k]
	}
	return "unknown"
}
