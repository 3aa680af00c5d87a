package idl

// StatementKind discriminates the flat top-level IDL productions emitted
// by ParseIDL.
type StatementKind int

const (
	StIncomplete StatementKind = iota
	StControl
	StMetadata
	StNamespace
	StUse
	StApply
	StShapeDef
	StForResource
	StMixins
	StTraitApplication
	StMemberDef
	StEnumMemberDef
	StElidedMemberDef
	StInlineMemberDef
	StNodeMemberDef
	StBlock
	StErr
)

func (k StatementKind) String() string {
	switch k {
	case StIncomplete:
		return "Incomplete"
	case StControl:
		return "Control"
	case StMetadata:
		return "Metadata"
	case StNamespace:
		return "Namespace"
	case StUse:
		return "Use"
	case StApply:
		return "Apply"
	case StShapeDef:
		return "ShapeDef"
	case StForResource:
		return "ForResource"
	case StMixins:
		return "Mixins"
	case StTraitApplication:
		return "TraitApplication"
	case StMemberDef:
		return "MemberDef"
	case StEnumMemberDef:
		return "EnumMemberDef"
	case StElidedMemberDef:
		return "ElidedMemberDef"
	case StInlineMemberDef:
		return "InlineMemberDef"
	case StNodeMemberDef:
		return "NodeMemberDef"
	case StBlock:
		return "Block"
	case StErr:
		return "Err"
	default:
		return "Unknown"
	}
}

// Statement is a tagged union over every statement Kind. As with Node,
// Start/End are absolute offsets and only fields relevant to Kind are
// populated.
//
// Parent is the nullable back-reference to the enclosing Block, represented
// as an index into the flat Statements slice (see IdlParseResult) rather
// than a pointer, so navigation does not couple statement lifetime to a
// particular result value. -1 means "no parent" (top level).
type Statement struct {
	Kind  StatementKind
	Start int
	End   int

	Parent int // index of enclosing Block statement, or -1

	// StatementIndex is set on every statement; LastStatementIndex and
	// OpenerIndex on Blocks only.
	StatementIndex     int // this statement's own index in the flat slice
	LastStatementIndex int // index of the last statement this block encloses (inclusive)
	OpenerIndex        int // index of the statement that opened this block (e.g. the ShapeDef)

	// Control: "$key: value"
	ControlKey   string
	ControlValue *Node

	// Metadata: "metadata key = value"
	MetadataKey   *Node
	MetadataValue *Node

	// Namespace / Use: a single identifier/shape id.
	Identifier string

	// Apply: "apply Target @trait" or "apply Target { ... }"
	ApplyTarget string

	// ShapeDef.
	ShapeType string
	ShapeName string

	// ForResource: "for ResourceId"
	ResourceID string

	// Mixins: "with [A, B]"
	MixinTargets []string

	// TraitApplication: "@name" or "@name(value)" or "@name(k: v, ...)"
	TraitName  string
	TraitValue *Node // nil if the trait takes no value

	// MemberDef / EnumMemberDef / ElidedMemberDef / NodeMemberDef share
	// MemberName. MemberDef additionally uses MemberTarget/DefaultValue.
	// EnumMemberDef uses EnumValue. NodeMemberDef uses NodeValue.
	MemberName   string
	MemberTarget string
	DefaultValue *Node
	EnumValue    *Node
	NodeValue    *Node

	// InlineMemberDef: "input := { ... }" / "output := { ... }". InlineBody
	// points at the Block statement opened for the inline shape, if any.
	InlineBody int // index into Statements, or -1

	// Err / Incomplete.
	Message string
}
