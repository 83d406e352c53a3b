package diag

// Code is a stable diagnostic identifier, partitioned by error taxonomy:
// each category gets its own thousand-block so new codes can be inserted
// without renumbering neighbors.
type Code uint16

const (
	UnknownCode Code = 0

	// Name-resolution.
	NameInfo               Code = 3000
	NameUnknownIdentifier  Code = 3001
	NameAmbiguousWildcard  Code = 3002
	NameHierThroughNonScope Code = 3003
	NameUseBeforeDeclare   Code = 3004
	NameNotAType           Code = 3005
	NameHierarchicalBanned Code = 3006
	NameUnusedSymbol       Code = 3007

	// Type.
	TypeInfo              Code = 4000
	TypeIncompatibleAssign Code = 4001
	TypeWidthMismatch      Code = 4002
	TypeInvalidConversion  Code = 4003
	TypeNonConstant        Code = 4004
	TypeInvalidOperand     Code = 4005
	TypeNotAnLValue        Code = 4006

	// Elaboration.
	ElabInfo              Code = 5000
	ElabInstanceDepth      Code = 5001
	ElabGenerateSteps      Code = 5002
	ElabUnresolvedDefparam Code = 5003
	ElabTooManyErrors      Code = 5004
	ElabBindTargetMissing  Code = 5005
	ElabDPIMismatch        Code = 5006
	ElabDefparamSteps      Code = 5007

	// Constant-evaluation.
	ConstInfo            Code = 6000
	ConstStepBudget      Code = 6001
	ConstDepthBudget     Code = 6002
	ConstDivByZero       Code = 6003
	ConstOutOfRangeSel   Code = 6004
	ConstNonConstOperand Code = 6005
	ConstNoReturn        Code = 6006

	// Internal — fatal, surfaced with a clear marker.
	InternalInfo       Code = 9000
	InternalPrecondition Code = 9001
)

// Category buckets a code for display grouping; it has no effect on severity.
func (c Code) Category() string {
	switch {
	case c >= 3000 && c < 4000:
		return "name-resolution"
	case c >= 4000 && c < 5000:
		return "type"
	case c >= 5000 && c < 6000:
		return "elaboration"
	case c >= 6000 && c < 7000:
		return "constant-evaluation"
	case c >= 9000:
		return "internal"
	default:
		return "unknown"
	}
}
