package semantic

// Capability tags the well-known library types rules care about. The set is
// closed: rules test membership, never names.
type Capability uint8

const (
	CapNone Capability = iota
	CapObject
	CapString
	CapArray
	CapIEnumerable
	CapICollection
	CapIList
	CapIEnumerableT
	CapICollectionT
	CapIListT
	CapListT
	capCount
)

var capabilityNames = [capCount]string{
	CapNone: "none", CapObject: "object", CapString: "string", CapArray: "Array",
	CapIEnumerable: "IEnumerable", CapICollection: "ICollection", CapIList: "IList",
	CapIEnumerableT: "IEnumerable<T>", CapICollectionT: "ICollection<T>",
	CapIListT: "IList<T>", CapListT: "List<T>",
}

func (c Capability) String() string {
	if c < capCount {
		return capabilityNames[c]
	}
	return "Capability(?)"
}

// CapabilitySet is a bit set of capabilities.
type CapabilitySet uint32

// Caps builds a set.
func Caps(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= 1 << c
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool { return c != CapNone && s&(1<<c) != 0 }

func (s CapabilitySet) With(c Capability) CapabilitySet { return s | 1<<c }

// SequenceLike are the receivers whose IndexOf returns a position.
var SequenceLike = Caps(CapArray, CapIList, CapIListT, CapString)
