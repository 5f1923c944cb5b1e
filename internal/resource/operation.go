package resource

// Operation is one of the closed set of resource operations.
type Operation string

const (
	OpShow   Operation = "show"
	OpIndex  Operation = "index"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Operations lists every operation in a fixed order.
var Operations = []Operation{OpShow, OpIndex, OpCreate, OpUpdate, OpDelete}

// Valid reports whether op belongs to the closed set.
func (op Operation) Valid() bool {
	switch op {
	case OpShow, OpIndex, OpCreate, OpUpdate, OpDelete:
		return true
	}
	return false
}

// DefaultProviderMethod is the provider method used for op when nothing is configured.
func DefaultProviderMethod(op Operation) string {
	switch op {
	case OpIndex:
		return "findAll"
	case OpShow, OpUpdate, OpDelete:
		return "find"
	default:
		return ""
	}
}

// DefaultFactoryMethod is the factory method used for op when nothing is configured.
func DefaultFactoryMethod(op Operation) string {
	if op == OpCreate {
		return "createNew"
	}
	return ""
}
