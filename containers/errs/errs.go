// Package errs defines the shared error-kind taxonomy used across every
// engine and container in this module.
//
// Every operation documents exactly which [Kind] values it may produce.
// Kinds fall into four categories: Argument (bad input), State (the
// container or navigation cursor is in the wrong state for the request),
// Resource (allocation failure), and Engine-internal (red-black rotation
// preconditions, which only the engine's own tests ever observe).
package errs

import "fmt"

// Kind identifies the category and specific reason for a failed operation.
type Kind int

const (
	_ Kind = iota

	// Argument kinds.

	// ContainerIsNil is returned when a receiver method is called on a nil
	// container pointer where a value is required.
	ContainerIsNil
	// KeyIsNil is returned when a required key argument is the zero value
	// of a pointer-shaped type and the operation cannot proceed without it.
	KeyIsNil
	// ValueIsNil mirrors KeyIsNil for value arguments.
	ValueIsNil
	// ItemIsNil is returned when an item/entry handle argument is required
	// but absent.
	ItemIsNil
	// OutIsNil is returned when a required out-parameter is absent.
	OutIsNil
	// SizeIsZero is returned when a size argument must be positive.
	SizeIsZero
	// SizeIsTooLarge is returned when a size argument would overflow the
	// entry-layout computation.
	SizeIsTooLarge
	// LoadFactorIsInvalid is returned when a load factor falls outside
	// (0, 1].
	LoadFactorIsInvalid

	// State kinds.

	// ContainerIsEmpty is returned by First/Last on an empty container.
	ContainerIsEmpty
	// KeyAlreadyExists is returned when inserting a key that compares
	// equal to one already present.
	KeyAlreadyExists
	// KeyNotFound is returned when a keyed lookup fails.
	KeyNotFound
	// ItemNotFound is returned when a remove-by-item fails to locate its
	// target.
	ItemNotFound
	// EndOfSequence is returned by navigation (Next/Prev) run off either
	// end.
	EndOfSequence
	// ItemOutOfBounds is returned when a navigation handle does not
	// belong to the container's current backing storage.
	ItemOutOfBounds

	// Resource kinds.

	// MemoryAllocationFailed is returned when growth could not be
	// satisfied (practically unreachable on the Go heap, reachable only
	// via the saturating-capacity path documented on the hash table).
	MemoryAllocationFailed
)

// Error is the concrete error type produced by this module. It carries a
// Kind plus the operation name that produced it, so that %v/Error() output
// reads like "orderedset.Add: key already exists" without every call site
// having to format that by hand.
type Error struct {
	Op   string
	Kind Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// New constructs an *Error for the given operation and kind.
func New(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind}
}

// Is reports whether err is an *Error of the given Kind, per the errors.Is
// protocol (so callers can write errors.Is(err, errs.KeyNotFound) style
// checks via [Of]).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}

// Of is a convenience sentinel constructor: errors.Is(err, errs.Of(errs.KeyNotFound))
// reports whether err carries the given Kind, regardless of Op.
func Of(kind Kind) error {
	return &Error{Kind: kind}
}

func (k Kind) String() string {
	switch k {
	case ContainerIsNil:
		return "container is nil"
	case KeyIsNil:
		return "key is nil"
	case ValueIsNil:
		return "value is nil"
	case ItemIsNil:
		return "item is nil"
	case OutIsNil:
		return "out is nil"
	case SizeIsZero:
		return "size is zero"
	case SizeIsTooLarge:
		return "size is too large"
	case LoadFactorIsInvalid:
		return "load factor is invalid"
	case ContainerIsEmpty:
		return "container is empty"
	case KeyAlreadyExists:
		return "key already exists"
	case KeyNotFound:
		return "key not found"
	case ItemNotFound:
		return "item not found"
	case EndOfSequence:
		return "end of sequence"
	case ItemOutOfBounds:
		return "item out of bounds"
	case MemoryAllocationFailed:
		return "memory allocation failed"
	default:
		return "unknown error"
	}
}
