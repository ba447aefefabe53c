package types

import "fmt"

// RegType enumerates Windows registry value types commonly encountered.
// The numeric values match the Windows REG_* constants.
type RegType uint32

const (
	REG_NONE                       RegType = 0
	REG_SZ                         RegType = 1
	REG_EXPAND_SZ                  RegType = 2
	REG_BINARY                     RegType = 3
	REG_DWORD                      RegType = 4
	REG_DWORD_LE                   RegType = 4 // alias for clarity
	REG_DWORD_BE                   RegType = 5
	REG_LINK                       RegType = 6
	REG_MULTI_SZ                   RegType = 7
	REG_RESOURCE_LIST              RegType = 8
	REG_FULL_RESOURCE_DESCRIPTOR   RegType = 9
	REG_RESOURCE_REQUIREMENTS_LIST RegType = 10
	REG_QWORD                      RegType = 11
)

// String implements the Stringer interface for RegType
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_RESOURCE_LIST:
		return "REG_RESOURCE_LIST"
	case REG_FULL_RESOURCE_DESCRIPTOR:
		return "REG_FULL_RESOURCE_DESCRIPTOR"
	case REG_RESOURCE_REQUIREMENTS_LIST:
		return "REG_RESOURCE_REQUIREMENTS_LIST"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("RegType(%d)", uint32(t))
	}
}

// Value is one (name, type, data) triple stored under a key.
// The default (unnamed) value uses the empty string as its name.
type Value struct {
	Name string
	Type RegType
	Data []byte
}

// Key is an open handle to a single registry key.
//
// Enumeration order of Values and Subkeys is whatever the store defines
// (typically insertion order). Implementations need not be safe for
// concurrent use of a single handle.
type Key interface {
	// Path returns the full path the key was opened with, including the
	// root class name.
	Path() string

	// Close releases the handle. The handle must not be used afterwards.
	Close() error

	// SetValue stores a value under the key, replacing any existing value
	// with the same name. The empty name addresses the default value.
	SetValue(name string, typ RegType, data []byte) error

	// DeleteValue removes a value by name.
	DeleteValue(name string) error

	// Values lists the key's values in store enumeration order.
	Values() ([]Value, error)

	// Subkeys lists the names of the key's direct children in store
	// enumeration order.
	Subkeys() ([]string, error)
}

// Store is the hierarchical key-value store the .reg codec operates
// against. Paths are rooted at one of the registry root classes
// (HKEY_LOCAL_MACHINE, HKEY_CURRENT_USER, ...) and use backslash
// separators.
//
// The store provides its own internal consistency for concurrent
// mutation; the codec performs no locking of its own.
type Store interface {
	// CreateKey opens the key at path, creating it (and any missing
	// parents) if needed.
	CreateKey(path string) (Key, error)

	// OpenKey opens an existing key, failing if it does not exist.
	OpenKey(path string) (Key, error)

	// DeleteTree removes the key at path together with all of its
	// subkeys and values. Deleting a missing key is a no-op; deleting a
	// root class itself is an error.
	DeleteTree(path string) error
}
