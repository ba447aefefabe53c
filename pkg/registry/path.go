package registry

import "strings"

// Root class names recognized in key paths. Matching is case-insensitive
// and must be followed by a path separator or the end of the string.
const (
	HKEYClassesRoot   = "HKEY_CLASSES_ROOT"
	HKEYCurrentUser   = "HKEY_CURRENT_USER"
	HKEYLocalMachine  = "HKEY_LOCAL_MACHINE"
	HKEYUsers         = "HKEY_USERS"
	HKEYCurrentConfig = "HKEY_CURRENT_CONFIG"
	HKEYDynData       = "HKEY_DYN_DATA"
)

// Separator is the registry path separator.
const Separator = `\`

// RootClasses lists the six root class names in their conventional order.
var RootClasses = []string{
	HKEYLocalMachine,
	HKEYUsers,
	HKEYClassesRoot,
	HKEYCurrentConfig,
	HKEYCurrentUser,
	HKEYDynData,
}

// SplitPath splits a full key path at the first separator into the root
// class portion and the relative subpath. The subpath is empty when the
// path names a root class alone.
func SplitPath(path string) (root, subpath string) {
	if i := strings.Index(path, Separator); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

// ParseKeyPath resolves the root class of a full key path. It returns the
// canonical root class spelling and the relative subpath, or ok=false if
// the path does not begin with a recognized root class name.
func ParseKeyPath(path string) (root, subpath string, ok bool) {
	for _, class := range RootClasses {
		if len(path) < len(class) || !strings.EqualFold(path[:len(class)], class) {
			continue
		}
		rest := path[len(class):]
		if rest == "" {
			return class, "", true
		}
		if strings.HasPrefix(rest, Separator) {
			return class, rest[1:], true
		}
	}
	return "", "", false
}
