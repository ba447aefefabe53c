package registry

import (
	"fmt"
	"strings"

	"github.com/pg9182/nswine/pkg/types"
)

// Store is an in-memory hierarchical key-value store with registry
// semantics: key and value names are case-insensitive but case-preserving,
// and enumeration yields insertion order.
//
// A Store is safe for sequential use; callers needing concurrent mutation
// must provide their own synchronization.
type Store struct {
	roots map[string]*node
}

type node struct {
	name    string
	values  []types.Value
	subkeys []*node
}

var _ types.Store = (*Store)(nil)

// NewStore creates an empty store containing the six root classes.
func NewStore() *Store {
	s := &Store{roots: make(map[string]*node, len(RootClasses))}
	for _, class := range RootClasses {
		s.roots[class] = &node{name: class}
	}
	return s
}

func (n *node) findSubkey(name string) *node {
	for _, sub := range n.subkeys {
		if strings.EqualFold(sub.name, name) {
			return sub
		}
	}
	return nil
}

func (n *node) findValue(name string) int {
	for i := range n.values {
		if strings.EqualFold(n.values[i].Name, name) {
			return i
		}
	}
	return -1
}

// resolve walks from a root class to the node for path, optionally
// creating missing components along the way.
func (s *Store) resolve(path string, create bool) (*node, error) {
	root, subpath, ok := ParseKeyPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoot, path)
	}
	n := s.roots[root]
	if subpath == "" {
		return n, nil
	}
	for _, part := range strings.Split(subpath, Separator) {
		sub := n.findSubkey(part)
		if sub == nil {
			if !create {
				return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, path)
			}
			sub = &node{name: part}
			n.subkeys = append(n.subkeys, sub)
		}
		n = sub
	}
	return n, nil
}

// CreateKey opens the key at path, creating it and any missing parents.
func (s *Store) CreateKey(path string) (types.Key, error) {
	n, err := s.resolve(path, true)
	if err != nil {
		return nil, err
	}
	return &key{path: path, node: n}, nil
}

// OpenKey opens an existing key, failing if it does not exist.
func (s *Store) OpenKey(path string) (types.Key, error) {
	n, err := s.resolve(path, false)
	if err != nil {
		return nil, err
	}
	return &key{path: path, node: n}, nil
}

// DeleteTree removes the key at path with all subkeys and values.
// Deleting a key that does not exist is a no-op; root classes themselves
// cannot be deleted.
func (s *Store) DeleteTree(path string) error {
	root, subpath, ok := ParseKeyPath(path)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoot, path)
	}
	if subpath == "" {
		return ErrIsRoot
	}
	parts := strings.Split(subpath, Separator)
	n := s.roots[root]
	for _, part := range parts[:len(parts)-1] {
		if n = n.findSubkey(part); n == nil {
			return nil
		}
	}
	target := parts[len(parts)-1]
	for i, sub := range n.subkeys {
		if strings.EqualFold(sub.name, target) {
			n.subkeys = append(n.subkeys[:i], n.subkeys[i+1:]...)
			break
		}
	}
	return nil
}

// key is an open handle to a store node.
type key struct {
	path string
	node *node
}

var _ types.Key = (*key)(nil)

func (k *key) Path() string { return k.path }

func (k *key) Close() error { return nil }

// SetValue stores a value, replacing an existing value with the same
// name in place so enumeration order is preserved.
func (k *key) SetValue(name string, typ types.RegType, data []byte) error {
	v := types.Value{Name: name, Type: typ, Data: append([]byte(nil), data...)}
	if i := k.node.findValue(name); i >= 0 {
		v.Name = k.node.values[i].Name // keep the original spelling
		k.node.values[i] = v
		return nil
	}
	k.node.values = append(k.node.values, v)
	return nil
}

func (k *key) DeleteValue(name string) error {
	i := k.node.findValue(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrValueNotFound, name)
	}
	k.node.values = append(k.node.values[:i], k.node.values[i+1:]...)
	return nil
}

// Values returns the key's values in insertion order. Data buffers are
// copied; mutating them does not affect the store.
func (k *key) Values() ([]types.Value, error) {
	out := make([]types.Value, len(k.node.values))
	for i, v := range k.node.values {
		out[i] = types.Value{Name: v.Name, Type: v.Type, Data: append([]byte(nil), v.Data...)}
	}
	return out, nil
}

func (k *key) Subkeys() ([]string, error) {
	out := make([]string, len(k.node.subkeys))
	for i, sub := range k.node.subkeys {
		out[i] = sub.name
	}
	return out, nil
}
