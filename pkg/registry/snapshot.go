package registry

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/pg9182/nswine/pkg/types"
)

// keySnapshot is the JSON form of one key. Subkeys and values are arrays
// rather than objects so enumeration order survives a round trip.
type keySnapshot struct {
	Name    string          `json:"name"`
	Values  []valueSnapshot `json:"values,omitempty"`
	Subkeys []keySnapshot   `json:"subkeys,omitempty"`
}

type valueSnapshot struct {
	Name string `json:"name"`
	Type uint32 `json:"type"`
	Data []byte `json:"data"` // base64 in JSON
}

func snapshotNode(n *node) keySnapshot {
	snap := keySnapshot{Name: n.name}
	for _, v := range n.values {
		snap.Values = append(snap.Values, valueSnapshot{Name: v.Name, Type: uint32(v.Type), Data: v.Data})
	}
	for _, sub := range n.subkeys {
		snap.Subkeys = append(snap.Subkeys, snapshotNode(sub))
	}
	return snap
}

func restoreNode(snap keySnapshot) *node {
	n := &node{name: snap.Name}
	for _, v := range snap.Values {
		n.values = append(n.values, types.Value{Name: v.Name, Type: types.RegType(v.Type), Data: v.Data})
	}
	for _, sub := range snap.Subkeys {
		n.subkeys = append(n.subkeys, restoreNode(sub))
	}
	return n
}

// Save writes the whole store as a JSON snapshot.
func (s *Store) Save(w io.Writer) error {
	snaps := make([]keySnapshot, 0, len(RootClasses))
	for _, class := range RootClasses {
		snaps = append(snaps, snapshotNode(s.roots[class]))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snaps); err != nil {
		return fmt.Errorf("registry: encode snapshot: %w", err)
	}
	return nil
}

// Load replaces the store contents with a JSON snapshot previously
// produced by Save. Roots missing from the snapshot are left empty.
func (s *Store) Load(r io.Reader) error {
	var snaps []keySnapshot
	if err := json.NewDecoder(r).Decode(&snaps); err != nil {
		return fmt.Errorf("registry: decode snapshot: %w", err)
	}
	for _, class := range RootClasses {
		s.roots[class] = &node{name: class}
	}
	for _, snap := range snaps {
		root, subpath, ok := ParseKeyPath(snap.Name)
		if !ok || subpath != "" {
			return fmt.Errorf("%w: %q", ErrUnknownRoot, snap.Name)
		}
		n := restoreNode(snap)
		n.name = root
		s.roots[root] = n
	}
	return nil
}
