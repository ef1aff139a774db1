package graph

import (
	"encoding/binary"
	"fmt"
	"sort"
	"time"
)

// EncodeNode and EncodeEdge serialize a Node/Edge to the deterministic
// binary form persisted in the storage engine's node/edge tables,
// following the teacher's encodeNode/decodeNode pair in
// pkg/storage/badger.go (there JSON-based; here a length-prefixed binary
// layout so the format matches Value.Encode's style throughout).
func EncodeNode(n *Node) []byte {
	buf := appendString(nil, string(n.ID))
	buf = appendString(buf, n.Label)
	buf = appendProperties(buf, n.Properties)
	buf = appendTime(buf, n.CreatedAt)
	return buf
}

func DecodeNode(b []byte) (*Node, error) {
	id, rest, err := readString(b)
	if err != nil {
		return nil, fmt.Errorf("graph: decode node id: %w", err)
	}
	label, rest, err := readString(rest)
	if err != nil {
		return nil, fmt.Errorf("graph: decode node label: %w", err)
	}
	props, rest, err := readProperties(rest)
	if err != nil {
		return nil, fmt.Errorf("graph: decode node properties: %w", err)
	}
	createdAt, _, err := readTime(rest)
	if err != nil {
		return nil, fmt.Errorf("graph: decode node timestamp: %w", err)
	}
	return &Node{ID: NodeID(id), Label: label, Properties: props, CreatedAt: createdAt}, nil
}

func EncodeEdge(e *Edge) []byte {
	buf := appendString(nil, string(e.ID))
	buf = appendString(buf, e.Label)
	buf = appendString(buf, string(e.FromNode))
	buf = appendString(buf, string(e.ToNode))
	buf = appendProperties(buf, e.Properties)
	buf = appendTime(buf, e.CreatedAt)
	return buf
}

func DecodeEdge(b []byte) (*Edge, error) {
	id, rest, err := readString(b)
	if err != nil {
		return nil, fmt.Errorf("graph: decode edge id: %w", err)
	}
	label, rest, err := readString(rest)
	if err != nil {
		return nil, fmt.Errorf("graph: decode edge label: %w", err)
	}
	from, rest, err := readString(rest)
	if err != nil {
		return nil, fmt.Errorf("graph: decode edge from: %w", err)
	}
	to, rest, err := readString(rest)
	if err != nil {
		return nil, fmt.Errorf("graph: decode edge to: %w", err)
	}
	props, rest, err := readProperties(rest)
	if err != nil {
		return nil, fmt.Errorf("graph: decode edge properties: %w", err)
	}
	createdAt, _, err := readTime(rest)
	if err != nil {
		return nil, fmt.Errorf("graph: decode edge timestamp: %w", err)
	}
	return &Edge{
		ID: EdgeID(id), Label: label,
		FromNode: NodeID(from), ToNode: NodeID(to),
		Properties: props, CreatedAt: createdAt,
	}, nil
}

func appendString(buf []byte, s string) []byte {
	return appendLenPrefixed(buf, []byte(s))
}

func readString(b []byte) (string, []byte, error) {
	s, n, err := readLenPrefixed(b)
	if err != nil {
		return "", nil, err
	}
	return string(s), b[n:], nil
}

func appendProperties(buf []byte, props map[string]Value) []byte {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(keys)))
	buf = append(buf, countBuf[:]...)
	for _, k := range keys {
		buf = appendString(buf, k)
		buf = appendLenPrefixed(buf, props[k].Encode())
	}
	return buf
}

func readProperties(b []byte) (map[string]Value, []byte, error) {
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("graph: read property count: %w", ErrTruncated)
	}
	count := binary.BigEndian.Uint32(b[:4])
	rest := b[4:]
	props := make(map[string]Value, count)
	for i := uint32(0); i < count; i++ {
		key, next, err := readString(rest)
		if err != nil {
			return nil, nil, err
		}
		rest = next
		payload, n, err := readLenPrefixed(rest)
		if err != nil {
			return nil, nil, err
		}
		rest = rest[n:]
		val, _, err := DecodeValue(payload)
		if err != nil {
			return nil, nil, err
		}
		props[key] = val
	}
	return props, rest, nil
}

func appendTime(buf []byte, t time.Time) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(t.UnixNano()))
	return append(buf, tmp[:]...)
}

func readTime(b []byte) (time.Time, []byte, error) {
	if len(b) < 8 {
		return time.Time{}, nil, fmt.Errorf("graph: read timestamp: %w", ErrTruncated)
	}
	nanos := int64(binary.BigEndian.Uint64(b[:8]))
	return time.Unix(0, nanos).UTC(), b[8:], nil
}
