// Package graph holds the property-graph data model shared by the storage
// engine and the traversal builder: the closed-variant property Value,
// and the Node and Edge types built from it.
package graph

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// ValueKind tags which variant a Value holds. The set is closed: Decode
// rejects any tag byte outside this list rather than guessing.
type ValueKind byte

const (
	KindEmpty ValueKind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindArray
	KindObject
)

// Value is a single property value stored on a Node or Edge. Exactly one
// of the accessor-relevant fields is meaningful for a given Kind; the
// others are zero. Construct with the NewXxx helpers rather than a bare
// struct literal so Kind and payload never drift apart.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
	Flt  float64
	Bool bool
	Arr  []Value
	Obj  map[string]Value
}

func NewEmpty() Value           { return Value{Kind: KindEmpty} }
func NewString(s string) Value  { return Value{Kind: KindString, Str: s} }
func NewInteger(i int64) Value  { return Value{Kind: KindInteger, Int: i} }
func NewFloat(f float64) Value  { return Value{Kind: KindFloat, Flt: f} }
func NewBoolean(b bool) Value   { return Value{Kind: KindBoolean, Bool: b} }
func NewArray(v []Value) Value  { return Value{Kind: KindArray, Arr: v} }
func NewObject(m map[string]Value) Value {
	return Value{Kind: KindObject, Obj: m}
}

// Encode produces the deterministic binary form of v: a one-byte tag
// followed by a variant-specific payload. Encoding is deterministic for
// KindObject by sorting keys, so two structurally equal values always
// produce identical bytes (needed for the round-trip property test).
func (v Value) Encode() []byte {
	buf := []byte{byte(v.Kind)}
	switch v.Kind {
	case KindEmpty:
		// no payload
	case KindString:
		buf = appendLenPrefixed(buf, []byte(v.Str))
	case KindInteger:
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], uint64(v.Int))
		buf = append(buf, tmp[:]...)
	case KindFloat:
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v.Flt))
		buf = append(buf, tmp[:]...)
	case KindBoolean:
		if v.Bool {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case KindArray:
		var countBuf [4]byte
		binary.BigEndian.PutUint32(countBuf[:], uint32(len(v.Arr)))
		buf = append(buf, countBuf[:]...)
		for _, elem := range v.Arr {
			buf = appendLenPrefixed(buf, elem.Encode())
		}
	case KindObject:
		keys := make([]string, 0, len(v.Obj))
		for k := range v.Obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var countBuf [4]byte
		binary.BigEndian.PutUint32(countBuf[:], uint32(len(keys)))
		buf = append(buf, countBuf[:]...)
		for _, k := range keys {
			buf = appendLenPrefixed(buf, []byte(k))
			buf = appendLenPrefixed(buf, v.Obj[k].Encode())
		}
	}
	return buf
}

func appendLenPrefixed(buf, payload []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	buf = append(buf, lenBuf[:]...)
	return append(buf, payload...)
}

// DecodeValue parses the bytes produced by Value.Encode, returning the
// number of bytes consumed so callers can decode a sequence in place.
func DecodeValue(b []byte) (Value, int, error) {
	if len(b) < 1 {
		return Value{}, 0, fmt.Errorf("graph: decode value: %w", ErrTruncated)
	}
	kind := ValueKind(b[0])
	rest := b[1:]
	switch kind {
	case KindEmpty:
		return Value{Kind: KindEmpty}, 1, nil
	case KindString:
		s, n, err := readLenPrefixed(rest)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Kind: KindString, Str: string(s)}, 1 + n, nil
	case KindInteger:
		if len(rest) < 8 {
			return Value{}, 0, fmt.Errorf("graph: decode integer: %w", ErrTruncated)
		}
		return Value{Kind: KindInteger, Int: int64(binary.BigEndian.Uint64(rest[:8]))}, 9, nil
	case KindFloat:
		if len(rest) < 8 {
			return Value{}, 0, fmt.Errorf("graph: decode float: %w", ErrTruncated)
		}
		return Value{Kind: KindFloat, Flt: math.Float64frombits(binary.BigEndian.Uint64(rest[:8]))}, 9, nil
	case KindBoolean:
		if len(rest) < 1 {
			return Value{}, 0, fmt.Errorf("graph: decode boolean: %w", ErrTruncated)
		}
		return Value{Kind: KindBoolean, Bool: rest[0] != 0}, 2, nil
	case KindArray:
		if len(rest) < 4 {
			return Value{}, 0, fmt.Errorf("graph: decode array: %w", ErrTruncated)
		}
		count := binary.BigEndian.Uint32(rest[:4])
		pos := 4
		arr := make([]Value, 0, count)
		for i := uint32(0); i < count; i++ {
			payload, n, err := readLenPrefixed(rest[pos:])
			if err != nil {
				return Value{}, 0, err
			}
			pos += n
			elem, _, err := DecodeValue(payload)
			if err != nil {
				return Value{}, 0, err
			}
			arr = append(arr, elem)
		}
		return Value{Kind: KindArray, Arr: arr}, 1 + pos, nil
	case KindObject:
		if len(rest) < 4 {
			return Value{}, 0, fmt.Errorf("graph: decode object: %w", ErrTruncated)
		}
		count := binary.BigEndian.Uint32(rest[:4])
		pos := 4
		obj := make(map[string]Value, count)
		for i := uint32(0); i < count; i++ {
			keyBytes, n, err := readLenPrefixed(rest[pos:])
			if err != nil {
				return Value{}, 0, err
			}
			pos += n
			valBytes, n, err := readLenPrefixed(rest[pos:])
			if err != nil {
				return Value{}, 0, err
			}
			pos += n
			val, _, err := DecodeValue(valBytes)
			if err != nil {
				return Value{}, 0, err
			}
			obj[string(keyBytes)] = val
		}
		return Value{Kind: KindObject, Obj: obj}, 1 + pos, nil
	default:
		return Value{}, 0, fmt.Errorf("graph: decode value: tag %d: %w", kind, ErrUnknownVariant)
	}
}

func readLenPrefixed(b []byte) ([]byte, int, error) {
	if len(b) < 4 {
		return nil, 0, fmt.Errorf("graph: read length prefix: %w", ErrTruncated)
	}
	n := int(binary.BigEndian.Uint32(b[:4]))
	if len(b) < 4+n {
		return nil, 0, fmt.Errorf("graph: read payload: %w", ErrTruncated)
	}
	return b[4 : 4+n], 4 + n, nil
}
