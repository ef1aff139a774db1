// Package storage implements the ordered, transactional, prefix-scanning
// key-value engine that backs the graph: six logical tables addressed by
// byte-prefixed keys over a single BadgerDB instance, following the
// single-byte-prefix scheme of pkg/storage/badger.go adapted to the
// six-table node/edge/label/adjacency layout of the graph model.
package storage

import (
	"bytes"
	"fmt"

	"github.com/vertexdb/vertexdb/internal/graph"
)

// Table prefixes. One byte each, matching the teacher's
// "single-byte prefix for efficiency" comment in pkg/storage/badger.go;
// the colon separator below mirrors the "n:", "e:" ... grammar that this
// spec's key tables are built from.
const (
	prefixNode       = byte(0x01) // n: + nodeID -> encoded Node
	prefixEdge       = byte(0x02) // e: + edgeID -> encoded Edge
	prefixNodeLabel  = byte(0x03) // nl: + label + ':' + nodeID -> empty
	prefixEdgeLabel  = byte(0x04) // el: + label + ':' + edgeID -> empty
	prefixOutEdges   = byte(0x05) // o: + fromID + ':' + edgeID -> empty
	prefixInEdges    = byte(0x06) // i: + toID + ':' + edgeID -> empty
	keySeparator     = byte(':')
)

func nodeKey(id graph.NodeID) []byte {
	return append([]byte{prefixNode}, id...)
}

func edgeKey(id graph.EdgeID) []byte {
	return append([]byte{prefixEdge}, id...)
}

func nodeLabelKey(label string, id graph.NodeID) []byte {
	return labeledKey(prefixNodeLabel, label, string(id))
}

func nodeLabelPrefix(label string) []byte {
	return labeledPrefix(prefixNodeLabel, label)
}

func edgeLabelKey(label string, id graph.EdgeID) []byte {
	return labeledKey(prefixEdgeLabel, label, string(id))
}

func edgeLabelPrefix(label string) []byte {
	return labeledPrefix(prefixEdgeLabel, label)
}

func outEdgeKey(from graph.NodeID, edge graph.EdgeID) []byte {
	return labeledKey(prefixOutEdges, string(from), string(edge))
}

func outEdgePrefix(from graph.NodeID) []byte {
	return labeledPrefix(prefixOutEdges, string(from))
}

func inEdgeKey(to graph.NodeID, edge graph.EdgeID) []byte {
	return labeledKey(prefixInEdges, string(to), string(edge))
}

func inEdgePrefix(to graph.NodeID) []byte {
	return labeledPrefix(prefixInEdges, string(to))
}

func labeledKey(prefix byte, label, id string) []byte {
	buf := make([]byte, 0, 1+len(label)+1+len(id))
	buf = append(buf, prefix)
	buf = append(buf, label...)
	buf = append(buf, keySeparator)
	buf = append(buf, id...)
	return buf
}

func labeledPrefix(prefix byte, label string) []byte {
	buf := make([]byte, 0, 1+len(label)+1)
	buf = append(buf, prefix)
	buf = append(buf, label...)
	buf = append(buf, keySeparator)
	return buf
}

// extractTrailingID returns the id segment after the last separator in a
// labeled-prefix key, i.e. the edgeID in an adjacency-index key or the
// nodeID in a label-index key.
func extractTrailingID(key []byte) (string, error) {
	idx := bytes.LastIndexByte(key, keySeparator)
	if idx < 0 || idx == len(key)-1 {
		return "", fmt.Errorf("storage: malformed index key %q", key)
	}
	return string(key[idx+1:]), nil
}

// validateIdentifier rejects labels/ids containing the key separator,
// since the key grammar assumes it never occurs inside a segment.
func validateIdentifier(kind, s string) error {
	if s == "" {
		return fmt.Errorf("storage: empty %s", kind)
	}
	if bytes.IndexByte([]byte(s), keySeparator) >= 0 {
		return fmt.Errorf("storage: %s %q must not contain %q", kind, s, string(keySeparator))
	}
	return nil
}
