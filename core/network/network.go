// Package network reads the road-network description just far enough to
// enumerate valid trip endpoints. The network is otherwise opaque: no
// graph algorithms are performed on it here.
package network

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// EdgeID is an opaque edge identifier from the network description.
type EdgeID string

// Edges is the set of usable trip endpoints, in document order.
type Edges struct {
	ids []EdgeID
	set map[EdgeID]struct{}
}

// IDs returns the edge identifiers in document order.
func (e *Edges) IDs() []EdgeID {
	return e.ids
}

// Len returns the number of edges.
func (e *Edges) Len() int {
	return len(e.ids)
}

// Contains reports whether id is a known edge.
func (e *Edges) Contains(id EdgeID) bool {
	_, ok := e.set[id]
	return ok
}

// LoadEdges streams a network file and collects all non-internal edge
// identifiers. Internal junction edges (prefixed ":") are skipped. The
// file is read in one pass; only identifiers are retained.
func LoadEdges(path string) (*Edges, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't open network file")
	}
	defer file.Close()

	edges, err := readEdges(file)
	if err != nil {
		return nil, errors.Wrapf(err, "can't parse network file %s", path)
	}
	return edges, nil
}

func readEdges(r io.Reader) (*Edges, error) {
	decoder := xml.NewDecoder(r)
	edges := &Edges{set: make(map[EdgeID]struct{})}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "malformed network document")
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "edge" {
			continue
		}

		for _, attr := range start.Attr {
			if attr.Name.Local != "id" {
				continue
			}
			id := EdgeID(attr.Value)
			if attr.Value == "" || strings.HasPrefix(attr.Value, ":") {
				break
			}
			if _, seen := edges.set[id]; !seen {
				edges.set[id] = struct{}{}
				edges.ids = append(edges.ids, id)
			}
			break
		}
	}

	if edges.Len() == 0 {
		return nil, errors.New("network contains no usable edges")
	}
	return edges, nil
}
