package network

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleNet = `<?xml version="1.0" encoding="UTF-8"?>
<net version="1.9">
    <edge id="1135405" from="n1" to="n2" priority="1">
        <lane id="1135405_0" index="0" speed="27.78" length="120.5"/>
    </edge>
    <edge id=":junction_7_0" function="internal">
        <lane id=":junction_7_0_0" index="0" speed="13.89" length="8.1"/>
    </edge>
    <edge id="1302641" from="n2" to="n3" priority="1"/>
    <edge id="1302641" from="n2" to="n3" priority="1"/>
</net>
`

func writeNet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.net.xml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEdges(t *testing.T) {
	edges, err := LoadEdges(writeNet(t, sampleNet))
	if err != nil {
		t.Fatal(err)
	}

	// Internal edge excluded, duplicate collapsed.
	if edges.Len() != 2 {
		t.Fatalf("got %d edges, want 2: %v", edges.Len(), edges.IDs())
	}
	if !edges.Contains("1135405") || !edges.Contains("1302641") {
		t.Fatalf("edges = %v", edges.IDs())
	}
	if edges.Contains(":junction_7_0") {
		t.Error("internal edge retained")
	}
	// Document order preserved.
	if edges.IDs()[0] != "1135405" {
		t.Errorf("first edge = %s, want 1135405", edges.IDs()[0])
	}
}

func TestLoadEdgesMissingFile(t *testing.T) {
	if _, err := LoadEdges(filepath.Join(t.TempDir(), "nope.net.xml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestLoadEdgesEmptyNetwork(t *testing.T) {
	if _, err := LoadEdges(writeNet(t, `<net version="1.9"></net>`)); err == nil {
		t.Fatal("edgeless network accepted")
	}
}

func TestLoadEdgesMalformed(t *testing.T) {
	if _, err := LoadEdges(writeNet(t, `<net><edge id="a"`)); err == nil {
		t.Fatal("malformed network accepted")
	}
}
