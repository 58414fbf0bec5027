package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tburdett/owl2json/pkg/hierarchy"
)

func zooTree() *hierarchy.Node {
	owl := &hierarchy.Node{URI: "http://example.org/owl", Name: "owl", Size: 1}
	bird := &hierarchy.Node{URI: "http://example.org/bird", Name: "bird", Size: 2, Children: []*hierarchy.Node{owl}}
	root := &hierarchy.Node{URI: "http://example.org/animal", Name: "animal", Size: 4, Children: []*hierarchy.Node{bird}}
	root.Children = append(root.Children, hierarchy.NewAggregate(root, 1))
	return root
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(zooTree(), Options{})

	for _, want := range []string{
		"rankdir=TB;",
		`n0 [label="animal\n4", tooltip="http://example.org/animal"];`,
		`n1 [label="bird\n2"`,
		`n3 [label="Other animal\n1", style="rounded,filled,dashed"`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n0 -> n3;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "http://example.org/owl\n") {
		t.Error("URIs should only appear in labels when Detailed is set")
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(zooTree(), Options{Detailed: true, LeftToRight: true})
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("expected LR layout")
	}
	if !strings.Contains(dot, `label="owl\n1\nhttp://example.org/owl"`) {
		t.Errorf("detailed label missing URI:\n%s", dot)
	}
}

func TestToDOTWrapperAndEmpty(t *testing.T) {
	wrapper := &hierarchy.Node{URI: "http://example.org/zoo", Name: "http://example.org/zoo", Kind: hierarchy.KindWrapper}
	if dot := ToDOT(wrapper, Options{}); !strings.Contains(dot, "bold") {
		t.Errorf("wrapper should be bold:\n%s", dot)
	}
	if dot := ToDOT(nil, Options{}); !strings.HasSuffix(dot, "}\n") || strings.Contains(dot, "n0") {
		t.Errorf("nil root should give an empty graph:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(zooTree(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("owl")) {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox should be unchanged, got %s", got)
	}
}
