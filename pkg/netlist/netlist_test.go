package netlist

import (
	"errors"
	"strings"
	"testing"

	"github.com/waveforge/waveforge/pkg/cells"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/tech"
	"github.com/waveforge/waveforge/pkg/xsection"
)

func testXS(t *testing.T) xsection.CrossSection {
	t.Helper()
	xreg, err := xsection.NewRegistry(tech.Generic())
	if err != nil {
		t.Fatal(err)
	}
	xs, err := xreg.Get("strip")
	if err != nil {
		t.Fatal(err)
	}
	return xs
}

func TestAddInstanceAndNets(t *testing.T) {
	nl := New("top", nil)
	if err := nl.AddInstance(Instance{Name: "a", Cell: "straight"}); err != nil {
		t.Fatal(err)
	}
	if err := nl.AddInstance(Instance{Name: "b", Cell: "straight"}); err != nil {
		t.Fatal(err)
	}
	if err := nl.AddInstance(Instance{Name: "a"}); !errors.Is(err, ErrDuplicateInstanceID) {
		t.Errorf("duplicate err = %v", err)
	}
	if err := nl.AddInstance(Instance{}); !errors.Is(err, ErrInvalidInstanceID) {
		t.Errorf("empty name err = %v", err)
	}

	net := Net{A: PortRef{"a", "o2"}, B: PortRef{"b", "o1"}}
	if err := nl.AddNet(net); err != nil {
		t.Fatal(err)
	}
	if err := nl.AddNet(Net{A: PortRef{"a", "o1"}, B: PortRef{"ghost", "o1"}}); !errors.Is(err, ErrUnknownInstance) {
		t.Errorf("unknown instance err = %v", err)
	}
	if nl.InstanceCount() != 2 || nl.NetCount() != 1 {
		t.Errorf("counts = %d, %d", nl.InstanceCount(), nl.NetCount())
	}
	if err := nl.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateSelfAndOverconnection(t *testing.T) {
	nl := New("top", nil)
	_ = nl.AddInstance(Instance{Name: "a"})
	_ = nl.AddInstance(Instance{Name: "b"})

	_ = nl.AddNet(Net{A: PortRef{"a", "o1"}, B: PortRef{"a", "o1"}})
	if err := nl.Validate(); err == nil {
		t.Error("self connection should fail validation")
	}

	nl = New("top", nil)
	_ = nl.AddInstance(Instance{Name: "a"})
	_ = nl.AddInstance(Instance{Name: "b"})
	_ = nl.AddNet(Net{A: PortRef{"a", "o1"}, B: PortRef{"b", "o1"}})
	_ = nl.AddNet(Net{A: PortRef{"a", "o1"}, B: PortRef{"b", "o2"}})
	if err := nl.Validate(); !errors.Is(err, ErrPortOverconnected) {
		t.Errorf("overconnection err = %v", err)
	}
}

func TestExtractChain(t *testing.T) {
	xs := testXS(t)
	wg, err := cells.Straight(xs, 10)
	if err != nil {
		t.Fatal(err)
	}

	top := layout.NewComponent("chain")
	a := top.AddRef(wg)
	b := top.AddRef(wg)
	c := top.AddRef(wg)
	aPort, _ := a.Port("o2")
	if err := b.Connect("o1", aPort); err != nil {
		t.Fatal(err)
	}
	bPort, _ := b.Port("o2")
	if err := c.Connect("o1", bPort); err != nil {
		t.Fatal(err)
	}

	nl, err := Extract(top)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if nl.InstanceCount() != 3 {
		t.Fatalf("instances = %d", nl.InstanceCount())
	}
	if nl.NetCount() != 2 {
		t.Fatalf("nets = %v", nl.Nets())
	}
	if err := nl.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	// Shared cell names get uniquified.
	names := make(map[string]bool)
	for _, inst := range nl.Instances() {
		names[inst.Name] = true
	}
	if len(names) != 3 {
		t.Errorf("instance names = %v", names)
	}
}

func TestExtractUnconnected(t *testing.T) {
	xs := testXS(t)
	wg, _ := cells.Straight(xs, 10)

	top := layout.NewComponent("apart")
	top.AddRef(wg)
	top.AddRef(wg).Move(geometry.Pt(100, 100))

	nl, err := Extract(top)
	if err != nil {
		t.Fatal(err)
	}
	if nl.NetCount() != 0 {
		t.Errorf("separated refs should not connect, nets = %v", nl.Nets())
	}
}

func TestToDOT(t *testing.T) {
	nl := New("mzi", nil)
	_ = nl.AddInstance(Instance{Name: "splitter", Cell: "mmi1x2"})
	_ = nl.AddInstance(Instance{Name: "combiner", Cell: "mmi1x2"})
	_ = nl.AddNet(Net{A: PortRef{"splitter", "o2"}, B: PortRef{"combiner", "o3"}})

	dot := ToDOT(nl, DOTOptions{})
	for _, want := range []string{`graph "mzi"`, `"splitter"`, `"combiner"`, `"splitter" -- "combiner"`, `taillabel="o2"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	detailed := ToDOT(nl, DOTOptions{Detailed: true})
	if !strings.Contains(detailed, "at (0.000, 0.000)") {
		t.Errorf("detailed DOT missing placement:\n%s", detailed)
	}
}
