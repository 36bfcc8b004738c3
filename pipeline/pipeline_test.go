package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/recdata/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func(ds *core.Dataset) (*core.Dataset, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }
func (n *stubNode) Process(_ context.Context, ds *core.Dataset) (*core.Dataset, error) {
	return n.fn(ds)
}

func TestPipeline_RunsNodesInOrder(t *testing.T) {
	var order []string
	mk := func(name string) Node {
		return &stubNode{name: name, kind: KindFilter, fn: func(ds *core.Dataset) (*core.Dataset, error) {
			order = append(order, name)
			ds.PutMeta(name, true)
			return ds, nil
		}}
	}

	p := &Pipeline{Nodes: []Node{mk("first"), mk("second"), mk("third")}}
	out, err := p.Run(context.Background(), core.NewDataset(nil))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("执行顺序 %v, want %v", order, want)
		}
	}
	for _, name := range want {
		if out.Meta[name] != true {
			t.Errorf("Dataset 未经过节点 %s", name)
		}
	}
}

func TestPipeline_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "bad", kind: KindSplit, fn: func(ds *core.Dataset) (*core.Dataset, error) {
			return nil, boom
		}},
		&stubNode{name: "after", kind: KindLabel, fn: func(ds *core.Dataset) (*core.Dataset, error) {
			ran = true
			return ds, nil
		}},
	}}

	if _, err := p.Run(context.Background(), core.NewDataset(nil)); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if ran {
		t.Fatal("出错后不应继续执行后续节点")
	}
}
