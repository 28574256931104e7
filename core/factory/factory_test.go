package factory

import (
	"reflect"
	"testing"
)

type bucketSink struct{ Namespace string }

type bucketConf struct {
	Namespace string `json:"namespace"`
}

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*bucketSink]()
	if err := reg.Register("bucket", func(conf map[string]any) (*bucketSink, error) {
		var c bucketConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &bucketSink{Namespace: c.Namespace}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "bucket", Conf: map[string]any{"namespace": "soc"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Namespace != "soc" {
		t.Fatalf("expected soc got %q", inst.Namespace)
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("y", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"b", "a"} {
		if err := reg.Register(n, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected names %v", got)
	}
}
