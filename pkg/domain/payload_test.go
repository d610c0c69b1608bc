package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOrderedPayload_PreservesOrder(t *testing.T) {
	p := NewOrderedPayload(3)
	p.Append("zeta", 1)
	p.Append("alpha", "a")
	p.Append("mid", []string{"x"})
	p.Append("zeta", 2) // replaces value, keeps position

	wantKeys := []string{"zeta", "alpha", "mid"}
	if got := p.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
	if v, _ := p.Get("zeta"); v != 2 {
		t.Errorf("Get(zeta) = %v, want 2", v)
	}

	var iterated []string
	for k := range p.All() {
		iterated = append(iterated, k)
	}
	if !reflect.DeepEqual(iterated, wantKeys) {
		t.Errorf("All() order = %v, want %v", iterated, wantKeys)
	}
}

func TestOrderedPayload_MarshalJSON(t *testing.T) {
	p := NewOrderedPayload(2)
	p.Append("query", "shoes")
	p.Append("user_id", 42)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	want := `{"query":"shoes","user_id":42}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestOrderedPayload_Nil(t *testing.T) {
	var p *OrderedPayload
	if p.Len() != 0 {
		t.Errorf("nil Len() = %d", p.Len())
	}
	if _, ok := p.Get("x"); ok {
		t.Error("nil Get should report absent")
	}
	data, err := json.Marshal(p)
	if err != nil || string(data) != "null" {
		t.Errorf("nil Marshal = %s, %v", data, err)
	}
}
