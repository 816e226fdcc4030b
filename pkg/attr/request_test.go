package attr

import "testing"

func TestRequest_AttributeMergesBags(t *testing.T) {
	req := &Request{}
	req.Add(NewString(CategorySubject, "role", "reader"))
	req.Add(NewString(CategorySubject, "role", "writer"))

	bag, ok := req.Attribute(CategorySubject, "role")
	if !ok {
		t.Fatal("Attribute() returned false, want true")
	}
	if len(bag) != 2 {
		t.Fatalf("Attribute() bag = %v, want 2 values", bag)
	}
	if bag[0] != "reader" || bag[1] != "writer" {
		t.Errorf("Attribute() bag = %v, want merge in declaration order", bag)
	}
}

func TestRequest_AttributeAbsent(t *testing.T) {
	req := &Request{}
	req.Add(NewString(CategoryAction, "op", "read"))

	if _, ok := req.Attribute(CategoryAction, "missing"); ok {
		t.Error("Attribute() of absent id returned true, want false")
	}
	// Same id in a different category does not leak across sets.
	if _, ok := req.Attribute(CategoryResource, "op"); ok {
		t.Error("Attribute() found action attribute in resource set")
	}
}

func TestRequest_Single(t *testing.T) {
	req := &Request{}
	req.Add(NewString(CategoryResource, "pid", "demo:1"))
	req.Add(NewBag(CategoryResource, "tags", []string{"a", "b"}))

	got, ok := req.Single(CategoryResource, "pid")
	if !ok || got != "demo:1" {
		t.Errorf("Single() = (%q, %v), want (%q, true)", got, ok, "demo:1")
	}

	if _, ok := req.Single(CategoryResource, "tags"); ok {
		t.Error("Single() of multi-valued bag returned true, want false")
	}
	if _, ok := req.Single(CategoryResource, "missing"); ok {
		t.Error("Single() of absent id returned true, want false")
	}
}

func TestNewBag_CopiesValues(t *testing.T) {
	src := []string{"x", "y"}
	a := NewBag(CategoryEnvironment, "list", src)

	src[0] = "mutated"

	if a.Values[0] != "x" {
		t.Errorf("attribute values = %v, want copy unaffected by caller mutation", a.Values)
	}
}

func TestValues_SetAndAdd(t *testing.T) {
	v := Values{}
	v.Set("k", "one")
	v.Set("k", "two")
	if len(v["k"]) != 1 || v["k"][0] != "two" {
		t.Errorf("Set() twice = %v, want replacement [two]", v["k"])
	}

	v.Add("k", "three")
	if len(v["k"]) != 2 {
		t.Errorf("Add() after Set() = %v, want 2 values", v["k"])
	}
}

func TestCategory_String(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategorySubject, "subject"},
		{CategoryAction, "action"},
		{CategoryResource, "resource"},
		{CategoryEnvironment, "environment"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category.String() = %q, want %q", got, tt.want)
		}
	}
}
