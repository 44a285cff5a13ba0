package helix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type school struct {
	ID         string   `helix:"id"`
	Name       string   `helix:"name"`
	Enrollment int      `helix:"enrollment"`
	Joined     float64  `helix:"joined"`
	Sports     []string `helix:"sports"`
	Note       string
}

func TestDecode(t *testing.T) {
	items := []Item{
		{"id": "kansas", "name": "University of Kansas", "enrollment": 28759.0, "joined": 1996.0, "sports": []string{"Football", "Basketball"}},
		{"id": "tcu", "name": "Texas Christian University"},
	}

	got, err := Decode[school](items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []school{
		{ID: "kansas", Name: "University of Kansas", Enrollment: 28759, Joined: 1996, Sports: []string{"Football", "Basketball"}},
		{ID: "tcu", Name: "Texas Christian University"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	_, err := Decode[school]([]Item{{"enrollment": "lots"}})
	if err == nil {
		t.Fatal("expected error for string in numeric field")
	}
}

func TestDecode_BadTarget(t *testing.T) {
	if _, err := Decode[string](nil); err == nil {
		t.Error("expected error for non-struct type")
	}

	type dup struct {
		A string `helix:"name"`
		B string `helix:"name"`
	}
	if _, err := Decode[dup](nil); err == nil {
		t.Error("expected error for duplicate key")
	}

	type unexported struct {
		name string `helix:"name"`
	}
	if _, err := Decode[unexported]([]Item{{"name": "Kansas"}}); err == nil {
		t.Error("expected error for tagged unexported field")
	}
	if _, err := Encode([]unexported{{name: "Kansas"}}); err == nil {
		t.Error("expected Encode error for tagged unexported field")
	}

	type unsupported struct {
		M map[string]string `helix:"m"`
	}
	if _, err := Decode[unsupported](nil); err == nil {
		t.Error("expected error for map field")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []school{
		{Name: "Baylor University", Enrollment: 20824, Joined: 1996, Sports: []string{"Football"}},
	}
	items, err := Encode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := items[0]["id"]; ok {
		t.Error("empty id must be omitted so the store derives one")
	}
	if items[0]["enrollment"] != 20824.0 {
		t.Errorf("enrollment = %#v", items[0]["enrollment"])
	}

	out, err := Decode[school](items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
