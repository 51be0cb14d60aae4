package render

import (
	"testing"
	"time"

	"github.com/matzehuels/archexport/pkg/diagram"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"User Login Form!@# Component", "user-login-form-component"},
		{"  Auth API  ", "auth-api"},
		{"---", ""},
		{"Orders_DB v2", "orders-db-v2"},
		{"Café Menü", "caf-men"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInputOverrides(t *testing.T) {
	d := &diagram.Diagram{
		ID:          "d",
		Name:        "Checkout",
		Description: "Cart and payment",
		Owner:       &diagram.Owner{Name: "Dana"},
		Nodes:       []diagram.Node{},
		Edges:       []diagram.Edge{},
	}

	in := NewInput(d, Common{}, time.Time{})
	if in.Title() != "Checkout" || in.Description() != "Cart and payment" || in.Author() != "Dana" {
		t.Errorf("defaults = %q/%q/%q", in.Title(), in.Description(), in.Author())
	}
	if in.Index == nil {
		t.Fatal("Index not built")
	}

	in = NewInput(d, Common{Title: "T", Description: "D", Author: "A"}, time.Time{})
	if in.Title() != "T" || in.Description() != "D" || in.Author() != "A" {
		t.Errorf("overrides = %q/%q/%q", in.Title(), in.Description(), in.Author())
	}

	d.Owner = nil
	if got := NewInput(d, Common{}, time.Time{}).Author(); got != "" {
		t.Errorf("Author without owner = %q", got)
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600))
	if got := Timestamp(ts); got != "2026-03-04T04:06:07Z" {
		t.Errorf("Timestamp = %q", got)
	}
}
