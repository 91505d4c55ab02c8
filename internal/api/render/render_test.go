package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ecoagua/storefront/internal/core/domain"
)

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range pages {
		var buf bytes.Buffer
		if err := r.Render(&buf, name, NewView("EcoAgua", nil), nil); err != nil {
			t.Errorf("render %s: %v", name, err)
		}
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, "missing", View{}, nil); err == nil {
		t.Fatal("expected error for unknown page")
	}
}

func TestRender_CartShowsLinesTotalAndMessage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sess := domain.NewSession("s1")
	sess.User = &domain.SessionUser{Username: "alice"}
	sess.Cart = domain.Cart{Lines: []domain.CartLine{
		{ProductID: 1, Name: "Rain barrel", Price: decimal.NewFromInt(10), Quantity: 2},
	}}

	v := NewView("Cart", sess)
	v.Lines = sess.Cart.Lines
	v.Total = sess.Cart.Total()
	v.Message = &domain.Message{Kind: domain.MessageSuccess, Text: "Payment completed successfully."}

	var buf bytes.Buffer
	if err := r.Render(&buf, PageCart, v, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rain barrel", "$20.00", "Cart (2)", "alice", "message success"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}
