package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

type createDTO struct {
	Name   string
	Price  decimal.Decimal
	Amount float64
}

type updateDTO struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Skip  *string          `json:"-"`
}

func TestNormalizeDTO(t *testing.T) {
	in := createDTO{
		Name:   "  brake pad ",
		Price:  decimal.RequireFromString("12.345"),
		Amount: 1.009,
	}
	NormalizeDTO(&in)

	if in.Name != "brake pad" {
		t.Errorf("name = %q, want trimmed", in.Name)
	}
	if !in.Price.Equal(decimal.RequireFromString("12.35")) {
		t.Errorf("price = %s, want 12.35", in.Price)
	}
	if in.Amount != 1.01 {
		t.Errorf("amount = %g, want 1.01", in.Amount)
	}
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	name := " oil filter "
	price := decimal.RequireFromString("9.999")
	skip := "x"
	in := updateDTO{Name: &name, Price: &price, Skip: &skip}
	NormalizePtrDTO(&in)
	updates := UpdatesFromPtrDTO(&in)

	if got := updates["name"]; got != "oil filter" {
		t.Errorf("name = %v, want trimmed", got)
	}
	if got, ok := updates["price"].(decimal.Decimal); !ok || !got.Equal(decimal.RequireFromString("10")) {
		t.Errorf("price = %v, want 10", updates["price"])
	}
	if _, ok := updates["-"]; ok {
		t.Error("json:\"-\" fields must not be patched")
	}
	if len(updates) != 2 {
		t.Errorf("updates has %d keys, want 2", len(updates))
	}
}

func TestUpdatesFromPtrDTOSkipsNils(t *testing.T) {
	updates := UpdatesFromPtrDTO(&updateDTO{})
	if len(updates) != 0 {
		t.Errorf("updates = %v, want empty", updates)
	}
}
