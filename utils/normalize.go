package utils

import (
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// normalizeField cleans one settable DTO field: strings are trimmed, float
// quantities rounded, decimal money brought to the ledger's 2-decimal scale.
func normalizeField(f reflect.Value) {
	if !f.CanSet() {
		return
	}
	if f.Type() == decimalType {
		f.Set(reflect.ValueOf(Money2(f.Interface().(decimal.Decimal))))
		return
	}
	switch f.Kind() {
	case reflect.String:
		f.SetString(strings.TrimSpace(f.String()))
	case reflect.Float64:
		f.SetFloat(Round2(f.Float()))
	}
}

// NormalizePtrDTO cleans the non-nil pointer fields of an update DTO. Nil
// pointers stay nil so a partial body leaves those columns untouched.
func NormalizePtrDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		normalizeField(f.Elem())
	}
}

// NormalizeDTO cleans every settable field of a create DTO in place.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		normalizeField(s.Field(i))
	}
}
