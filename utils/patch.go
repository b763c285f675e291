package utils

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// UpdatesFromPtrDTO turns the non-nil pointer fields of an update DTO into a
// gorm Updates map keyed by the field's json name, so a partial request body
// patches only the columns it names. Decimal money values are normalized to
// the ledger scale on the way through.
func UpdatesFromPtrDTO(dto any) map[string]any {
	res := make(map[string]any)
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return res
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return res
	}
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		fv := s.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		el := fv.Elem()
		if el.Type() == decimalType {
			res[name] = Money2(el.Interface().(decimal.Decimal))
			continue
		}
		res[name] = el.Interface()
	}
	return res
}

// ParseIntDefault parses a non-negative int query parameter, falling back to
// def on anything unparseable.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
