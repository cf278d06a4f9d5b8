package repo

import (
	"fmt"
	"reflect"

	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

const sheetTag = "sheet"

// Encode converts a record struct into a row using its sheet tags. Only
// string-kinded fields are supported; every cell is text.
func Encode(record any) (rowstore.Row, error) {
	v := reflect.ValueOf(record)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("encode: expected struct, got %s", v.Kind())
	}

	row := rowstore.Row{}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		header, ok := t.Field(i).Tag.Lookup(sheetTag)
		if !ok {
			continue
		}
		field := v.Field(i)
		if field.Kind() != reflect.String {
			return nil, fmt.Errorf("encode: field %s is not text", t.Field(i).Name)
		}
		row[header] = field.String()
	}
	return row, nil
}

// Decode fills the record pointed to by dst from a row. Missing cells leave
// the field empty.
func Decode(row rowstore.Row, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode: expected pointer to struct")
	}
	v = v.Elem()

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		header, ok := t.Field(i).Tag.Lookup(sheetTag)
		if !ok {
			continue
		}
		field := v.Field(i)
		if field.Kind() != reflect.String {
			return fmt.Errorf("decode: field %s is not text", t.Field(i).Name)
		}
		field.SetString(row[header])
	}
	return nil
}

// indexBy maps the value of the key column to its 0-based row position. When
// an identifier repeats, the first row wins.
func indexBy(rows []rowstore.Row, key string) map[string]int {
	idx := make(map[string]int, len(rows))
	for i, r := range rows {
		if _, seen := idx[r[key]]; !seen {
			idx[r[key]] = i
		}
	}
	return idx
}
