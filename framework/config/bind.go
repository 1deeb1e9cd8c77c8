package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Bind populates a struct from the snapshot using `cfg` field tags, then
// validates it with `validate` tags (go-playground/validator syntax).
//
//	type ServerConfig struct {
//	    Addr    string        `cfg:"SERVER_ADDR" validate:"required"`
//	    Timeout time.Duration `cfg:"SERVER_TIMEOUT"`
//	    Debug   bool          `cfg:"SERVER_DEBUG"`
//	}
//
//	var sc ServerConfig
//	if err := config.Bind(snap, &sc); err != nil { ... }
//
// Supported field kinds: string, bool, all int/uint widths, float32/64,
// time.Duration, and nested structs (tagless nested structs are walked
// through). Untagged scalar fields are skipped. Keys absent from the
// snapshot leave the field's existing value untouched, so defaults can be
// set before calling Bind.
func Bind(snap *Snapshot, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: Bind requires a non-nil struct pointer, got %T", v)
	}
	if err := bindStruct(snap, rv.Elem()); err != nil {
		return err
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

func bindStruct(snap *Snapshot, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		// Nested structs are walked regardless of tagging, except
		// time.Duration-like named types handled below.
		if fv.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := bindStruct(snap, fv); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("cfg")
		if key == "" || key == "-" {
			continue
		}
		raw, ok := snap.Lookup(key)
		if !ok {
			continue
		}
		if err := setField(fv, raw); err != nil {
			return fmt.Errorf("config: binding %s from %s: %w", field.Name, key, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fv.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return err
			}
			fv.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", fv.Kind())
	}
	return nil
}
