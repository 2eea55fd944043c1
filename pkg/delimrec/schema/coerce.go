package schema

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

type coerceFunc func(string) (reflect.Value, error)

type renderFunc func(reflect.Value) (string, error)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// coercerFor builds the string-to-value coercion and its inverse rendering
// for a field type. Supported types are string, bool, the int/uint widths,
// float32/64, and any type whose pointer implements encoding.TextUnmarshaler.
func coercerFor(t reflect.Type) (coerceFunc, renderFunc, error) {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return textCoercer(t)
	}

	switch t.Kind() {
	case reflect.String:
		coerce := func(s string) (reflect.Value, error) {
			v := reflect.New(t).Elem()
			v.SetString(s)
			return v, nil
		}
		render := func(v reflect.Value) (string, error) {
			return v.String(), nil
		}
		return coerce, render, nil

	case reflect.Bool:
		coerce := func(s string) (reflect.Value, error) {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetBool(b)
			return v, nil
		}
		render := func(v reflect.Value) (string, error) {
			return strconv.FormatBool(v.Bool()), nil
		}
		return coerce, render, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		coerce := func(s string) (reflect.Value, error) {
			n, err := strconv.ParseInt(s, 10, bits)
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetInt(n)
			return v, nil
		}
		render := func(v reflect.Value) (string, error) {
			return strconv.FormatInt(v.Int(), 10), nil
		}
		return coerce, render, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits := t.Bits()
		coerce := func(s string) (reflect.Value, error) {
			n, err := strconv.ParseUint(s, 10, bits)
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetUint(n)
			return v, nil
		}
		render := func(v reflect.Value) (string, error) {
			return strconv.FormatUint(v.Uint(), 10), nil
		}
		return coerce, render, nil

	case reflect.Float32, reflect.Float64:
		bits := t.Bits()
		coerce := func(s string) (reflect.Value, error) {
			f, err := strconv.ParseFloat(s, bits)
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetFloat(f)
			return v, nil
		}
		render := func(v reflect.Value) (string, error) {
			return strconv.FormatFloat(v.Float(), 'g', -1, bits), nil
		}
		return coerce, render, nil

	default:
		return nil, nil, fmt.Errorf("type %s is not coercible from a string cell", t)
	}
}

func textCoercer(t reflect.Type) (coerceFunc, renderFunc, error) {
	coerce := func(s string) (reflect.Value, error) {
		pv := reflect.New(t)
		if err := pv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, err
		}
		return pv.Elem(), nil
	}
	render := func(v reflect.Value) (string, error) {
		// Copy to an addressable value so pointer-receiver marshalers work.
		pv := reflect.New(t)
		pv.Elem().Set(v)
		m, ok := pv.Interface().(encoding.TextMarshaler)
		if !ok {
			return "", fmt.Errorf("type %s does not implement encoding.TextMarshaler", t)
		}
		b, err := m.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return coerce, render, nil
}
