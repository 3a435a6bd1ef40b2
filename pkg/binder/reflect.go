package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindValues copies values into the struct pointed to by v using tagName
// to resolve parameter names. Missing parameters leave the zero value.
func bindValues(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidTarget)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidTarget)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, skip := parseFieldTag(sf, tagName)
		if skip {
			continue
		}

		fieldValues, ok := values[name]
		if !ok && sf.Type.Kind() == reflect.Slice {
			fieldValues, ok = values[name+"[]"]
		}
		if !ok || len(fieldValues) == 0 {
			continue
		}

		if err := setField(field, sf.Type, fieldValues); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func parseFieldTag(sf reflect.StructField, tagName string) (string, bool) {
	tag := sf.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(sf.Name), false
	case "-":
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, name == ""
}

func setField(field reflect.Value, t reflect.Type, values []string) error {
	if t.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(t.Elem()))
		}
		return setField(field.Elem(), t.Elem(), values)
	}

	if t.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(t, len(values), len(values))
		for i, s := range values {
			if err := setScalar(slice.Index(i), t.Elem(), s); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	return setScalar(field, t, values[0])
}

func setScalar(field reflect.Value, t reflect.Type, s string) error {
	switch t.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Bool:
		switch strings.ToLower(s) {
		case "on", "yes", "1", "true":
			field.SetBool(true)
		case "off", "no", "0", "false", "":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool value %q", s)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", s)
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported type %s", t.Kind())
	}
	return nil
}
