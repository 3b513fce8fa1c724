package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Query decodes a raw query string (without the leading '?') into the struct v.
//
// Fields are matched by the `query` tag, falling back to the lowercased field name;
// `query:"-"` skips a field. Slices accept repeated keys and comma-separated values,
// pointers mark optional fields.
//
//	type Search struct {
//		Q    string   `query:"q"`
//		Page int      `query:"page"`
//		Tags []string `query:"tags"` // ?tags=go&tags=web or ?tags=go,web
//	}
func Query(raw string, v any) error {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
	}
	return bindValues(v, "query", values, ErrFailedToParseQuery)
}

// Form decodes an application/x-www-form-urlencoded payload into the struct v
// using `form` tags.
func Form(data []byte, v any) error {
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
	}
	return bindValues(v, "form", values, ErrFailedToParseForm)
}

func bindValues(v any, tag string, values url.Values, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w: want pointer to struct, got %T", bindErr, ErrInvalidTarget, v)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		sf := rt.Field(i)
		name, skip := fieldName(sf, tag)
		if skip {
			continue
		}
		raw := values[name]
		if len(raw) == 0 {
			continue
		}
		if err := setField(field, raw); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

// fieldName returns the parameter name for sf, or skip for `tag:"-"`.
func fieldName(sf reflect.StructField, tag string) (name string, skip bool) {
	t := sf.Tag.Get(tag)
	switch t {
	case "":
		return strings.ToLower(sf.Name), false
	case "-":
		return "", true
	}
	name, _, _ = strings.Cut(t, ",")
	return name, false
}

func setField(field reflect.Value, raw []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), raw)
	case reflect.Slice:
		return setSlice(field, raw)
	}
	return setScalar(field, raw[0])
}

func setSlice(field reflect.Value, raw []string) error {
	var parts []string
	for _, r := range raw {
		for p := range strings.SplitSeq(r, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	}

	slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
	for i, p := range parts {
		if err := setField(slice.Index(i), []string{p}); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}

func setScalar(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(sanitizeString(value))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}

// parseBool accepts the strconv forms plus the common HTML checkbox spellings.
func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}
