package lossy

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/etnz/debedit/deb822"
)

// ErrMissingField is wrapped by the *FieldError returned when a required
// field is absent.
var ErrMissingField = errors.New("missing field")

// FieldError reports the deb822 field a value failed to convert for.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("field %s: %v", e.Field, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

// fieldInfo is a struct field mapped to a deb822 field.
type fieldInfo struct {
	index     int
	key       string
	required  bool
	omitempty bool
	comma     bool
}

// fieldsOf reads the deb822 tags of struct type t. The tag is the field name,
// followed by options: "required", "omitempty" and "comma". Without a name
// the Go field name is used; "-" skips the field.
func fieldsOf(t reflect.Type) ([]fieldInfo, error) {
	var fs []fieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("deb822")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}
		if !deb822.ValidKey(name) {
			return nil, fmt.Errorf("lossy: %s.%s: invalid field name %q", t, sf.Name, name)
		}
		f := fieldInfo{index: i, key: name}
		for _, o := range strings.Split(opts, ",") {
			switch o {
			case "":
			case "required":
				f.required = true
			case "omitempty":
				f.omitempty = true
			case "comma":
				f.comma = true
			default:
				return nil, fmt.Errorf("lossy: %s.%s: unknown tag option %q", t, sf.Name, o)
			}
		}
		fs = append(fs, f)
	}
	return fs, nil
}

// Unmarshal stores the fields of p in the struct v points to.
//
// Strings are stored verbatim, booleans read "yes" or "no", integers are
// decimal, and []string values are split on whitespace, or on commas with
// the "comma" option. Pointers are allocated when their field is present.
// Types implementing encoding.TextUnmarshaler decode themselves. A missing
// field leaves the struct field untouched unless it is "required".
func Unmarshal(p Paragraph, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("lossy: Unmarshal needs a non-nil pointer to a struct, got %T", v)
	}
	rv = rv.Elem()
	fs, err := fieldsOf(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range fs {
		s, ok := p.Get(f.key)
		if !ok {
			if f.required {
				return &FieldError{Field: f.key, Err: ErrMissingField}
			}
			continue
		}
		if err := decode(rv.Field(f.index), s, f.comma); err != nil {
			return &FieldError{Field: f.key, Err: err}
		}
	}
	return nil
}

// UnmarshalAll decodes every paragraph of d into a T.
func UnmarshalAll[T any](d Document) ([]T, error) {
	ts := make([]T, len(d))
	for i, p := range d {
		if err := Unmarshal(p, &ts[i]); err != nil {
			return nil, fmt.Errorf("paragraph %d: %w", i, err)
		}
	}
	return ts, nil
}

func decode(v reflect.Value, s string, comma bool) error {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		if u, ok := v.Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(s))
		}
		return decode(v.Elem(), s, comma)
	}
	if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(s))
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		switch s {
		case "yes":
			v.SetBool(true)
		case "no":
			v.SetBool(false)
		default:
			return fmt.Errorf("%q is neither yes nor no", s)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported type %s", v.Type())
		}
		items := split(s, comma)
		sl := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, it := range items {
			sl.Index(i).SetString(it)
		}
		v.Set(sl)
	default:
		return fmt.Errorf("unsupported type %s", v.Type())
	}
	return nil
}

func split(s string, comma bool) []string {
	if !comma {
		return strings.Fields(s)
	}
	var items []string
	for _, it := range strings.Split(s, ",") {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	return items
}

// Marshal builds a paragraph from the struct v, or the struct v points to,
// with the conventions of Unmarshal. Fields appear in struct order. Nil
// pointers are left out, as are empty values tagged "omitempty".
func Marshal(v any) (Paragraph, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Paragraph{}, fmt.Errorf("lossy: Marshal needs a struct, got %T", v)
	}
	// Work on an addressable copy, for pointer-receiver MarshalText methods.
	c := reflect.New(rv.Type()).Elem()
	c.Set(rv)
	fs, err := fieldsOf(c.Type())
	if err != nil {
		return Paragraph{}, err
	}
	var p Paragraph
	for _, f := range fs {
		fv := c.Field(f.index)
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		if f.omitempty && isEmpty(fv) {
			continue
		}
		s, err := encode(fv, f.comma)
		if err != nil {
			return Paragraph{}, &FieldError{Field: f.key, Err: err}
		}
		p.Fields = append(p.Fields, Field{Key: f.key, Value: s})
	}
	return p, nil
}

func encode(v reflect.Value, comma bool) (string, error) {
	if v.Kind() == reflect.Pointer {
		if m, ok := v.Interface().(encoding.TextMarshaler); ok {
			b, err := m.MarshalText()
			return string(b), err
		}
		return encode(v.Elem(), comma)
	}
	if m, ok := v.Addr().Interface().(encoding.TextMarshaler); ok {
		b, err := m.MarshalText()
		return string(b), err
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		if v.Bool() {
			return "yes", nil
		}
		return "no", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return "", fmt.Errorf("unsupported type %s", v.Type())
		}
		items := make([]string, v.Len())
		for i := range items {
			items[i] = v.Index(i).String()
		}
		if comma {
			return strings.Join(items, ", "), nil
		}
		return strings.Join(items, " "), nil
	}
	return "", fmt.Errorf("unsupported type %s", v.Type())
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return v.Len() == 0
	}
	return v.IsZero()
}
