package rpc

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Transformer encodes procedure inputs and outputs.
type Transformer interface {
	Serialize(v any) (json.RawMessage, error)
	Deserialize(data []byte, v any) error
}

// JSONTransformer is plain encoding/json.
type JSONTransformer struct{}

func (JSONTransformer) Serialize(v any) (json.RawMessage, error) { return json.Marshal(v) }

func (JSONTransformer) Deserialize(data []byte, v any) error { return json.Unmarshal(data, v) }

// Type annotations recorded in the meta object.
const (
	TypeDate   = "Date"
	TypeBigInt = "bigint"
)

// DateLayout is the timestamp format of [TypeDate] values: UTC with
// millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z"

var (
	timeType      = reflect.TypeFor[time.Time]()
	bigIntType    = reflect.TypeFor[big.Int]()
	marshalerType = reflect.TypeFor[json.Marshaler]()
	textKeyType   = reflect.TypeFor[encoding.TextMarshaler]()
)

// StructuredTransformer wraps values in a {"json": …, "meta": {"values": …}}
// envelope. The json member is the plain JSON encoding with time.Time
// rendered as [DateLayout] strings and big.Int as decimal strings; meta maps
// the dotted path of every such value to its type annotation so the other
// side can restore it. A value annotated at the root is described by a bare
// annotation array instead of a path map.
//
// Struct fields follow encoding/json rules for names, "-" and omitempty.
type StructuredTransformer struct{}

type envelope struct {
	JSON json.RawMessage `json:"json"`
	Meta *envelopeMeta   `json:"meta,omitempty"`
}

type envelopeMeta struct {
	Values json.RawMessage `json:"values"`
}

// Serialize implements [Transformer].
func (StructuredTransformer) Serialize(v any) (json.RawMessage, error) {
	w := &walker{annotations: map[string]string{}}
	tree, err := w.walk(reflect.ValueOf(v), nil)
	if err != nil {
		return nil, err
	}

	plain, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("error serializing value: %w", err)
	}

	env := envelope{JSON: plain}
	if len(w.annotations) > 0 {
		values, err := w.values()
		if err != nil {
			return nil, err
		}
		env.Meta = &envelopeMeta{Values: values}
	}

	return json.Marshal(env)
}

// Deserialize implements [Transformer].
func (StructuredTransformer) Deserialize(data []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("error decoding envelope: %w", err)
	}
	if len(env.JSON) == 0 {
		env.JSON = json.RawMessage("null")
	}
	if env.Meta == nil || len(env.Meta.Values) == 0 {
		return json.Unmarshal(env.JSON, v)
	}

	annotations, err := parseAnnotations(env.Meta.Values)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(env.JSON))
	dec.UseNumber()
	var tree any
	if err = dec.Decode(&tree); err != nil {
		return fmt.Errorf("error decoding json member: %w", err)
	}

	for path, annotation := range annotations {
		tree, err = restore(tree, splitPath(path), annotation)
		if err != nil {
			return fmt.Errorf("path %q: %w", path, err)
		}
	}

	restored, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return json.Unmarshal(restored, v)
}

type walker struct {
	annotations map[string]string
}

func (w *walker) annotate(path []string, annotation string) {
	w.annotations[joinPath(path)] = annotation
}

func (w *walker) values() (json.RawMessage, error) {
	if annotation, ok := w.annotations[""]; ok && len(w.annotations) == 1 {
		return json.Marshal([]string{annotation})
	}

	values := make(map[string][]string, len(w.annotations))
	for path, annotation := range w.annotations {
		values[path] = []string{annotation}
	}
	return json.Marshal(values)
}

func (w *walker) walk(v reflect.Value, path []string) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	switch v.Type() {
	case timeType:
		w.annotate(path, TypeDate)
		return v.Interface().(time.Time).UTC().Format(DateLayout), nil
	case bigIntType:
		x := v.Interface().(big.Int)
		w.annotate(path, TypeBigInt)
		return x.String(), nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return w.walk(v.Elem(), path)
	}

	if v.Type().Implements(marshalerType) {
		return remarshal(v.Interface().(json.Marshaler))
	}
	if v.CanAddr() && v.Addr().Type().Implements(marshalerType) {
		return remarshal(v.Addr().Interface().(json.Marshaler))
	}

	switch v.Kind() {
	case reflect.Struct:
		return w.walkStruct(v, path)
	case reflect.Map:
		return w.walkMap(v, path)
	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return base64.StdEncoding.EncodeToString(v.Bytes()), nil
		}
		return w.walkList(v, path)
	case reflect.Array:
		return w.walkList(v, path)
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, &json.UnsupportedTypeError{Type: v.Type()}
	default:
		return v.Interface(), nil
	}
}

func (w *walker) walkStruct(v reflect.Value, path []string) (any, error) {
	out := make(map[string]any)
	if err := w.collectFields(v, path, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *walker) collectFields(v reflect.Value, path []string, out map[string]any) error {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := v.Field(i)

		if field.Anonymous && name == "" {
			if !field.IsExported() {
				continue
			}
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				ft, fv = ft.Elem(), fv.Elem()
			}
			if ft.Kind() == reflect.Struct && ft != timeType && ft != bigIntType {
				if err := w.collectFields(fv, path, out); err != nil {
					return err
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if strings.Contains(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}

		val, err := w.walk(fv, append(path[:len(path):len(path)], name))
		if err != nil {
			return err
		}
		out[name] = val
	}
	return nil
}

func (w *walker) walkMap(v reflect.Value, path []string) (any, error) {
	if v.IsNil() {
		return nil, nil
	}

	out := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := mapKey(iter.Key())
		if err != nil {
			return nil, err
		}
		val, err := w.walk(iter.Value(), append(path[:len(path):len(path)], key))
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}

func (w *walker) walkList(v reflect.Value, path []string) (any, error) {
	out := make([]any, v.Len())
	for i := range v.Len() {
		val, err := w.walk(v.Index(i), append(path[:len(path):len(path)], strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if k.Type().Implements(textKeyType) {
		b, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		return string(b), err
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", &json.UnsupportedTypeError{Type: k.Type()}
}

func remarshal(m json.Marshaler) (any, error) {
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err = dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

func parseAnnotations(raw json.RawMessage) (map[string]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var root []string
		if err := json.Unmarshal(raw, &root); err != nil || len(root) == 0 {
			return nil, errors.New("malformed root annotation")
		}
		return map[string]string{"": root[0]}, nil
	}

	var byPath map[string][]string
	if err := json.Unmarshal(raw, &byPath); err != nil {
		return nil, fmt.Errorf("malformed annotations: %w", err)
	}

	out := make(map[string]string, len(byPath))
	for path, annotation := range byPath {
		if len(annotation) == 0 {
			return nil, fmt.Errorf("empty annotation at %q", path)
		}
		out[path] = annotation[0]
	}
	return out, nil
}

// restore rewrites the annotated value at path into the form encoding/json
// decodes into the matching Go type.
func restore(node any, path []string, annotation string) (any, error) {
	if len(path) == 0 {
		return restoreValue(node, annotation)
	}

	switch n := node.(type) {
	case map[string]any:
		child, ok := n[path[0]]
		if !ok {
			return nil, errors.New("annotated path not found")
		}
		restored, err := restore(child, path[1:], annotation)
		if err != nil {
			return nil, err
		}
		n[path[0]] = restored
		return n, nil
	case []any:
		i, err := strconv.Atoi(path[0])
		if err != nil || i < 0 || i >= len(n) {
			return nil, errors.New("annotated index out of range")
		}
		restored, err := restore(n[i], path[1:], annotation)
		if err != nil {
			return nil, err
		}
		n[i] = restored
		return n, nil
	}
	return nil, errors.New("annotated path not found")
}

func restoreValue(v any, annotation string) (any, error) {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%s value must be a string", annotation)
	}

	switch annotation {
	case TypeDate:
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		return t.UTC().Format(time.RFC3339Nano), nil
	case TypeBigInt:
		if _, ok := new(big.Int).SetString(s, 10); !ok {
			return nil, fmt.Errorf("invalid bigint %q", s)
		}
		return json.Number(s), nil
	}
	return nil, fmt.Errorf("unsupported type annotation %q", annotation)
}

func joinPath(path []string) string {
	escaped := make([]string, len(path))
	for i, p := range path {
		escaped[i] = strings.ReplaceAll(p, ".", `\.`)
	}
	return strings.Join(escaped, ".")
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(path); i++ {
		switch {
		case path[i] == '\\' && i+1 < len(path) && path[i+1] == '.':
			cur.WriteByte('.')
			i++
		case path[i] == '.':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(path[i])
		}
	}
	return append(parts, cur.String())
}
