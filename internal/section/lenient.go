package section

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// decodeLenient 在严格解码失败时按目标类型修正字段后重试。
// Numbers and booleans become text where text is expected. A field that still
// does not fit is dropped on its own, the rest of the payload survives.
func decodeLenient[T Content](raw []byte) Content {
	var zero T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var loose any
	if err := dec.Decode(&loose); err != nil {
		return zero
	}

	shaped, ok := coerce(loose, reflect.TypeFor[T]())
	if !ok {
		return zero
	}
	fixed, err := json.Marshal(shaped)
	if err != nil {
		return zero
	}
	var v T
	if err := json.Unmarshal(fixed, &v); err != nil {
		return zero
	}
	return v
}

// coerce reshapes a loosely decoded JSON value to fit target. ok is false
// when v cannot be made to fit.
func coerce(v any, target reflect.Type) (any, bool) {
	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}
	if v == nil {
		return nil, true
	}

	switch target.Kind() {
	case reflect.String:
		switch x := v.(type) {
		case string:
			return x, true
		case json.Number:
			return x.String(), true
		case bool:
			return strconv.FormatBool(x), true
		}
	case reflect.Bool:
		switch x := v.(type) {
		case bool:
			return x, true
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
				return b, true
			}
		}
	case reflect.Slice:
		list, ok := v.([]any)
		if !ok {
			return nil, false
		}
		out := make([]any, 0, len(list))
		for _, el := range list {
			if fitted, ok := coerce(el, target.Elem()); ok {
				out = append(out, fitted)
			}
		}
		return out, true
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		out := make(map[string]any, len(obj))
		for i := range target.NumField() {
			field := target.Field(i)
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				continue
			}
			value, exists := obj[name]
			if !exists {
				continue
			}
			if fitted, ok := coerce(value, field.Type); ok {
				out[name] = fitted
			}
		}
		return out, true
	}
	return nil, false
}
