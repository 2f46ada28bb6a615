package configparser

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// ParseEnvironment fills cfg (a pointer to a struct) from environment
// variables using `env` tags, falling back to `default` tags. Nested
// structs are walked recursively.
func ParseEnvironment(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("config must be a non-nil pointer to a struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("config must point to a struct")
	}

	return parseStruct(v)
}

func parseStruct(v reflect.Value) error {
	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		value := v.Field(i)

		if !value.CanSet() {
			continue
		}

		// Recurse into nested config sections (but not into time.Duration etc.)
		if value.Kind() == reflect.Struct && field.Tag.Get("env") == "" {
			if err := parseStruct(value); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		raw := os.Getenv(envName)
		if raw == "" {
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := setValue(value, raw); err != nil {
			return fmt.Errorf("field %s (%s): %w", field.Name, envName, err)
		}
	}

	return nil
}

func setValue(value reflect.Value, raw string) error {
	// time.Duration shares the int64 kind, handle it before the generic case
	if value.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		value.SetInt(int64(d))
		return nil
	}

	switch value.Kind() {
	case reflect.String:
		value.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		value.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		value.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		value.SetUint(n)
	default:
		return fmt.Errorf("unsupported config field kind %s", value.Kind())
	}

	return nil
}
