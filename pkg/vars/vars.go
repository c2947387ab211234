// Package vars builds the variable environment used for one apply.
//
// The environment is assembled once per apply and read everywhere: both
// condition evaluation and placeholder substitution resolve against the
// same set, so all variable references across all files of one apply are
// consistent.
package vars

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Env is the immutable key/value set for a single apply. The zero value
// is an empty environment.
type Env struct {
	values map[string]interface{}
}

// Build creates an environment from the project name and caller-supplied
// overrides. Derived name forms are computed first, then overrides are
// merged on top; overrides always win, including over the derived names.
func Build(projectName string, overrides map[string]interface{}) Env {
	values := map[string]interface{}{
		"project_name":             projectName,
		"project_name_pascal_case": ToPascalCase(projectName),
		"project_name_snake_case":  ToSnakeCase(projectName),
		"project_name_kebab_case":  ToKebabCase(projectName),
	}
	for k, v := range overrides {
		values[k] = v
	}
	return Env{values: values}
}

// Lookup returns the raw value for name.
func (e Env) Lookup(name string) (interface{}, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Has reports whether name is present in the environment.
func (e Env) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// String returns the string form of the value for name. Booleans render
// as true/false, numbers in their shortest decimal form.
func (e Env) String(name string) (string, bool) {
	v, ok := e.values[name]
	if !ok {
		return "", false
	}
	return Format(v), true
}

// Keys returns all variable names in sorted order.
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of variables in the environment.
func (e Env) Len() int {
	return len(e.values)
}

// Format renders a variable value as a string.
func Format(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

// ToPascalCase capitalizes the first letter of each alphanumeric run and
// drops the separators: "my-cool app" becomes "MyCoolApp".
func ToPascalCase(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToSnakeCase replaces dashes with underscores.
func ToSnakeCase(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// ToKebabCase replaces underscores with dashes.
func ToKebabCase(s string) string {
	return strings.ReplaceAll(s, "_", "-")
}
