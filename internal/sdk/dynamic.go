package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/robotops/ro1mon/internal/errors"
)

// maxWalkDepth bounds the method-graph walk. The client graph is two
// levels deep today; the headroom covers future API groups.
const maxWalkDepth = 4

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Discover enumerates the callable dotted method paths on the client,
// e.g. "status" or "routine_editor.variables.load". Paths use snake_case
// segments, the form the call command accepts.
func Discover(c *Client) []string {
	var paths []string
	walk(reflect.ValueOf(c), "", 0, &paths)
	sort.Strings(paths)
	return paths
}

func walk(v reflect.Value, prefix string, depth int, paths *[]string) {
	if depth > maxWalkDepth {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		seg := toSnake(t.Method(i).Name)
		path := seg
		if prefix != "" {
			path = prefix + "." + seg
		}

		// v.Method binds the receiver, so the signature below has no
		// receiver parameter.
		m := v.Method(i)
		if isGroup(m.Type()) {
			walk(m.Call(nil)[0], path, depth+1, paths)
			continue
		}
		if isCallable(m.Type()) {
			*paths = append(*paths, path)
		}
	}
}

// isGroup matches accessor methods that return an API group: no inputs,
// a single pointer-to-struct result. Signatures are receiver-bound.
func isGroup(t reflect.Type) bool {
	if t.NumIn() != 0 || t.NumOut() != 1 {
		return false
	}
	out := t.Out(0)
	return out.Kind() == reflect.Ptr && out.Elem().Kind() == reflect.Struct
}

// isCallable matches API operations: context first, error last.
func isCallable(t reflect.Type) bool {
	if t.NumIn() < 1 || t.NumOut() == 0 {
		return false
	}
	return t.In(0).Implements(ctxType) && t.Out(t.NumOut()-1).Implements(errType)
}

// Invoke resolves a dotted snake_case path against the client's method
// graph and calls it. String arguments are coerced into the method's
// parameter types best-effort: JSON first, then raw string.
func Invoke(ctx context.Context, c *Client, path string, args []string) (any, error) {
	if path == "" {
		return nil, errors.New(errors.ErrSDK, "Empty method path", "Pass a path like 'routine_editor.variables.load'.")
	}

	segs := strings.Split(path, ".")
	v := reflect.ValueOf(c)

	for i, seg := range segs {
		name := toCamel(seg)
		m := v.MethodByName(name)
		if !m.IsValid() {
			return nil, errors.New(errors.ErrSDK,
				fmt.Sprintf("Unknown method path segment '%s' in '%s'", seg, path),
				"Run 'ro1mon call --list' to see the callable paths.")
		}

		last := i == len(segs)-1
		if !last {
			if !isGroup(m.Type()) {
				return nil, errors.New(errors.ErrSDK,
					fmt.Sprintf("'%s' is not an API group - it can't have sub-paths", seg),
					"Shorten the path or run 'ro1mon call --list'.")
			}
			v = m.Call(nil)[0]
			continue
		}

		if !isCallable(m.Type()) {
			return nil, errors.New(errors.ErrSDK,
				fmt.Sprintf("'%s' is an API group, not an operation", path),
				"Append an operation, like '"+path+".load'.")
		}
		return call(ctx, m, path, args)
	}

	// Unreachable: the loop always returns on the last segment.
	return nil, errors.New(errors.ErrSDK, "Empty method path", "Pass a path like 'routine_editor.variables.load'.")
}

func call(ctx context.Context, m reflect.Value, path string, args []string) (any, error) {
	t := m.Type()
	want := t.NumIn() - 1 // minus ctx
	if len(args) != want {
		return nil, errors.New(errors.ErrSDK,
			fmt.Sprintf("'%s' takes %d argument(s), got %d", path, want, len(args)),
			"Pass arguments as JSON literals, like 42 or '\"name\"'.")
	}

	in := make([]reflect.Value, 0, t.NumIn())
	in = append(in, reflect.ValueOf(ctx))
	for i, arg := range args {
		pt := t.In(i + 1)
		val, err := coerce(arg, pt)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrSDK,
				fmt.Sprintf("Argument %d of '%s' doesn't fit type %s", i+1, path, pt),
				"Pass JSON matching the parameter type.")
		}
		in = append(in, val)
	}

	out := m.Call(in)
	if errVal := out[len(out)-1]; !errVal.IsNil() {
		return nil, errVal.Interface().(error)
	}
	if len(out) == 1 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// coerce turns a string argument into a value of the target type.
// JSON decoding handles numbers, booleans, quoted strings, and object
// literals; a bare word falls back to a plain string where one fits.
func coerce(arg string, t reflect.Type) (reflect.Value, error) {
	ptr := reflect.New(t)
	if err := json.Unmarshal([]byte(arg), ptr.Interface()); err == nil {
		return ptr.Elem(), nil
	}

	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(arg).Convert(t), nil
	case reflect.Interface:
		return reflect.ValueOf(arg), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot parse %q as %s", arg, t)
}

// toCamel converts a snake_case path segment to the Go method name:
// "routine_editor" -> "RoutineEditor".
func toCamel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// toSnake converts a Go method name to a snake_case path segment:
// "RoutineEditor" -> "routine_editor".
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
