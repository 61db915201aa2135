package urlencoded

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Options controls decoding.
type Options struct {
	// Extended enables bracket notation.
	Extended bool

	// Depth is the number of bracket segments decoded per key. Remaining
	// segments are kept as one literal key. Zero or less disables nesting.
	Depth int

	// ArrayLimit is the highest index that still produces an array element.
	ArrayLimit int
}

// CountParameters returns the number of key/value pairs body would be split
// into, counting empty pairs.
func CountParameters(body string) int {
	return strings.Count(body, "&") + 1
}

// Parse decodes body according to opts. It never fails: undecodable escape
// sequences are kept verbatim.
func Parse(body string, opts Options) map[string]any {
	if opts.Extended {
		return parseExtended(body, opts)
	}
	return parseSimple(body)
}

func parseSimple(body string) map[string]any {
	result := make(map[string]any)

	eachPair(body, false, func(key, value string) {
		existing, ok := result[key]
		if !ok {
			result[key] = value
			return
		}
		if list, isList := existing.([]any); isList {
			result[key] = append(list, value)
			return
		}
		result[key] = []any{existing, value}
	})

	return result
}

func parseExtended(body string, opts Options) map[string]any {
	var root any = make(map[string]any)

	eachPair(body, true, func(key, value string) {
		chain := splitKey(key, opts.Depth)
		root = merge(root, buildChain(chain, value, opts.ArrayLimit))
	})

	result, _ := compact(root).(map[string]any)
	return result
}

// eachPair splits body on '&' and '=' and decodes both halves. Pairs with an
// empty key are skipped.
func eachPair(body string, extended bool, fn func(key, value string)) {
	for _, part := range strings.Split(body, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue := splitPair(part, extended)
		key := decode(rawKey, extended)
		if key == "" {
			continue
		}
		fn(key, decode(rawValue, extended))
	}
}

// splitPair cuts part at its separator. In extended mode a "]=" takes
// precedence over the first '=', so bracketed keys may contain '='.
func splitPair(part string, extended bool) (string, string) {
	if extended {
		if i := strings.Index(part, "]="); i >= 0 {
			return part[:i+1], part[i+2:]
		}
	}
	key, value, _ := strings.Cut(part, "=")
	return key, value
}

// decode replaces '+' with a space and unescapes s. Malformed escapes keep s
// as is; in strict mode so do escapes that do not form valid UTF-8.
func decode(s string, strict bool) string {
	s = strings.ReplaceAll(s, "+", " ")
	decoded, err := url.PathUnescape(s)
	if err != nil || (strict && !utf8.ValidString(decoded)) {
		return s
	}
	return decoded
}

var bracketSegment = regexp.MustCompile(`\[[^\[\]]*\]`)

// splitKey turns "a[b][c]" into ["a", "[b]", "[c]"]. Segments past depth are
// joined into one final "[...]" segment.
func splitKey(key string, depth int) []string {
	if depth <= 0 {
		return []string{key}
	}

	matches := bracketSegment.FindAllStringIndex(key, -1)
	if len(matches) == 0 {
		return []string{key}
	}

	chain := make([]string, 0, len(matches)+1)
	if parent := key[:matches[0][0]]; parent != "" {
		chain = append(chain, parent)
	}

	for i, m := range matches {
		if i == depth {
			chain = append(chain, "["+key[m[0]:]+"]")
			break
		}
		chain = append(chain, key[m[0]:m[1]])
	}

	return chain
}

// buildChain nests value under the segments of chain, innermost first.
func buildChain(chain []string, value string, arrayLimit int) any {
	var leaf any = value

	for i := len(chain) - 1; i >= 0; i-- {
		segment := chain[i]

		if segment == "[]" {
			arr, ok := leaf.(*sparse)
			if !ok {
				arr = newSparse()
				arr.push(leaf)
			}
			leaf = arr
			continue
		}

		clean := segment
		bracketed := len(segment) >= 2 && segment[0] == '[' && segment[len(segment)-1] == ']'
		if bracketed {
			clean = segment[1 : len(segment)-1]
		}

		if index, ok := arrayIndex(clean, arrayLimit); ok && bracketed {
			arr := newSparse()
			arr.set(index, leaf)
			leaf = arr
			continue
		}

		leaf = map[string]any{clean: leaf}
	}

	return leaf
}

// arrayIndex reports whether s is a canonical non-negative integer not
// above limit.
func arrayIndex(s string, limit int) (int, bool) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 || index > limit || strconv.Itoa(index) != s {
		return 0, false
	}
	return index, true
}

// sparse is an array under construction. Indices may have holes until
// compact drops them.
type sparse struct {
	items  map[int]any
	length int
}

func newSparse() *sparse {
	return &sparse{items: make(map[int]any)}
}

func (a *sparse) push(v any) {
	a.items[a.length] = v
	a.length++
}

func (a *sparse) set(i int, v any) {
	a.items[i] = v
	if i >= a.length {
		a.length = i + 1
	}
}

func (a *sparse) indices() []int {
	keys := make([]int, 0, len(a.items))
	for i := range a.items {
		keys = append(keys, i)
	}
	sort.Ints(keys)
	return keys
}

func (a *sparse) toMap() map[string]any {
	m := make(map[string]any, len(a.items))
	for i, v := range a.items {
		m[strconv.Itoa(i)] = v
	}
	return m
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, *sparse:
		return true
	}
	return false
}

// merge folds source into target and returns the result, which may be a
// new value when target cannot hold source.
func merge(target, source any) any {
	if !isContainer(source) {
		switch t := target.(type) {
		case *sparse:
			t.push(source)
			return t
		case map[string]any:
			if key, ok := source.(string); ok {
				t[key] = true
			}
			return t
		default:
			arr := newSparse()
			arr.push(target)
			arr.push(source)
			return arr
		}
	}

	switch t := target.(type) {
	case map[string]any:
		mergeInto(t, source)
		return t
	case *sparse:
		src, ok := source.(*sparse)
		if !ok {
			m := t.toMap()
			mergeInto(m, source)
			return m
		}
		for _, i := range src.indices() {
			item := src.items[i]
			existing, has := t.items[i]
			switch {
			case !has:
				t.set(i, item)
			case isContainer(existing) && isContainer(item):
				t.items[i] = merge(existing, item)
			default:
				t.push(item)
			}
		}
		return t
	default:
		arr := newSparse()
		arr.push(target)
		if src, ok := source.(*sparse); ok {
			for _, i := range src.indices() {
				arr.set(i+1, src.items[i])
			}
			return arr
		}
		arr.push(source)
		return arr
	}
}

// mergeInto merges the entries of source, a map or sparse array, into m.
func mergeInto(m map[string]any, source any) {
	put := func(key string, value any) {
		if existing, ok := m[key]; ok {
			m[key] = merge(existing, value)
			return
		}
		m[key] = value
	}

	switch src := source.(type) {
	case map[string]any:
		for key, value := range src {
			put(key, value)
		}
	case *sparse:
		for _, i := range src.indices() {
			put(strconv.Itoa(i), src.items[i])
		}
	}
}

// compact replaces sparse arrays with dense []any, dropping holes.
func compact(v any) any {
	switch t := v.(type) {
	case *sparse:
		out := make([]any, 0, len(t.items))
		for _, i := range t.indices() {
			out = append(out, compact(t.items[i]))
		}
		return out
	case map[string]any:
		for key, value := range t {
			t[key] = compact(value)
		}
		return t
	default:
		return v
	}
}
