package search

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/hyperjump/humansearch/internal/models"
)

// compiledFilter is a SearchFilter with its pattern compiled once per query.
type compiledFilter struct {
	models.SearchFilter
	pattern *regexp.Regexp
	invalid bool
}

func compileFilters(filters []models.SearchFilter) []compiledFilter {
	out := make([]compiledFilter, 0, len(filters))
	for _, f := range filters {
		cf := compiledFilter{SearchFilter: f}
		switch f.Operator {
		case models.OpLike:
			s, ok := f.Value.(string)
			if !ok {
				cf.invalid = true
				break
			}
			cf.pattern, cf.invalid = compilePattern(likeToRegex(s))
		case models.OpRegex:
			s, ok := f.Value.(string)
			if !ok {
				cf.invalid = true
				break
			}
			cf.pattern, cf.invalid = compilePattern(s)
		}
		out = append(out, cf)
	}
	return out
}

func compilePattern(expr string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, true
	}
	return re, false
}

// likeToRegex translates SQL LIKE wildcards into an anchored regular expression.
func likeToRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

func applyFilters(results []*models.SearchResult, filters []compiledFilter) []*models.SearchResult {
	if len(filters) == 0 {
		return results
	}
	out := results[:0:0]
	for _, r := range results {
		if matchesAll(r.Data, filters) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(data map[string]interface{}, filters []compiledFilter) bool {
	for i := range filters {
		if !filters[i].matches(data) {
			return false
		}
	}
	return true
}

// lookup resolves a dotted field path through nested objects.
func lookup(data map[string]interface{}, path string) (interface{}, bool) {
	if v, ok := data[path]; ok {
		return v, true
	}
	parts := strings.Split(path, ".")
	var cur interface{} = data
	for _, p := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// matches evaluates the filter against a result's data. Type mismatches, unknown
// operators and invalid patterns evaluate to false.
func (f *compiledFilter) matches(data map[string]interface{}) bool {
	v, present := lookup(data, f.Field)
	switch f.Operator {
	case models.OpExists:
		return present
	case models.OpNotExists:
		return !present
	}
	if !present || f.invalid {
		return false
	}

	switch f.Operator {
	case models.OpEquals:
		return equalValues(v, f.Value)
	case models.OpNotEquals:
		return sameKind(v, f.Value) && !equalValues(v, f.Value)
	case models.OpGt, models.OpLt, models.OpGte, models.OpLte:
		a, ok1 := toFloat(v)
		b, ok2 := toFloat(f.Value)
		if !ok1 || !ok2 {
			return false
		}
		switch f.Operator {
		case models.OpGt:
			return a > b
		case models.OpLt:
			return a < b
		case models.OpGte:
			return a >= b
		default:
			return a <= b
		}
	case models.OpContains, models.OpStartsWith, models.OpEndsWith:
		s, ok1 := v.(string)
		sub, ok2 := f.Value.(string)
		if !ok1 || !ok2 {
			return false
		}
		switch f.Operator {
		case models.OpContains:
			return strings.Contains(s, sub)
		case models.OpStartsWith:
			return strings.HasPrefix(s, sub)
		default:
			return strings.HasSuffix(s, sub)
		}
	case models.OpIn, models.OpNotIn:
		set, ok := toSlice(f.Value)
		if !ok {
			return false
		}
		if f.Operator == models.OpIn {
			return memberOf(v, set)
		}
		return kindInSet(v, set) && !memberOf(v, set)
	case models.OpBetween:
		bounds, ok := toSlice(f.Value)
		if !ok || len(bounds) != 2 {
			return false
		}
		x, ok1 := toFloat(v)
		lo, ok2 := toFloat(bounds[0])
		hi, ok3 := toFloat(bounds[1])
		if !ok1 || !ok2 || !ok3 {
			return false
		}
		return x >= lo && x <= hi
	case models.OpLike, models.OpRegex:
		s, ok := v.(string)
		if !ok || f.pattern == nil {
			return false
		}
		return f.pattern.MatchString(s)
	default:
		return false
	}
}

// memberOf reports whether v, or any element of v when it is an array, is in set.
func memberOf(v interface{}, set []interface{}) bool {
	if arr, ok := toSlice(v); ok {
		for _, el := range arr {
			if memberOf(el, set) {
				return true
			}
		}
		return false
	}
	for _, s := range set {
		if equalValues(v, s) {
			return true
		}
	}
	return false
}

// sameKind reports whether a and b can be compared for equality: both numbers, both
// strings, both bools, both arrays or both objects.
func sameKind(a, b interface{}) bool {
	_, na := toFloat(a)
	_, nb := toFloat(b)
	if na || nb {
		return na && nb
	}
	switch a.(type) {
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	case nil:
		return false
	}
	_, sa := toSlice(a)
	_, sb := toSlice(b)
	if sa || sb {
		return sa && sb
	}
	if b == nil {
		return false
	}
	return reflect.ValueOf(a).Kind() == reflect.Map && reflect.ValueOf(b).Kind() == reflect.Map
}

// kindInSet reports whether set holds at least one element comparable with v, or with
// an element of v when v is an array.
func kindInSet(v interface{}, set []interface{}) bool {
	if arr, ok := toSlice(v); ok {
		for _, el := range arr {
			if kindInSet(el, set) {
				return true
			}
		}
		return false
	}
	for _, s := range set {
		if sameKind(v, s) {
			return true
		}
	}
	return false
}

// toSlice converts any slice or array value to []interface{}.
func toSlice(v interface{}) ([]interface{}, bool) {
	if s, ok := v.([]interface{}); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func equalValues(a, b interface{}) bool {
	fa, ok1 := toFloat(a)
	fb, ok2 := toFloat(b)
	if ok1 && ok2 {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
