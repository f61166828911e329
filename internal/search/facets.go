package search

import (
	"fmt"
	"sort"

	"github.com/hyperjump/humansearch/internal/models"
)

// facets counts distinct scalar data values per field over the given results.
// Arrays and objects are not counted.
func facets(results []*models.SearchResult) map[string][]models.FacetValue {
	type bucket struct {
		value interface{}
		count int
	}
	counts := make(map[string]map[string]*bucket)
	for _, r := range results {
		for field, v := range r.Data {
			switch v.(type) {
			case string, bool, float64, float32, int, int32, int64, uint, uint64:
			default:
				continue
			}
			byValue, ok := counts[field]
			if !ok {
				byValue = make(map[string]*bucket)
				counts[field] = byValue
			}
			key := fmt.Sprintf("%T:%v", v, v)
			b, ok := byValue[key]
			if !ok {
				b = &bucket{value: v}
				byValue[key] = b
			}
			b.count++
		}
	}

	out := make(map[string][]models.FacetValue, len(counts))
	for field, byValue := range counts {
		values := make([]models.FacetValue, 0, len(byValue))
		for _, b := range byValue {
			values = append(values, models.FacetValue{Value: b.value, Count: b.count})
		}
		sort.Slice(values, func(i, j int) bool {
			if values[i].Count != values[j].Count {
				return values[i].Count > values[j].Count
			}
			return fmt.Sprint(values[i].Value) < fmt.Sprint(values[j].Value)
		})
		out[field] = values
	}
	return out
}
