package accuracy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// slot pairs a page field-map slot with its serialized name, which doubles
// as the flattened key prefix.
type slot struct {
	name   string
	fields document.FieldMap
}

// pageSlots lists a page's field maps in serialization order.
func pageSlots(p *document.StructuredPage) []slot {
	if p == nil {
		return nil
	}
	return []slot{
		{"form_fields", p.FormFields},
		{"signatures", p.Signatures},
		{"part_b", p.PartB},
		{"tables", p.Tables},
		{"third_party_payment_form", p.ThirdParty},
	}
}

// flattenPage merges a page's field maps into one flat map. Nested maps and
// slices contribute underscore-joined key paths; slice elements use their
// index. Nil leaves survive flattening so an explicit absence stays
// comparable.
func flattenPage(p *document.StructuredPage) map[string]any {
	flat := make(map[string]any)
	for _, s := range pageSlots(p) {
		if s.fields == nil {
			continue
		}
		flattenInto(flat, s.name, s.fields)
	}
	return flat
}

func flattenInto(flat map[string]any, prefix string, value any) {
	switch v := value.(type) {
	case document.FieldMap:
		flattenMap(flat, prefix, v)
	case map[string]any:
		flattenMap(flat, prefix, v)
	case []document.FieldMap:
		for i, item := range v {
			flattenInto(flat, prefix+"_"+strconv.Itoa(i), item)
		}
	case []any:
		for i, item := range v {
			flattenInto(flat, prefix+"_"+strconv.Itoa(i), item)
		}
	default:
		flat[prefix] = v
	}
}

func flattenMap(flat map[string]any, prefix string, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		flattenInto(flat, prefix+"_"+k, m[k])
	}
}

// render converts a leaf value to its comparison string. Booleans render
// lowercase, numbers without formatting artifacts, nil as the empty string.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// normalize is the lenient comparison form: trimmed, case-folded, newlines
// flattened to single spaces.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
