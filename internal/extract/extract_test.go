package extract

import (
	"testing"

	"github.com/MeKo-Tech/claimlens/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return New(config.DefaultFormConfig())
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9/5/2023", "09/05/2023"},
		{"07/09/23", "07/09/2023"},
		{"12/31/1999", "12/31/1999"},
		{"1/1/24", "01/01/2024"},
		{" 9/5/2023 ", "09/05/2023"},
		{"July 8th", "July 8th"},   // not date-shaped, unchanged
		{"9/5", "9/5"},             // malformed, unchanged
		{"09/05/2023", "09/05/2023"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDate(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	for _, in := range []string{"9/5/2023", "07/09/23", "garbage", "12/1/2020"} {
		once := NormalizeDate(in)
		assert.Equal(t, once, NormalizeDate(once))
	}
}

func TestValidZIP(t *testing.T) {
	e := newTestExtractor(t)

	// The issuer's header ZIP is always rejected, context or not.
	assert.False(t, e.ValidZIP("48333"))
	assert.False(t, e.ValidZIP("48333-2005"))
	assert.False(t, e.ValidZIP("2005"))
	assert.False(t, e.ValidZIP(""))

	assert.True(t, e.ValidZIP("01890"))
	assert.True(t, e.ValidZIP("10001"))
}

func TestValidPhone(t *testing.T) {
	e := newTestExtractor(t)

	assert.False(t, e.ValidPhone("123456"))   // six digits: page artifact
	assert.False(t, e.ValidPhone("3"))
	assert.False(t, e.ValidPhone("12-34-5"))
	assert.True(t, e.ValidPhone("1234567"))
	assert.True(t, e.ValidPhone("617-555-0199"))
}

func TestValidPolicyNumber(t *testing.T) {
	e := newTestExtractor(t)

	assert.False(t, e.ValidPolicyNumber("123456"))
	assert.True(t, e.ValidPolicyNumber("2455493"))
	assert.True(t, e.ValidPolicyNumber("245549351"))
}

func TestClean(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"  value  ", "value", true},
		{"a   b\n c", "a b c", true},
		{"__value._", "value", true},
		{"none", "", false},
		{"N/A", "", false},
		{"Unspecified", "", false},
		{"   ", "", false},
		{"_._", "", false},
		{"user@example.com", "user@example.com", true}, // inner periods survive
	}
	for _, tt := range tests {
		got, ok := e.clean(tt.in)
		require.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestIsChecked(t *testing.T) {
	e := newTestExtractor(t)

	assert.True(t, e.IsChecked("Travel Delay X", "Travel Delay"))
	assert.True(t, e.IsChecked("Travel DelayX", "Travel Delay"))
	assert.True(t, e.IsChecked("Travel Delay ✓", "Travel Delay"))
	assert.True(t, e.IsChecked("travel delay x more text", "Travel Delay"))

	assert.False(t, e.IsChecked("Travel Delay", "Travel Delay"))
	assert.False(t, e.IsChecked("Travel Delay unchecked", "Travel Delay"))
	assert.False(t, e.IsChecked("", "Travel Delay"))
}

func TestApplyRuleFallbackOrder(t *testing.T) {
	e := newTestExtractor(t)

	rule := FieldRule{
		Key: "field",
		Strategies: []Strategy{
			{Name: "primary", Scan: func(string) string { return "none" }}, // sentinel: rejected by clean
			{Name: "fallback", Scan: func(string) string { return "value" }},
		},
	}
	assert.Equal(t, "value", e.applyRule(rule, "text"))

	// Total failure yields nil, never "".
	empty := FieldRule{Key: "field", Strategies: []Strategy{
		{Name: "primary", Scan: func(string) string { return "" }},
	}}
	assert.Nil(t, e.applyRule(empty, "text"))

	// A validator rejection falls through like a miss.
	rejected := FieldRule{
		Key: "field",
		Strategies: []Strategy{
			{Name: "primary", Scan: func(string) string { return "48333" }},
			{Name: "fallback", Scan: func(string) string { return "01890" }},
		},
		Validate: e.ValidZIP,
	}
	assert.Equal(t, "01890", e.applyRule(rejected, "text"))
}
