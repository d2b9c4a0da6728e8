package gemini

import "testing"

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"prose around", `Sure! {"a":{"b":2}} hope that helps {"c":3}`, `{"a":{"b":2}}`, true},
		{"brace in string", `{"a":"}{"}`, `{"a":"}{"}`, true},
		{"escaped quote", `{"a":"say \"}\" ok"}`, `{"a":"say \"}\" ok"}`, true},
		{"unbalanced outer", `{"a":{"b":1}`, `{"b":1}`, true},
		{"stray leading brace", `{{}`, `{}`, true},
		{"quoted brace before object", `"{" {"a":1}`, `{"a":1}`, true},
		{"stray brace in prose", `use { then {"a":1}`, `{"a":1}`, true},
		{"never closes", `{"a":{"b":1`, "", false},
		{"none", `no json here`, "", false},
		{"closing first", `} {"a":1}`, `{"a":1}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("ExtractJSONObject(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}
