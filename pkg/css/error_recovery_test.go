package css

import "testing"

// TestErrorRecovery_InvalidSelectors verifies that rules with invalid selectors
// are silently skipped while valid rules are still parsed.
func TestErrorRecovery_InvalidSelectors(t *testing.T) {
	tests := []struct {
		name          string
		css           string
		expectedRules int
		description   string
	}{
		{
			name:          "selector starting with closing brace",
			css:           `} { color: red; } p { color: blue; }`,
			expectedRules: 1,
			description:   "rule with } selector skipped, p rule kept",
		},
		{
			name:          "selector starting with semicolon",
			css:           `{; color: red; } p { color: blue; }`,
			expectedRules: 1,
			description:   "rule with {; selector skipped, p rule kept",
		},
		{
			name:          "unbalanced bracket in selector",
			css:           `[} { color: red; } p { color: green; }`,
			expectedRules: 1,
			description:   "rule with [} selector skipped, p rule kept",
		},
		{
			name:          "empty selector",
			css:           ` { color: red; } p { color: blue; }`,
			expectedRules: 1,
			description:   "rule with empty selector skipped",
		},
		{
			name:          "valid rules survive among invalid ones",
			css:           `body { color: red; } [} { bad: true; } h1 { font-size: 20px; }`,
			expectedRules: 2,
			description:   "body and h1 rules kept, invalid one skipped",
		},
		{
			name:          "comma lists are not understood",
			css:           `h1, h2 { color: red; } p { color: blue; }`,
			expectedRules: 1,
			description:   "grouped selector dropped, p rule kept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(ParseStylesheet(tt.css)); got != tt.expectedRules {
				t.Errorf("%s: got %d rules, want %d", tt.description, got, tt.expectedRules)
			}
		})
	}
}

// TestErrorRecovery_UnknownAtRules verifies that at-rules are skipped without
// losing the rules that follow them.
func TestErrorRecovery_UnknownAtRules(t *testing.T) {
	rules := ParseStylesheet(`@three-dee { body { color: red; } } p { color: blue; }`)
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(rules))
	}
	if rules[0].Selector.String() != "p" {
		t.Errorf("expected the p rule to survive, got %s", rules[0].Selector)
	}
}

// TestErrorRecovery_InvalidDeclarations verifies that a broken declaration
// only drops itself.
func TestErrorRecovery_InvalidDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		css   string
		want  map[string]string
	}{
		{
			name: "missing colon",
			css:  `p { color red; font-weight: bold; }`,
			want: map[string]string{"font-weight": "bold"},
		},
		{
			name: "missing value",
			css:  `p { color: ; font-weight: bold; }`,
			want: map[string]string{"font-weight": "bold"},
		},
		{
			name: "garbage between declarations",
			css:  `p { color: red; @@@; width: 10px; }`,
			want: map[string]string{"color": "red", "width": "10px"},
		},
		{
			name: "last declaration without semicolon",
			css:  `p { color: red; width: 10px }`,
			want: map[string]string{"color": "red", "width": "10px"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := ParseStylesheet(tt.css)
			if len(rules) != 1 {
				t.Fatalf("got %d rules, want 1", len(rules))
			}
			got := rules[0].Declarations
			if len(got) != len(tt.want) {
				t.Errorf("got %d declarations %+v, want %d", len(got), got, len(tt.want))
			}
			for property, value := range tt.want {
				if got[property].Value != value {
					t.Errorf("%s: got %q, want %q", property, got[property].Value, value)
				}
			}
		})
	}
}

func TestErrorRecovery_NeverPanics(t *testing.T) {
	inputs := []string{"", "{", "}", ";;;", "p {", "p { color", "p { color:", "p { color: red", "/*", "!!!", "p{}}}}{{{"}
	for _, input := range inputs {
		_ = ParseStylesheet(input)
		_ = ParseDeclarations(input)
	}
}
