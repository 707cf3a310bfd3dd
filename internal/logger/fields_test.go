package logger

import "testing"

func TestStringFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields []StringField
		expect int
	}{
		{
			name:   "drops empty keys",
			fields: []StringField{{Key: "", Value: "value"}},
			expect: 0,
		},
		{
			name:   "drops empty values",
			fields: []StringField{{Key: "company", Value: "   "}},
			expect: 0,
		},
		{
			name: "keeps populated fields",
			fields: []StringField{
				{Key: "job_title", Value: "junior developer"},
				{Key: "company", Value: "acme"},
			},
			expect: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StringFields(tt.fields...); len(got) != tt.expect {
				t.Fatalf("expected %d fields, got %d", tt.expect, len(got))
			}
		})
	}
}

func TestWithJobFieldsNilLogger(t *testing.T) {
	t.Parallel()

	if WithJobFields(nil, "title", "company", "fp") == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
