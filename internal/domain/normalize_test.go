package domain

import "testing"

func TestCleanLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Cold War  ", want: "Cold War"},
		{name: "case preserved", input: "World War II", want: "World War II"},
		{name: "compress multiple spaces", input: "Moon   Landing", want: "Moon Landing"},
		{name: "tabs and newlines", input: "Fall of\tthe\n Berlin Wall", want: "Fall of the Berlin Wall"},
		{name: "diacritics preserved", input: "Côte d'Ivoire", want: "Côte d'Ivoire"},
		{name: "hyphens preserved", input: "Post-war", want: "Post-war"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanLabel(tt.input); got != tt.want {
				t.Errorf("CleanLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMakeTag_CleansLabels(t *testing.T) {
	t.Parallel()

	got := MakeTag(" Politics ", "Cold  War", "Fall of\tBerlin Wall", MustParseDate("1989-11-09"))
	if want := "Politics_Cold_War_Fall_of_Berlin_Wall_1989"; got != want {
		t.Errorf("MakeTag: got %q, want %q", got, want)
	}
}
