package category

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "Lifestyle", want: true},
		{name: "Content", want: true},
		{name: "lifestyle", want: false},
		{name: "", want: false},
		{name: "Travel", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.name); got != tt.want {
				t.Fatalf("Valid(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDefaultIsListedFirst(t *testing.T) {
	if len(All) == 0 || All[0] != Default {
		t.Fatalf("All[0] = %v, want %q", All, Default)
	}
}
