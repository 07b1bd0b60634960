package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"Food", CategoryFood, true},
		{"Transport", CategoryTransport, true},
		{"Shopping", CategoryShopping, true},
		{"Bills", CategoryBills, true},
		{"Entertainment", CategoryEntertainment, true},
		{"Other", CategoryOther, true},
		{"food", Category("food"), false},
		{"", Category(""), false},
		{"Travel", Category("Travel"), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseCategory(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	list := Categories()
	if len(list) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(list))
	}
	list[0] = "Mutated"
	if Categories()[0] != CategoryFood {
		t.Error("Categories() must not expose the internal slice")
	}
}
