package handlers

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pousada do Mar", "pousada-do-mar"},
		{"  Casa & Cia  ", "casa-cia"},
		{"Chalés Aconchego!", "chal-s-aconchego"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyShortNamesGetSuffix(t *testing.T) {
	got := slugify("Ab")
	if len(got) < 3 {
		t.Errorf("slugify short name produced %q, want a padded slug", got)
	}
}
