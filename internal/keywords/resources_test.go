package keywords

import (
	"errors"
	"testing"
)

func TestLoadResources(t *testing.T) {
	tests := []struct {
		name      string
		opts      ResourceOptions
		stopwords []string
		kept      []string
		wantErr   bool
	}{
		{
			name:      "defaults",
			stopwords: []string{"the", "and", "of", "don't", "wouldn"},
			kept:      []string{"running", "code"},
		},
		{
			name:      "extra stopwords are lowercased",
			opts:      ResourceOptions{ExtraStopwords: []string{" Wikipedia ", "EDIT"}},
			stopwords: []string{"wikipedia", "edit", "the"},
		},
		{
			name: "removed stopwords",
			opts: ResourceOptions{RemoveStopwords: []string{"Not"}},
			kept: []string{"not"},
		},
		{
			name:    "blank extra stopword",
			opts:    ResourceOptions{ExtraStopwords: []string{"  "}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := LoadResources(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadResources: %v", err)
			}
			for _, w := range tt.stopwords {
				if !res.IsStopword(w) {
					t.Errorf("IsStopword(%q) = false, want true", w)
				}
			}
			for _, w := range tt.kept {
				if res.IsStopword(w) {
					t.Errorf("IsStopword(%q) = true, want false", w)
				}
			}
		})
	}
}

func TestLoadResourcesEmptySet(t *testing.T) {
	_, err := LoadResources(ResourceOptions{RemoveStopwords: englishStopwords})
	if !errors.Is(err, ErrNoResources) {
		t.Errorf("error = %v, want ErrNoResources", err)
	}
}

func TestStopwordsSorted(t *testing.T) {
	res := NewResources([]string{"b", "A", "c"})
	got := res.Stopwords()
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Stopwords() = %q, want %q", got, want)
		}
	}
}
