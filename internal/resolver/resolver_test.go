package resolver

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

type fakeVanityResolver struct {
	names map[string]uint64
	calls int
}

func (f *fakeVanityResolver) ResolveVanityURL(_ context.Context, vanity string) (uint64, error) {
	f.calls++
	return f.names[vanity], nil
}

func TestResolveDirectForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint64
	}{
		{"bare id", "76561197960287930", 76561197960287930},
		{"profiles url", "https://steamcommunity.com/profiles/76561197960287930", 76561197960287930},
		{"profiles url no scheme", "steamcommunity.com/profiles/76561197960287930", 76561197960287930},
		{"profiles url www", "http://www.steamcommunity.com/profiles/76561197960287930", 76561197960287930},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steam := &fakeVanityResolver{}
			r := newResolver(steam, zerolog.Nop())

			got, err := r.Resolve(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %d, want %d", tt.input, got, tt.want)
			}
			if steam.calls != 0 {
				t.Errorf("Resolve(%q) made %d network calls, want 0", tt.input, steam.calls)
			}
		})
	}
}

func TestResolveVanityForms(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		vanity string
	}{
		{"id url", "https://steamcommunity.com/id/someVanityName", "someVanityName"},
		{"id url no scheme", "steamcommunity.com/id/gabe", "gabe"},
		{"plain name", "gabe", "gabe"},
		{"sixteen digits fall back to vanity", "7656119796028793", "7656119796028793"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steam := &fakeVanityResolver{names: map[string]uint64{tt.vanity: 42}}
			r := newResolver(steam, zerolog.Nop())

			got, err := r.Resolve(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.input, err)
			}
			if got != 42 {
				t.Errorf("Resolve(%q) = %d, want 42", tt.input, got)
			}
			if steam.calls != 1 {
				t.Errorf("Resolve(%q) made %d vanity calls, want 1", tt.input, steam.calls)
			}
		})
	}
}

func TestResolveUnresolvableVanity(t *testing.T) {
	steam := &fakeVanityResolver{}
	r := newResolver(steam, zerolog.Nop())

	got, err := r.Resolve(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != 0 {
		t.Errorf("Resolve(unknown vanity) = %d, want 0", got)
	}
}
