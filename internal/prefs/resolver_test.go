package prefs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeStore is an in-memory Store with optional injected failures.
type fakeStore struct {
	records    map[string]*UserPreference
	touchErr   error
	setLangErr error
	touchCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*UserPreference)}
}

func (s *fakeStore) Touch(_ context.Context, identifier string) (UserPreference, error) {
	s.touchCalls++
	if s.touchErr != nil {
		return UserPreference{}, s.touchErr
	}
	rec, ok := s.records[identifier]
	if !ok {
		rec = &UserPreference{
			Identifier:   identifier,
			Language:     LanguagePending,
			MessageCount: 0,
			CreatedAt:    time.Now(),
		}
		s.records[identifier] = rec
	}
	rec.MessageCount++
	rec.LastUsedAt = time.Now()
	return *rec, nil
}

func (s *fakeStore) SetLanguage(_ context.Context, identifier string, lang Language) error {
	if s.setLangErr != nil {
		return s.setLangErr
	}
	s.records[identifier].Language = lang
	return nil
}

// ── Onboarding gate ──

func TestResolveNewUserGetsOnboarding(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store)

	disp := r.Resolve(context.Background(), "wa:111", "TCS")
	if _, ok := disp.(NeedsOnboarding); !ok {
		t.Fatalf("got %T, want NeedsOnboarding", disp)
	}
	if got := store.records["wa:111"].Language; got != LanguagePending {
		t.Errorf("stored language = %q, want pending", got)
	}
	if got := store.records["wa:111"].MessageCount; got != 1 {
		t.Errorf("message count = %d, want 1", got)
	}
}

// ── Language commands ──

func TestResolveLanguageCommands(t *testing.T) {
	cases := []struct {
		message string
		want    Language
	}{
		{"english", LanguageEnglish},
		{"ENG", LanguageEnglish},
		{"Hindi", LanguageHindi},
		{"hin", LanguageHindi},
		{"  gujarati  ", LanguageGujarati},
		{"GUJ", LanguageGujarati},
	}
	for _, tc := range cases {
		store := newFakeStore()
		r := NewResolver(store)

		disp := r.Resolve(context.Background(), "wa:222", tc.message)
		set, ok := disp.(LanguageSet)
		if !ok {
			t.Fatalf("Resolve(%q): got %T, want LanguageSet", tc.message, disp)
		}
		if set.Language != tc.want {
			t.Errorf("Resolve(%q): language = %q, want %q", tc.message, set.Language, tc.want)
		}
		if set.Confirmation == "" {
			t.Errorf("Resolve(%q): empty confirmation", tc.message)
		}
		if got := store.records["wa:222"].Language; got != tc.want {
			t.Errorf("Resolve(%q): stored = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestResolveReselectionWins(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store)
	ctx := context.Background()

	if _, ok := r.Resolve(ctx, "wa:333", "english").(LanguageSet); !ok {
		t.Fatal("first command: want LanguageSet")
	}
	if _, ok := r.Resolve(ctx, "wa:333", "hindi").(LanguageSet); !ok {
		t.Fatal("second command: want LanguageSet")
	}
	if got := store.records["wa:333"].Language; got != LanguageHindi {
		t.Errorf("stored = %q, want hindi (last explicit command wins)", got)
	}
}

func TestResolveCommandRequiresWholeMessage(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store)

	// "english please" is a query, not a command; user is still pending.
	disp := r.Resolve(context.Background(), "wa:444", "english please")
	if _, ok := disp.(NeedsOnboarding); !ok {
		t.Fatalf("got %T, want NeedsOnboarding (no partial command matching)", disp)
	}
	if got := store.records["wa:444"].Language; got != LanguagePending {
		t.Errorf("stored = %q, want pending", got)
	}
}

// ── Ready path ──

func TestResolveReadyCarriesLanguageAndQuery(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store)
	ctx := context.Background()

	r.Resolve(ctx, "wa:555", "english")
	disp := r.Resolve(ctx, "wa:555", "  Reliance TCS  ")

	ready, ok := disp.(Ready)
	if !ok {
		t.Fatalf("got %T, want Ready", disp)
	}
	if ready.Language != LanguageEnglish {
		t.Errorf("language = %q, want english", ready.Language)
	}
	if ready.Query != "Reliance TCS" {
		t.Errorf("query = %q, want trimmed original-case text", ready.Query)
	}
}

// ── Activity accounting ──

func TestResolveTouchesOnEveryCall(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store)
	ctx := context.Background()

	r.Resolve(ctx, "wa:666", "hindi")
	r.Resolve(ctx, "wa:666", "TCS")
	r.Resolve(ctx, "wa:666", "Infosys")

	if store.touchCalls != 3 {
		t.Errorf("touch calls = %d, want 3 (one per inbound message)", store.touchCalls)
	}
	if got := store.records["wa:666"].MessageCount; got != 3 {
		t.Errorf("message count = %d, want 3", got)
	}
}

// ── Degraded store ──

func TestResolveStoreFailureDegradesToOnboarding(t *testing.T) {
	store := newFakeStore()
	store.touchErr = errors.New("connection refused")
	r := NewResolver(store)

	disp := r.Resolve(context.Background(), "wa:777", "TCS")
	onboarding, ok := disp.(NeedsOnboarding)
	if !ok {
		t.Fatalf("got %T, want NeedsOnboarding on store failure", disp)
	}
	if !strings.Contains(onboarding.Prompt, "english") {
		t.Errorf("degraded prompt should still offer language choices: %q", onboarding.Prompt)
	}
}

func TestResolveSetLanguageFailureDegradesToOnboarding(t *testing.T) {
	store := newFakeStore()
	store.setLangErr = errors.New("connection reset")
	r := NewResolver(store)

	disp := r.Resolve(context.Background(), "wa:888", "hindi")
	if _, ok := disp.(NeedsOnboarding); !ok {
		t.Fatalf("got %T, want NeedsOnboarding when the write fails", disp)
	}
}
