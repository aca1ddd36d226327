package store

import (
	"fmt"
	"testing"
	"time"

	"mindwell/pkg/domain"
)

func seedProfile(t *testing.T, s Store, name string) domain.Profile {
	t.Helper()
	p := domain.Profile{
		ID:        "id-" + SanitizeKey(name),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.SaveProfile(p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	return p
}

func TestMemoryStoreProfileLookup(t *testing.T) {
	s := NewMemoryStore()
	p := seedProfile(t, s, "Alice Smith")

	got, ok, err := s.GetProfileByName("alice smith")
	if err != nil || !ok {
		t.Fatalf("lookup by name: ok=%v err=%v", ok, err)
	}
	if got.ID != p.ID {
		t.Fatalf("unexpected profile %q", got.ID)
	}
	if got.Name != "alice-smith" {
		t.Fatalf("name not sanitized: %q", got.Name)
	}

	if _, ok, _ := s.GetProfileByName("nobody"); ok {
		t.Fatal("expected miss for unknown name")
	}
}

func TestMemoryStoreMoodAppendKeepsTriplesTogether(t *testing.T) {
	s := NewMemoryStore()
	p := seedProfile(t, s, "bob")

	for i := 0; i < 5; i++ {
		rec := domain.MoodRecord{
			ID:        fmt.Sprintf("m%d", i),
			Label:     domain.EmotionPositive,
			Score:     1,
			Intensity: 1,
			Source:    domain.SourceChat,
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := s.AppendMoodRecord(p.ID, rec); err != nil {
			t.Fatalf("append mood: %v", err)
		}
	}

	records, err := s.ListMoodRecords(p.ID, 0)
	if err != nil {
		t.Fatalf("list moods: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("len = %d, want 5", len(records))
	}
	for i, r := range records {
		if r.Label == "" || r.CreatedAt.IsZero() {
			t.Fatalf("record %d missing label or date: %+v", i, r)
		}
		if r.ID != fmt.Sprintf("m%d", i) {
			t.Fatalf("records out of order at %d: %q", i, r.ID)
		}
	}
}

func TestMemoryStoreListMoodRecordsRenormalizesLabels(t *testing.T) {
	s := NewMemoryStore()
	p := seedProfile(t, s, "carol")
	if err := s.AppendMoodRecord(p.ID, domain.MoodRecord{
		ID:        "m1",
		Label:     domain.EmotionLabel("Positive."),
		Score:     1,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, err := s.ListMoodRecords(p.ID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if records[0].Label != domain.EmotionPositive {
		t.Fatalf("label = %q, want Positive", records[0].Label)
	}
}

func TestMemoryStoreMessagesWindowAndClear(t *testing.T) {
	s := NewMemoryStore()
	p := seedProfile(t, s, "dave")

	for i := 0; i < 10; i++ {
		msg := domain.Message{
			ID:        fmt.Sprintf("msg%d", i),
			Role:      domain.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: time.Now().UTC(),
		}
		if err := s.AppendMessage(p.ID, msg); err != nil {
			t.Fatalf("append message: %v", err)
		}
	}

	window, err := s.ListMessages(p.ID, 3)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(window) != 3 {
		t.Fatalf("window len = %d, want 3", len(window))
	}
	if window[0].ID != "msg7" || window[2].ID != "msg9" {
		t.Fatalf("window not most-recent-in-order: %q..%q", window[0].ID, window[2].ID)
	}

	if err := s.ClearMessages(p.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	remaining, _ := s.ListMessages(p.ID, 0)
	if len(remaining) != 0 {
		t.Fatalf("expected empty log after clear, got %d", len(remaining))
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice Smith", "alice-smith"},
		{"bob@example.com", "bob-example-com"},
		{"  Already_ok-123  ", "already_ok-123"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := SanitizeKey(tc.in); got != tc.want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
