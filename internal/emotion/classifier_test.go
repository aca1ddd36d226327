package emotion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mindwell/pkg/ai"
	"mindwell/pkg/domain"
)

type stubGenerator struct {
	text string
	err  error
	last ai.Request
}

func (s *stubGenerator) Generate(_ context.Context, req ai.Request) (string, error) {
	s.last = req
	return s.text, s.err
}

func userMsg(content string) domain.Message {
	return domain.Message{Role: domain.RoleUser, Content: content}
}

func assistantMsg(content string) domain.Message {
	return domain.Message{Role: domain.RoleAssistant, Content: content}
}

func TestKeywordClassifyText(t *testing.T) {
	cases := []struct {
		text string
		want domain.EmotionLabel
	}{
		{"I feel anxious about my exam", domain.EmotionAnxiety},
		{"everything makes me so sad lately", domain.EmotionSadness},
		{"I'm furious at my boss", domain.EmotionAnger},
		{"completely burned out from work", domain.EmotionBurnout},
		{"today was a great day", domain.EmotionPositive},
		{"the weather is cloudy", domain.EmotionNeutral},
		{"", domain.EmotionNeutral},
	}
	for _, tc := range cases {
		if got := ClassifyText(tc.text); got != tc.want {
			t.Errorf("ClassifyText(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestKeywordPriorityOrder(t *testing.T) {
	// Anxiety outranks Positive when both match.
	got := ClassifyText("I'm happy but so worried about tomorrow")
	if got != domain.EmotionAnxiety {
		t.Fatalf("priority order violated: got %s, want Anxiety", got)
	}
}

func TestKeywordClassifierUsesLatestUserMessage(t *testing.T) {
	window := []domain.Message{
		userMsg("I was so happy yesterday"),
		assistantMsg("that's wonderful"),
		userMsg("but today I'm exhausted and drained"),
	}
	label, intensity := KeywordClassifier{}.Classify(context.Background(), window)
	if label != domain.EmotionBurnout {
		t.Fatalf("label = %s, want Burnout", label)
	}
	if intensity != 1 {
		t.Fatalf("intensity = %d, want 1", intensity)
	}
}

func TestModelClassifierNormalizesResponse(t *testing.T) {
	gen := &stubGenerator{text: "anxiety.\nIntensity: 4"}
	c := NewModelClassifier(gen, 6)
	label, intensity := c.Classify(context.Background(), []domain.Message{userMsg("exams soon")})
	if label != domain.EmotionAnxiety {
		t.Fatalf("label = %s, want Anxiety", label)
	}
	if intensity != 4 {
		t.Fatalf("intensity = %d, want 4", intensity)
	}
	if gen.last.Temperature != 0 || gen.last.MaxTokens != 20 {
		t.Fatalf("unexpected sampling params: %+v", gen.last)
	}
}

func TestModelClassifierDegradesToNeutralOnFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("timeout")}
	c := NewModelClassifier(gen, 6)
	label, intensity := c.Classify(context.Background(), []domain.Message{userMsg("hello")})
	if label != domain.EmotionNeutral || intensity != 1 {
		t.Fatalf("got (%s, %d), want (Neutral, 1)", label, intensity)
	}
}

func TestModelClassifierUnrecognizedOutputIsNeutral(t *testing.T) {
	gen := &stubGenerator{text: "I cannot determine that"}
	c := NewModelClassifier(gen, 6)
	label, _ := c.Classify(context.Background(), []domain.Message{userMsg("hello")})
	if label != domain.EmotionNeutral {
		t.Fatalf("label = %s, want Neutral", label)
	}
}

func TestModelClassifierWindowsUserTurns(t *testing.T) {
	gen := &stubGenerator{text: "Neutral"}
	c := NewModelClassifier(gen, 2)
	window := []domain.Message{
		userMsg("one"),
		userMsg("two"),
		assistantMsg("reply"),
		userMsg("three"),
	}
	c.Classify(context.Background(), window)
	sent := gen.last.Messages[0].Content
	if strings.Contains(sent, "one") {
		t.Fatalf("oldest turn should be excluded, sent %q", sent)
	}
	if !strings.HasPrefix(sent, "two") || !strings.HasSuffix(sent, "three") {
		t.Fatalf("turns out of order: %q", sent)
	}
}

func TestParseIntensity(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"Anxiety\n3", 3},
		{"Sadness (intensity: 5)", 5},
		{"Positive", 1},
		{"Neutral\n9", 1},
		{"", 1},
	}
	for _, tc := range cases {
		if got := ParseIntensity(tc.raw); got != tc.want {
			t.Errorf("ParseIntensity(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestSentimentOfEntryFallsBackToKeywords(t *testing.T) {
	gen := &stubGenerator{err: errors.New("service down")}
	got := SentimentOfEntry(context.Background(), gen, "today was awful and stressful")
	if got != domain.SentimentNegative {
		t.Fatalf("fallback sentiment = %s, want Negative", got)
	}
}

func TestSentimentOfEntryUsesModel(t *testing.T) {
	gen := &stubGenerator{text: "Positive!"}
	got := SentimentOfEntry(context.Background(), gen, "wrote three pages")
	if got != domain.SentimentPositive {
		t.Fatalf("sentiment = %s, want Positive", got)
	}
}
