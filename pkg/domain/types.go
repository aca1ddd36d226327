package domain

import "time"

// EmotionLabel is the closed taxonomy used for chat-derived mood records.
type EmotionLabel string

const (
	EmotionAnxiety  EmotionLabel = "Anxiety"
	EmotionSadness  EmotionLabel = "Sadness"
	EmotionAnger    EmotionLabel = "Anger"
	EmotionBurnout  EmotionLabel = "Burnout"
	EmotionPositive EmotionLabel = "Positive"
	EmotionNeutral  EmotionLabel = "Neutral"
)

// ChatEmotions lists the chat taxonomy in classification priority order.
var ChatEmotions = []EmotionLabel{
	EmotionAnxiety,
	EmotionSadness,
	EmotionAnger,
	EmotionBurnout,
	EmotionPositive,
	EmotionNeutral,
}

// Sentiment is the smaller taxonomy used for journal entries.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Sentiments lists the journal taxonomy in priority order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// MoodSource records which surface produced a mood record.
type MoodSource string

const (
	SourceChat    MoodSource = "chat"
	SourceJournal MoodSource = "journal"
	SourceCheckin MoodSource = "checkin"
)

type Message struct {
	ID        string      `json:"id"`
	ProfileID string      `json:"profileId"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

// MoodRecord couples label, score, and timestamp; the three are always
// created together in one append.
type MoodRecord struct {
	ID        string       `json:"id"`
	ProfileID string       `json:"profileId"`
	Label     EmotionLabel `json:"label"`
	Score     int          `json:"score"`
	Intensity int          `json:"intensity"`
	Source    MoodSource   `json:"source"`
	CreatedAt time.Time    `json:"createdAt"`
}

type JournalEntry struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profileId"`
	Content   string    `json:"content"`
	Sentiment Sentiment `json:"sentiment"`
	WordCount int       `json:"wordCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the aggregate root owning one conversation, one mood history,
// and one journal. The sanitized name is the external storage key.
type Profile struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	PassphraseHash string            `json:"-"`
	CheckinStreak  int               `json:"checkinStreak"`
	JournalStreak  int               `json:"journalStreak"`
	LastCheckin    time.Time         `json:"lastCheckin"`
	LastJournal    time.Time         `json:"lastJournal"`
	Preferences    map[string]string `json:"preferences,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// TurnKind tags the outcome of one processed user turn.
type TurnKind string

const (
	TurnBlocked TurnKind = "blocked"
	TurnReplied TurnKind = "replied"
)

// TurnOutcome is the result of running one inbound message through the
// safety gate, classification, and reply pipeline. Blocked turns carry the
// static crisis message and no mood record.
type TurnOutcome struct {
	Kind  TurnKind    `json:"kind"`
	Reply string      `json:"reply"`
	Mood  *MoodRecord `json:"mood,omitempty"`
}
