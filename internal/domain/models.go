package domain

// Option is one answer to a question. Weights may omit streams (implicit 0)
// and may signal more than one stream at once.
type Option struct {
	Label   string         `json:"label" validate:"required"`
	Weights map[Stream]int `json:"weights" validate:"required,min=1,dive,keys,oneof=Engineering Medicine Arts Commerce IT,endkeys,gt=0"`
}

// Question is a single quiz step; its position in Quiz.Questions is its order.
type Question struct {
	ID      int      `json:"id" validate:"gt=0"`
	Text    string   `json:"text" validate:"required"`
	Options []Option `json:"options" validate:"required,min=1,dive"`
}

// Quiz is an ordered, immutable sequence of questions.
type Quiz struct {
	ID        string     `json:"id" validate:"required"`
	Questions []Question `json:"questions" validate:"required,min=1,unique=ID,dive"`
}

// ScoreBoard is the running per-stream tally. It always holds every stream.
type ScoreBoard map[Stream]int

// NewScoreBoard returns a board with every catalog stream at zero.
func NewScoreBoard() ScoreBoard {
	sb := make(ScoreBoard, len(streams))
	for _, s := range streams {
		sb[s] = 0
	}
	return sb
}

// Add accumulates weights element-wise. Streams outside the catalog are ignored.
func (sb ScoreBoard) Add(weights map[Stream]int) {
	for s, w := range weights {
		if !s.Valid() || w <= 0 {
			continue
		}
		sb[s] += w
	}
}

// Clone returns an independent copy.
func (sb ScoreBoard) Clone() ScoreBoard {
	out := make(ScoreBoard, len(sb))
	for s, v := range sb {
		out[s] = v
	}
	return out
}

// QuizState is a read-only snapshot of a quiz attempt.
type QuizState struct {
	QuizID         string         `json:"quizId"`
	Index          int            `json:"index"`
	Total          int            `json:"total"`
	Answered       int            `json:"answered"`
	Percent        int            `json:"percent"`
	Complete       bool           `json:"complete"`
	Selected       *int           `json:"selected"`
	Question       *Question      `json:"question,omitempty"`
	Scores         ScoreBoard     `json:"scores"`
	Recommendation Recommendation `json:"recommendation"`
}

// CatalogEntry is anything a stream filter can narrow.
type CatalogEntry interface {
	StreamTags() []Stream
}

// Course is a static course catalog record.
type Course struct {
	ID          int      `json:"id" validate:"gt=0"`
	Title       string   `json:"title" validate:"required"`
	Stream      Stream   `json:"stream" validate:"required,oneof=Engineering Medicine Arts Commerce IT"`
	Level       string   `json:"level" validate:"required,oneof=Undergraduate Diploma Certification"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Careers     []string `json:"careers"`
}

func (c Course) StreamTags() []Stream { return []Stream{c.Stream} }

// College is a static college directory record.
type College struct {
	ID      int      `json:"id" validate:"gt=0"`
	Name    string   `json:"name" validate:"required"`
	State   string   `json:"state" validate:"required"`
	Streams []Stream `json:"streams" validate:"required,min=1,dive,oneof=Engineering Medicine Arts Commerce IT"`
	Website string   `json:"website" validate:"omitempty,url"`
}

func (c College) StreamTags() []Stream { return c.Streams }
