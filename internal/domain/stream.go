package domain

import "github.com/goccy/go-json"

// Stream is one of the fixed academic streams the quiz recommends toward.
type Stream string

const (
	Engineering Stream = "Engineering"
	Medicine    Stream = "Medicine"
	Arts        Stream = "Arts"
	Commerce    Stream = "Commerce"
	IT          Stream = "IT"
)

// AllStreams is the selector value meaning "no stream filter".
const AllStreams = "All"

// streams is the catalog in declaration order; ties resolve to the earliest entry.
var streams = []Stream{Engineering, Medicine, Arts, Commerce, IT}

// Streams returns the stream catalog in declaration order.
func Streams() []Stream {
	out := make([]Stream, len(streams))
	copy(out, streams)
	return out
}

// ParseStream maps raw onto the closed stream catalog. Matching is exact.
func ParseStream(raw string) (Stream, bool) {
	for _, s := range streams {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// Valid reports whether s is a member of the catalog.
func (s Stream) Valid() bool {
	_, ok := ParseStream(string(s))
	return ok
}

// Recommendation is either a single stream or none. The zero value is none.
type Recommendation struct {
	stream Stream
}

// NoRecommendation is the absent recommendation.
var NoRecommendation = Recommendation{}

// Recommend wraps s; a stream outside the catalog yields NoRecommendation.
func Recommend(s Stream) Recommendation {
	if !s.Valid() {
		return NoRecommendation
	}
	return Recommendation{stream: s}
}

// Stream returns the recommended stream and whether one is present.
func (r Recommendation) Stream() (Stream, bool) {
	return r.stream, r.stream != ""
}

// IsNone reports whether no stream is recommended.
func (r Recommendation) IsNone() bool {
	return r.stream == ""
}

func (r Recommendation) String() string {
	if r.IsNone() {
		return "none"
	}
	return string(r.stream)
}

// MarshalJSON encodes none as null and a stream as its tag.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	if r.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal(string(r.stream))
}

// UnmarshalJSON decodes a stream tag; null or any non-catalog value decodes to none.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*r = NoRecommendation
		return nil
	}
	s, _ := ParseStream(*raw)
	*r = Recommend(s)
	return nil
}
