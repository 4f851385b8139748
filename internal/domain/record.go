package domain

// Chunk is a bounded-size text unit cut from one source document. Chunks are
// immutable once produced; each ingestion run yields a fresh set.
type Chunk struct {
	SourceRef string
	Index     int
	Text      string
}

// IndexedRecord is the (vector, text, metadata) triple pushed to a vector
// index namespace. Metadata is an open mapping, empty by default.
type IndexedRecord struct {
	Vector   []float32
	Text     string
	Metadata map[string]string
}

// SearchResult is one ranked hit from a vector-index search. Ranking comes
// from the index contract (highest similarity first) and is never re-derived.
type SearchResult struct {
	Text  string
	Score float32
}

// Message roles for completion conversations. Order is semantically
// meaningful: the system message comes first.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged turn of a completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
