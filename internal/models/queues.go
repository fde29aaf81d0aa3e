package models

// Queues are produced fresh per request and never stored.
type Queues struct {
	Unseen     []Vocabulary `json:"unseen"`
	Review     []Vocabulary `json:"review"`
	Practice   []Vocabulary `json:"practice"`
	NearFuture []Vocabulary `json:"near_future"`
}

// EmptyQueues returns queues with non-nil empty slices so they encode as [].
func EmptyQueues() Queues {
	return Queues{
		Unseen:     []Vocabulary{},
		Review:     []Vocabulary{},
		Practice:   []Vocabulary{},
		NearFuture: []Vocabulary{},
	}
}

type DeckMetrics struct {
	Unseen        int `json:"unseen"`
	Leeches       int `json:"leeches"`
	Learning      int `json:"learning"`
	Strengthening int `json:"strengthening"`
	Consolidating int `json:"consolidating"`
	Mastered      int `json:"mastered"`
}

func (m DeckMetrics) Total() int {
	return m.Unseen + m.Leeches + m.Learning + m.Strengthening + m.Consolidating + m.Mastered
}

type HeatmapCell struct {
	WordID int64  `json:"word_id"`
	Term   string `json:"term"`
	Bucket string `json:"bucket"`
}

type Heatmap struct {
	Cells             []HeatmapCell `json:"cells"`
	TotalWords        int           `json:"total_words"`
	WordsWithProgress int           `json:"words_with_progress"`
}
