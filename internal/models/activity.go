package models

// DailySummary rows are keyed by user and UTC date (YYYY-MM-DD).
type DailySummary struct {
	UserID          string `db:"user_id" json:"user_id"`
	Date            string `db:"date" json:"date"`
	ReviewsDone     int    `db:"reviews_done" json:"reviews_done"`
	NewWordsLearned int    `db:"new_words_learned" json:"new_words_learned"`
}

type ActivityDay struct {
	Date      string `json:"date"`
	Review    int    `json:"review"`
	Discovery int    `json:"discovery"`
	Total     int    `json:"total"`
}

type ActivitySummary struct {
	Today      int           `json:"today"`
	Last7Days  int           `json:"last_7_days"`
	Last30Days int           `json:"last_30_days"`
	Streak     int           `json:"streak"`
	Series     []ActivityDay `json:"series"`
}
