package models

// SearchResponse is the response for a connection search.
type SearchResponse struct {
	Query string `json:"query"`
	// Context is the "results for X" label; empty when the query names no company or person.
	Context   string        `json:"context,omitempty"`
	Results   []*Connection `json:"results"`
	Total     int           `json:"total"`
	QueryTime int64         `json:"query_time_ms"`
	// Fuzzy is set when candidates came from the typo-tolerant people index.
	Fuzzy bool `json:"fuzzy,omitempty"`
	// AutoFuzzy indicates the caller retried with fuzzy matching after an empty exact search.
	AutoFuzzy bool `json:"auto_fuzzy,omitempty"`
	// Suggestion is a spelling-corrected query, offered with fuzzy results.
	Suggestion string `json:"suggestion,omitempty"`
}

// WarmPathResponse lists ranked warm paths to one target.
type WarmPathResponse struct {
	TargetID string     `json:"target_id"`
	Target   *Person    `json:"target,omitempty"`
	Paths    []WarmPath `json:"paths"`
	Total    int        `json:"total"`
}

// IntroDraftResponse carries a generated intro message.
type IntroDraftResponse struct {
	Connector Person `json:"connector"`
	Target    Person `json:"target"`
	Draft     string `json:"draft"`
}

// SourceCounts is the number of people each connector contributes.
type SourceCounts struct {
	Email    int `json:"email"`
	Calendar int `json:"calendar"`
	Friends  int `json:"friends"`
}

// DatasetStats counts the records in a dataset.
type DatasetStats struct {
	People      int `json:"people"`
	Companies   int `json:"companies"`
	Emails      int `json:"emails"`
	Meetings    int `json:"meetings"`
	WorkHistory int `json:"work_history"`
}
