package domain

// StageCount is the number of rows left after a filter stage ran.
type StageCount struct {
	Stage string `json:"stage"`
	Rows  int    `json:"rows"`
}

// Qualification is the outcome of running the filter pipeline once.
type Qualification struct {
	Ratios      Ratios
	StageCounts []StageCount
	Loans       RateSheet
}

type QualificationResult struct {
	RunID   string   `json:"run_id"`
	Ratios  Ratios   `json:"ratios"`
	Lenders []string `json:"lenders"`
	Count   int      `json:"count"`
}
