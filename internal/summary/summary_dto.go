package summary

type SummaryResponse struct {
	Subject   string `json:"subject"`
	SubjectID string `json:"subject_id"`
	Summary   string `json:"summary"`
	Cached    bool   `json:"cached"`
}
