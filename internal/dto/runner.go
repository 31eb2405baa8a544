package dto

// RunReportDTO is the batch trigger's response body.
type RunReportDTO struct {
	OK         bool   `json:"ok"`
	Processed  int    `json:"processed"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
	Error      string `json:"error,omitempty"`
}
