package models

// ReportRequest is the body of POST /api/reports: raw input lines plus the
// window size and empty window policy.
type ReportRequest struct {
	WindowSize        int      `json:"window_size" validate:"required,gte=1,lte=100000"`
	Actual            []string `json:"actual" validate:"required"`
	Predicted         []string `json:"predicted"`
	EmptyWindowPolicy string   `json:"empty_window_policy" default:"fail" validate:"oneof=fail null"`
}

// ReportResponse is the data of a successful POST /api/reports.
type ReportResponse = ReportSummary
