package domain

// Columns is the fixed header of the analysis spreadsheet, in sheet order.
// The first column is an unnamed index. New rows populate only SubjectColumn.
var Columns = []string{
	"",
	"Technical Service ( as in PD)",
	"Team Name (as in PD)",
	"Api Name",
	"Service Path",
	"CMDB ID",
	"tech-svc",
	"team name",
	"Prime Manager",
	"Prime Director",
	"Prime VP",
	"MSE",
	"Next_Hop_Service_ID",
	"Next_Hop_Process_Group",
	"Next_Hop_Endpoint",
	"Analysis_Status",
	"Analysis_Timestamp",
	"Next_Hop_Service_Code",
	"Enrichment_Status",
	"team_name",
}

// SubjectColumn is the header of the only column populated on append.
const SubjectColumn = "Api Name"

// RowRecord is one spreadsheet row keyed by header name. Cells with no
// textual value map to the empty string, never to a missing key.
type RowRecord map[string]string

// UpdateRequest is the payload emitted when a wizard session resolves the
// spreadsheet-update sub-state, and the body of the append endpoint.
type UpdateRequest struct {
	// ServiceName is optional; empty means the user submitted no name.
	ServiceName string `json:"serviceName,omitempty"`
	// Exists records whether the service was found in the directory.
	Exists    bool   `json:"exists"`
	TeamName  string `json:"teamName,omitempty"`
	ServiceID string `json:"serviceId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
