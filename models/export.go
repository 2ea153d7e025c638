package models

type ExportRequest struct {
	Title string `json:"title"`
}

type ExportResponse struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	URL           string `json:"url"`
	Rows          int    `json:"rows"`
}
