package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/nishantd01/grud/core/log"
	"github.com/nishantd01/grud/models"
)

const sheetName = "Sheet1"

// SheetHeader is the first row of an exported users table
var SheetHeader = []interface{}{"ID", "Name", "E-mail", "Website"}

// SheetExporter writes tables to new Google spreadsheets using a saved OAuth token
type SheetExporter struct {
	credentialsFile string
	tokenFile       string
}

func NewSheetExporter(credentialsFile, tokenFile string) *SheetExporter {
	return &SheetExporter{credentialsFile: credentialsFile, tokenFile: tokenFile}
}

// UsersToSheetData lays the users table out as header + one row per user
func UsersToSheetData(users []models.User) [][]interface{} {
	data := make([][]interface{}, 0, len(users)+1)
	data = append(data, SheetHeader)
	for _, u := range users {
		data = append(data, []interface{}{u.ID, u.Name, u.Email, u.Website})
	}
	return data
}

// Export creates a spreadsheet named title, writes data at A1 and bolds the
// header row. It returns the new spreadsheet id.
func (e *SheetExporter) Export(ctx context.Context, title string, data [][]interface{}) (string, error) {
	client, err := e.httpClient(ctx)
	if err != nil {
		return "", err
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", fmt.Errorf("unable to create Sheets service: %w", err)
	}

	spreadsheet, err := srv.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: sheetName, SheetId: 0}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	writeRange := fmt.Sprintf("'%s'!A1", sheetName)
	_, err = srv.Spreadsheets.Values.Update(spreadsheet.SpreadsheetId, writeRange, &sheets.ValueRange{
		Range:  writeRange,
		Values: data,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to write data to sheet: %w", err)
	}

	if len(data) > 0 {
		_, err = srv.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{headerFormatRequest(0, int64(len(data[0])))},
		}).Context(ctx).Do()
		if err != nil {
			// the data is already there, a plain header is fine
			log.Warn("⚠️ Failed to format header row", "spreadsheet_id", spreadsheet.SpreadsheetId, "error", err)
		}
	}

	log.Info("✅ Data written to spreadsheet", "spreadsheet_id", spreadsheet.SpreadsheetId, "rows", len(data))
	return spreadsheet.SpreadsheetId, nil
}

func SpreadsheetURL(spreadsheetID string) string {
	return "https://docs.google.com/spreadsheets/d/" + spreadsheetID
}

func headerFormatRequest(sheetID, numCols int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    0,
				EndRowIndex:      1,
				StartColumnIndex: 0,
				EndColumnIndex:   numCols,
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat:   &sheets.TextFormat{Bold: true},
					WrapStrategy: "WRAP",
				},
			},
			Fields: "userEnteredFormat.textFormat.bold,userEnteredFormat.wrapStrategy",
		},
	}
}

func (e *SheetExporter) httpClient(ctx context.Context) (*http.Client, error) {
	b, err := os.ReadFile(e.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, sheets.SpreadsheetsScope, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	tok, err := tokenFromFile(e.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("token not found, run the authorization code flow first: %w", err)
	}
	return config.Client(ctx, tok), nil
}

// Reads the OAuth token from a file
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn("Warning: failed to close file", "error", closeErr)
		}
	}()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}
