package formatter

import (
	"cs-balancer/models"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResultData holds prepared result data used by all formatters
type ResultData struct {
	WinnerID        int                   `json:"winner_id"`
	Unmatched       int                   `json:"unmatched"`
	CustomerSuccess []CustomerSuccessData `json:"customer_success"`
}

// CustomerSuccessData is the per-representative view of a run
type CustomerSuccessData struct {
	ID        int  `json:"id"`
	Score     int  `json:"score"`
	Customers int  `json:"customers"`
	Winner    bool `json:"winner,omitempty"`
}

// prepareResultData flattens a result for formatting. Representatives keep
// the pool order the balancer used.
func prepareResultData(result *models.Result) *ResultData {
	data := &ResultData{
		WinnerID:        result.WinnerID,
		Unmatched:       result.Unmatched,
		CustomerSuccess: make([]CustomerSuccessData, 0, len(result.Available)),
	}

	for _, cs := range result.Available {
		data.CustomerSuccess = append(data.CustomerSuccess, CustomerSuccessData{
			ID:        cs.ID,
			Score:     cs.Score,
			Customers: cs.CustomerCount,
			Winner:    result.WinnerID != 0 && cs.ID == result.WinnerID,
		})
	}
	return data
}

// FormatText returns the text representation of the result
func FormatText(result *models.Result) string {
	data := prepareResultData(result)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("winner=%d\n", data.WinnerID))

	for _, cs := range data.CustomerSuccess {
		line := fmt.Sprintf("cs=%d score=%d customers=%d", cs.ID, cs.Score, cs.Customers)
		if cs.Winner {
			line += " *"
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("unmatched=%d\n", data.Unmatched))
	return sb.String()
}

// FormatJSON returns the JSON representation of the result
func FormatJSON(result *models.Result) string {
	data := prepareResultData(result)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the result
func FormatCSV(result *models.Result) string {
	data := prepareResultData(result)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"CustomerSuccessID", "Score", "Customers", "Winner"})

	for _, cs := range data.CustomerSuccess {
		winner := "No"
		if cs.Winner {
			winner = "Yes"
		}
		writer.Write([]string{
			strconv.Itoa(cs.ID),
			strconv.Itoa(cs.Score),
			strconv.Itoa(cs.Customers),
			winner,
		})
	}

	writer.Flush()
	return sb.String()
}
