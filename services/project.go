package services

import "handyhub/backend/models"

// Project flattens records into rows of cell text following the column list.
// The same function backs on-screen tables and file export, so both render
// identical cell values for identical input.
func Project(records []models.Record, columns []models.Column) [][]string {
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = col.Value(rec, i)
		}
		rows = append(rows, row)
	}
	return rows
}

// Headers returns the column headers in declaration order.
func Headers(columns []models.Column) []string {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	return headers
}
