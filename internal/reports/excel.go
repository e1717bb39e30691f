package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02 15:04:05"

// TicketsWorkbook renders tickets as an .xlsx file, one row per ticket.
func TicketsWorkbook(tickets []models.Ticket) ([]byte, error) {
	header := []interface{}{"ID", "User", "Raffle", "Selected numbers", "Quantity", "Price", "Total", "Purchased at"}
	rows := make([][]interface{}, 0, len(tickets))
	for _, t := range tickets {
		username, raffleName := "", ""
		if t.User != nil {
			username = t.User.Username
		}
		if t.Raffle != nil {
			raffleName = t.Raffle.Name
		}
		total := t.Price.Mul(decimalFromInt(t.Quantity))
		rows = append(rows, []interface{}{
			t.ID,
			username,
			raffleName,
			joinNumbers(t.SelectedNumbers),
			t.Quantity,
			t.Price.InexactFloat64(),
			total.InexactFloat64(),
			formatTime(t.CreatedAt),
		})
	}
	return buildWorkbook("Tickets", header, rows)
}

// TransactionsWorkbook renders the ledger as an .xlsx file.
func TransactionsWorkbook(transactions []models.Transaction) ([]byte, error) {
	header := []interface{}{"ID", "User", "Type", "Amount", "Description", "Created at"}
	rows := make([][]interface{}, 0, len(transactions))
	for _, tx := range transactions {
		username := ""
		if tx.User != nil {
			username = tx.User.Username
		}
		rows = append(rows, []interface{}{
			tx.ID,
			username,
			tx.Type,
			tx.Amount.InexactFloat64(),
			tx.Description,
			formatTime(tx.CreatedAt),
		})
	}
	return buildWorkbook("Transactions", header, rows)
}

func buildWorkbook(sheet string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(header))
		_ = f.SetCellStyle(sheet, "A1", lastCol+"1", style)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
