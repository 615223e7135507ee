package Controllers

import (
	"fmt"
	"log"
	"net/http"

	"MenteSana/Models"
	"MenteSana/Reimbursement"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

// ExportReimbursementsTable dumps the platform's reimbursement requests to
// a spreadsheet for back-office reconciliation.
func ExportReimbursementsTable(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	var requests []Models.ReimbursementRequest

	if input.DateFrom != "" && input.DateTo != "" {
		if err := Models.DB.Model(&Models.ReimbursementRequest{}).
			Where("created_at BETWEEN ? AND ?", input.DateFrom, input.DateTo).
			Find(&requests).Error; err != nil {
			c.JSON(http.StatusBadRequest, err)
			return
		}
	} else {
		if err := Models.DB.Model(&Models.ReimbursementRequest{}).Find(&requests).Error; err != nil {
			c.JSON(http.StatusBadRequest, err)
			return
		}
	}

	headers := map[string]string{
		"A1": "ID",
		"B1": "Period",
		"C1": "Health System",
		"D1": "Isapre",
		"E1": "Total",
		"F1": "Estimated",
		"G1": "Status",
		"H1": "Tracking",
	}
	file := excelize.NewFile()
	sheet := "Reimbursements"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(requests); i++ {
		appendRowReimbursement(sheet, file, i, requests)
	}
	var filename string = fmt.Sprintf("./Reimbursements.xlsx")
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowReimbursement(sheet string, file *excelize.File, index int, rows []Models.ReimbursementRequest) (fileWriter *excelize.File) {
	rowCount := index + 2
	row := rows[index]

	isapreName := ""
	if isapre, ok := Reimbursement.IsapreByCode(row.IsapreCode); ok {
		isapreName = isapre.Name
	}
	tracking := ""
	if row.TrackingNumber != nil {
		tracking = *row.TrackingNumber
	}

	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), row.ID)
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), Reimbursement.PeriodLabel(row.Month, row.Year))
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), row.HealthSystem)
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), isapreName)
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), row.TotalAmount)
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), row.EstimatedReimbursement)
	file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), row.Status)
	file.SetCellValue(sheet, fmt.Sprintf("H%v", rowCount), tracking)
	return file
}
