package adminController

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

// GET /admin/transactions/export-excel
func ExportTransactionsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var transactions []models.Transaction
		if err := db.Preload("User").Preload("Items").
			Order("created_at DESC").
			Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Transactions")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{"Ref", "UserEmail", "Books", "Price", "Status", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, t := range transactions {
			row := sheet.AddRow()

			row.AddCell().SetValue(t.Ref)
			row.AddCell().SetValue(t.User.Email)

			var titles []string
			for _, item := range t.Items {
				titles = append(titles, item.BookTitle)
			}
			row.AddCell().SetValue(strings.Join(titles, ", "))

			row.AddCell().SetValue(t.Price)
			row.AddCell().SetValue(string(t.Status))
			row.AddCell().SetValue(t.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=transactions.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
