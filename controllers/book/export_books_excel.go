package bookControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

// GET /admin/books/export-excel
func ExportBooksToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var books []models.Book
		if err := db.Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Books")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "Title", "Genre", "Publisher", "Authors", "Tags",
			"Price", "Sales", "AverageRating", "ReleaseDate",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, b := range books {
			row := sheet.AddRow()

			row.AddCell().SetValue(b.ID)
			row.AddCell().SetValue(b.Title)
			row.AddCell().SetValue(b.Genre)
			row.AddCell().SetValue(b.Publisher)
			row.AddCell().SetValue(strings.Join(b.Authors, ","))
			row.AddCell().SetValue(strings.Join(b.Tags, ","))
			row.AddCell().SetValue(b.Price)
			row.AddCell().SetValue(b.Sales)
			row.AddCell().SetValue(b.AverageRating)
			row.AddCell().SetValue(b.ReleaseDate.Format("2006-01-02"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=books.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
