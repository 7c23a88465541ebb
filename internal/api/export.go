package api

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/rollbook/attendance-back/internal/attendance"
	"github.com/rollbook/attendance-back/internal/auth"
	"github.com/rollbook/attendance-back/internal/export"
	"github.com/rollbook/attendance-back/internal/models"
)

// -------------------- DOWNLOAD REPORT --------------------

func DownloadSelectForm(c *gin.Context) {
	id := auth.MustIdentity(c)
	classes, err := auth.VisibleClasses(c.Request.Context(), id)
	if err != nil {
		fail(c, "listing classes", err)
		return
	}
	c.HTML(http.StatusOK, "download_select.html", gin.H{
		"Flashes": takeFlashes(c),
		"Classes": classes,
		"BackURL": backURL(id),
	})
}

func DownloadSelect(c *gin.Context) {
	target := "/download_csv"
	if c.PostForm("format") == "xlsx" {
		target = "/download_xlsx"
	}
	if classID := c.PostForm("class_id"); classID != "" {
		target += "?class_id=" + url.QueryEscape(classID)
	}
	c.Redirect(http.StatusFound, target)
}

func DownloadCSV(c *gin.Context) {
	rows, ok := exportRows(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="attendance_report.csv"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, rows); err != nil {
		// Headers are gone; all we can do is log.
		log.Println("writing csv:", err)
	}
}

func DownloadXLSX(c *gin.Context) {
	rows, ok := exportRows(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="attendance_report.xlsx"`)
	c.Status(http.StatusOK)
	if err := export.WriteXLSX(c.Writer, rows); err != nil {
		log.Println("writing xlsx:", err)
	}
}

// exportRows resolves the rows to export under the same visibility rules as
// the view page: a given class must be authorized, no class means everything
// the caller may see. Replies on failure and reports ok=false.
func exportRows(c *gin.Context) ([]models.AttendanceRow, bool) {
	id := auth.MustIdentity(c)
	ctx := c.Request.Context()

	selected := c.Query("class_id")
	if selected == "" {
		rows, err := attendance.QueryVisible(ctx, id)
		if err != nil {
			fail(c, "querying attendance", err)
			return nil, false
		}
		return rows, true
	}

	classID, ok := parseID(selected)
	if !ok {
		flash(c, "danger", "Invalid class.")
		c.Redirect(http.StatusFound, "/download_select")
		return nil, false
	}
	rows, err := attendance.Query(ctx, id, classID)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			forbidden(c)
			return nil, false
		}
		fail(c, "querying attendance", err)
		return nil, false
	}
	return rows, true
}
