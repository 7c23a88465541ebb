package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rollbook/attendance-back/internal/attendance"
	"github.com/rollbook/attendance-back/internal/auth"
	"github.com/rollbook/attendance-back/internal/db"
	"github.com/rollbook/attendance-back/internal/models"
)

// -------------------- HOME --------------------

func Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{"Flashes": takeFlashes(c)})
}

// -------------------- LOGIN --------------------

func AdminLoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{"Flashes": takeFlashes(c)})
}

func AdminLogin(c *gin.Context) {
	login(c, auth.RoleAdmin, "admin_login.html", "/admin_dashboard", nil)
}

func TeacherLoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "teacher_login.html", gin.H{
		"Flashes":  takeFlashes(c),
		"Teachers": teacherList(c),
	})
}

func TeacherLogin(c *gin.Context) {
	login(c, auth.RoleTeacher, "teacher_login.html", "/teacher_dashboard", func() gin.H {
		return gin.H{"Teachers": teacherList(c)}
	})
}

// login is the shared POST handler for both roles. On failure it re-renders
// the form; extra supplies role-specific template data for that re-render.
func login(c *gin.Context, role, tmpl, dashboard string, extra func() gin.H) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	id, err := auth.Authenticate(c.Request.Context(), role, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			flash(c, "danger", "Invalid username or password.")
		} else {
			log.Println("authenticate:", err)
			flash(c, "danger", "Something went wrong, please try again.")
		}
		data := gin.H{}
		if extra != nil {
			data = extra()
		}
		data["Flashes"] = takeFlashes(c)
		c.HTML(http.StatusOK, tmpl, data)
		return
	}

	if err := auth.Login(c, id); err != nil {
		log.Println("saving session:", err)
		flash(c, "danger", "Something went wrong, please try again.")
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		return
	}
	flash(c, "success", "Login successful!")
	c.Redirect(http.StatusFound, dashboard)
}

func teacherList(c *gin.Context) []models.Teacher {
	teachers, err := db.ListTeachers(c.Request.Context())
	if err != nil {
		log.Println("listing teachers:", err)
	}
	return teachers
}

// -------------------- DASHBOARDS --------------------

func AdminDashboard(c *gin.Context) {
	id := auth.MustIdentity(c)
	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"Flashes":  takeFlashes(c),
		"Username": id.Username,
	})
}

func TeacherDashboard(c *gin.Context) {
	id := auth.MustIdentity(c)
	classes, err := auth.VisibleClasses(c.Request.Context(), id)
	if err != nil {
		log.Println("visible classes:", err)
	}
	c.HTML(http.StatusOK, "teacher_dashboard.html", gin.H{
		"Flashes":  takeFlashes(c),
		"Username": id.Username,
		"Classes":  classes,
	})
}

// -------------------- MARK ATTENDANCE --------------------

func MarkForm(c *gin.Context) {
	id := auth.MustIdentity(c)
	ctx := c.Request.Context()

	classes, err := auth.VisibleClasses(ctx, id)
	if err != nil {
		fail(c, "listing classes", err)
		return
	}

	var students []models.Student
	selected := c.Query("class_id")
	if selected != "" {
		classID, ok := parseID(selected)
		if !ok {
			flash(c, "danger", "Invalid class.")
			c.Redirect(http.StatusFound, "/mark")
			return
		}
		students, err = attendance.ListStudents(ctx, id, classID)
		if err != nil {
			if errors.Is(err, auth.ErrForbidden) {
				forbidden(c)
				return
			}
			fail(c, "listing students", err)
			return
		}
	}

	c.HTML(http.StatusOK, "mark_attendance.html", gin.H{
		"Flashes":         takeFlashes(c),
		"Classes":         classes,
		"Students":        students,
		"SelectedClassID": selected,
		"Today":           time.Now().Format(attendance.DateLayout),
		"BackURL":         backURL(id),
	})
}

func MarkAttendance(c *gin.Context) {
	id := auth.MustIdentity(c)

	studentID, ok := parseID(c.PostForm("student_id"))
	if !ok {
		flash(c, "danger", "Invalid student.")
		c.Redirect(http.StatusFound, markURL(c))
		return
	}
	date := c.PostForm("date")
	status := models.Status(c.PostForm("status"))

	err := attendance.Mark(c.Request.Context(), id, studentID, date, status)
	switch {
	case err == nil:
		flash(c, "success", "Attendance marked successfully!")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		flash(c, "warning", "Attendance already marked for this student on this date.")
	case errors.Is(err, auth.ErrForbidden):
		forbidden(c)
		return
	case errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, attendance.ErrStudentNotFound):
		flash(c, "danger", err.Error())
	default:
		log.Println("marking attendance:", err)
		flash(c, "danger", "Something went wrong, please try again.")
	}

	// Redirect so the flash shows without resubmitting the form.
	c.Redirect(http.StatusFound, markURL(c))
}

// markURL keeps the selected class across the post/redirect/get cycle.
func markURL(c *gin.Context) string {
	if selected := c.DefaultPostForm("class_id", c.Query("class_id")); selected != "" {
		return "/mark?class_id=" + selected
	}
	return "/mark"
}

// -------------------- VIEW ATTENDANCE --------------------

func ViewAttendance(c *gin.Context) {
	id := auth.MustIdentity(c)
	ctx := c.Request.Context()

	classes, err := auth.VisibleClasses(ctx, id)
	if err != nil {
		fail(c, "listing classes", err)
		return
	}

	// No class picked yet: the caller sees their class choices, no records.
	records := []models.AttendanceRow{}
	selected := c.Query("class_id")
	if selected != "" {
		classID, ok := parseID(selected)
		if !ok {
			flash(c, "danger", "Invalid class.")
			c.Redirect(http.StatusFound, "/view")
			return
		}
		records, err = attendance.Query(ctx, id, classID)
		if err != nil {
			if errors.Is(err, auth.ErrForbidden) {
				forbidden(c)
				return
			}
			fail(c, "querying attendance", err)
			return
		}
	}

	c.HTML(http.StatusOK, "view_attendance.html", gin.H{
		"Flashes":         takeFlashes(c),
		"Classes":         classes,
		"Records":         records,
		"SelectedClassID": selected,
		"DateLayout":      attendance.DateLayout,
		"BackURL":         backURL(id),
	})
}

// -------------------- LOGOUT --------------------

func Logout(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if err := auth.Logout(c); err != nil {
		log.Println("clearing session:", err)
	}
	flash(c, "info", "Logged out successfully.")

	target := "/"
	if ok {
		switch id.Role {
		case auth.RoleAdmin:
			target = "/admin_login"
		case auth.RoleTeacher:
			target = "/teacher_login"
		}
	}
	c.Redirect(http.StatusFound, target)
}

// -------------------- HELPERS --------------------

func parseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func backURL(id *auth.Identity) string {
	switch id.Role {
	case auth.RoleAdmin:
		return "/admin_dashboard"
	case auth.RoleTeacher:
		return "/teacher_dashboard"
	}
	return "/"
}

// forbidden is the hard authorization failure: the session is fine, the class
// is not theirs.
func forbidden(c *gin.Context) {
	c.HTML(http.StatusForbidden, "error.html", gin.H{
		"Message": "You are not allowed to access this class.",
	})
}

// fail logs the cause for the operator and shows the caller a generic notice.
func fail(c *gin.Context, what string, err error) {
	log.Printf("%s: %v", what, err)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Message": "Something went wrong, please try again.",
	})
}
