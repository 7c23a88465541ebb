package api

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"github.com/rollbook/attendance-back/internal/auth"
	"github.com/rollbook/attendance-back/internal/config"
	"github.com/rollbook/attendance-back/internal/db"
)

// SetupRouter wires the session store, templates and the full route surface.
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(cfg.TemplateGlob)

	// Server-side sessions: the cookie carries only an opaque token, the
	// values live in the store and expire after SessionMaxAge.
	store := memstore.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("attendance_session", store))

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		if err := db.PingDB(); err != nil {
			c.JSON(500, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/", Home)
	r.GET("/admin_login", AdminLoginForm)
	r.POST("/admin_login", AdminLogin)
	r.GET("/teacher_login", TeacherLoginForm)
	r.POST("/teacher_login", TeacherLogin)
	r.GET("/logout", Logout)

	// Role-pinned dashboards
	r.GET("/admin_dashboard", auth.RequireRole(auth.RoleAdmin), AdminDashboard)
	r.GET("/teacher_dashboard", auth.RequireRole(auth.RoleTeacher), TeacherDashboard)

	// Protected: any signed-in role, class scoping enforced per request
	protected := r.Group("/", auth.RequireAuth())
	{
		protected.GET("/mark", MarkForm)
		protected.POST("/mark", MarkAttendance)
		protected.GET("/view", ViewAttendance)
		protected.GET("/download_select", DownloadSelectForm)
		protected.POST("/download_select", DownloadSelect)
		protected.GET("/download_csv", DownloadCSV)
		protected.GET("/download_xlsx", DownloadXLSX)
	}

	return r
}
