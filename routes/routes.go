package routes

import (
	"github.com/gin-gonic/gin"

	"campus/controllers"
	"campus/middleware"
	"campus/models"
)

// SetupRoutes registers every endpoint of the campus API.
func SetupRoutes(r *gin.Engine, ctl *controllers.Controller, issuer *middleware.Issuer) {
	auth := middleware.JWTAuthMiddleware(issuer)
	admin := middleware.RequireRole(models.RoleAdmin)
	kitchen := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)
	teaching := middleware.RequireRole(models.RoleFaculty, models.RoleAdmin)
	organisers := middleware.RequireRole(models.RoleAdmin, models.RoleStaff, models.RoleFaculty)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", ctl.Login)
		authGroup.POST("/register", ctl.Register)
		authGroup.GET("/current", auth, ctl.GetCurrentUser)
		authGroup.POST("/logout", auth, ctl.Logout)
	}

	api := r.Group("", auth)
	{
		api.GET("/files/*key", ctl.ServeFile)

		api.GET("/facilities", ctl.ListFacilities)
		api.GET("/facilities/:id", ctl.GetFacility)
		api.GET("/facilities/:id/bookings", ctl.ListFacilityBookings)
		api.POST("/facilities", admin, ctl.CreateFacility)
		api.PUT("/facilities/:id", admin, ctl.UpdateFacility)
		api.DELETE("/facilities/:id", admin, ctl.DeleteFacility)

		api.GET("/bookings", ctl.ListBookings)
		api.POST("/bookings", ctl.CreateBooking)
		api.DELETE("/bookings/:id", ctl.CancelBooking)

		api.GET("/courses", ctl.ListCourses)
		api.GET("/teachers", ctl.ListTeachers)
		api.POST("/courses/:id/teachers/:teacherId", admin, ctl.AssignTeacher)
		api.DELETE("/courses/:id/teachers/:teacherId", admin, ctl.UnassignTeacher)

		api.GET("/cafeteria/items", ctl.ListItems)
		api.POST("/cafeteria/items", kitchen, ctl.CreateItem)
		api.PUT("/cafeteria/items/:id", kitchen, ctl.UpdateItem)
		api.DELETE("/cafeteria/items/:id", kitchen, ctl.DeleteItem)
		api.GET("/cafeteria/orders", ctl.ListOrders)
		api.POST("/cafeteria/orders", ctl.PlaceOrder)
		api.PUT("/cafeteria/orders/:id/status", kitchen, ctl.UpdateOrderStatus)

		api.GET("/exams", ctl.ListExams)
		api.GET("/exams/:id", ctl.GetExam)
		api.POST("/exams", teaching, ctl.CreateExam)
		api.PUT("/exams/:id", teaching, ctl.UpdateExam)
		api.DELETE("/exams/:id", teaching, ctl.DeleteExam)
		api.POST("/exams/:id/question-paper", teaching, ctl.UploadQuestionPaper)

		api.GET("/resources", ctl.ListResources)
		api.POST("/resources", teaching, ctl.UploadResource)
		api.DELETE("/resources/:id", teaching, ctl.DeleteResource)
		api.GET("/resources/:id/download", ctl.DownloadResource)

		api.GET("/attendance", ctl.ListAttendance)
		api.POST("/attendance", teaching, ctl.MarkAttendance)

		api.GET("/events", ctl.ListEvents)
		api.POST("/events", organisers, ctl.CreateEvent)
		api.DELETE("/events/:id", organisers, ctl.DeleteEvent)
		api.POST("/events/:id/rsvp", ctl.RSVP)
		api.DELETE("/events/:id/rsvp", ctl.CancelRSVP)

		api.GET("/lost-found", ctl.ListLostItems)
		api.POST("/lost-found", ctl.ReportLostItem)
		api.PUT("/lost-found/:id/status", ctl.UpdateLostItemStatus)
		api.DELETE("/lost-found/:id", ctl.DeleteLostItem)
	}

	adminGroup := r.Group("/admin", auth, admin)
	{
		adminGroup.GET("/metrics", ctl.GetAdminMetrics)
	}
}
