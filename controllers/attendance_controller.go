package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus/models"
)

// ListAttendance filters by studentId and courseId. Callers other than
// faculty and admins only see their own records.
func (ctl *Controller) ListAttendance(c *gin.Context) {
	studentID, err := queryInt(c, "studentId")
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	courseID, err := queryInt(c, "courseId")
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	if own := ownerScope(c, models.RoleFaculty, models.RoleAdmin); own != 0 {
		studentID = own
	}
	c.JSON(http.StatusOK, ctl.store.Attendance(studentID, courseID))
}

func (ctl *Controller) MarkAttendance(c *gin.Context) {
	var records []models.AttendanceRecord
	if err := c.ShouldBindJSON(&records); err != nil || len(records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	for _, r := range records {
		if err := models.Validate(r); err != nil {
			ctl.respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, ctl.store.MarkAttendance(records))
}
