package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus/models"
)

func (ctl *Controller) ListCourses(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.Courses())
}

func (ctl *Controller) ListTeachers(c *gin.Context) {
	out := ctl.store.Teachers(c.Query("department"))
	if out == nil {
		out = []models.Teacher{}
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *Controller) AssignTeacher(c *gin.Context) {
	ctl.assignment(c, true)
}

func (ctl *Controller) UnassignTeacher(c *gin.Context) {
	ctl.assignment(c, false)
}

func (ctl *Controller) assignment(c *gin.Context, assign bool) {
	courseID, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	teacherID, ok := ctl.idParam(c, "teacherId")
	if !ok {
		return
	}
	var (
		out models.Course
		err error
	)
	if assign {
		out, err = ctl.store.AssignTeacher(courseID, teacherID)
	} else {
		out, err = ctl.store.UnassignTeacher(courseID, teacherID)
	}
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
