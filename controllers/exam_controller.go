package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus/models"
)

func (ctl *Controller) ListExams(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.Exams())
}

func (ctl *Controller) GetExam(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	e, err := ctl.store.Exam(id)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (ctl *Controller) bindExam(c *gin.Context, e *models.Exam) bool {
	if !ctl.bind(c, e) {
		return false
	}
	if err := models.ValidateSchedule(e.Date, e.StartTime, e.EndTime); err != nil {
		ctl.respondError(c, err)
		return false
	}
	return true
}

func (ctl *Controller) CreateExam(c *gin.Context) {
	var e models.Exam
	if !ctl.bindExam(c, &e) {
		return
	}
	e.QuestionPaperURL = ""
	out, err := ctl.store.CreateExam(e)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (ctl *Controller) UpdateExam(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	var e models.Exam
	if !ctl.bindExam(c, &e) {
		return
	}
	e.ID = id
	e.QuestionPaperURL = ""
	out, err := ctl.store.UpdateExam(e)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *Controller) DeleteExam(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.store.DeleteExam(id); err != nil {
		ctl.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *Controller) UploadQuestionPaper(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	if _, err := ctl.store.Exam(id); err != nil {
		ctl.respondError(c, err)
		return
	}
	header, ok := ctl.formFile(c)
	if !ok {
		return
	}
	key, ok := ctl.saveUpload(c, header, "exams")
	if !ok {
		return
	}
	out, err := ctl.store.SetQuestionPaper(id, fileURL(key))
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
