package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ExamPassingMarksExceedTotal(t *testing.T) {
	exam := Exam{
		CourseID:     1,
		Title:        "Midterm",
		Date:         "2026-11-02",
		StartTime:    "09:00",
		EndTime:      "11:00",
		TotalMarks:   50,
		PassingMarks: 60,
	}

	err := Validate(exam)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "passingMarks")
	assert.Equal(t, "passingMarks must not exceed TotalMarks", verr.Fields["passingMarks"])
}

func TestValidate_UsesJSONNames(t *testing.T) {
	err := Validate(RegisterRequest{Username: "al", Password: "short", FullName: "", Email: "nope"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "fullName")
	assert.Contains(t, verr.Fields, "email")
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(Credentials{Username: "alice", Password: "pw"}))
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr bool
	}{
		{"ordered", "2026-11-02", "09:00", "10:30", false},
		{"seconds accepted", "2026-11-02", "09:00:00", "10:30:00", false},
		{"end before start", "2026-11-02", "11:00", "10:00", true},
		{"equal times", "2026-11-02", "10:00", "10:00", true},
		{"bad date", "02/11/2026", "09:00", "10:00", true},
		{"bad clock", "2026-11-02", "9am", "10:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.date, tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
