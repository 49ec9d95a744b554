package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"campus/models"
	"campus/services"
)

func newAttendanceCommand(a *app) *cobra.Command {
	var studentID, courseID int
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance records and summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				records, err := a.svc.Attendance.ForStudent(ctx, studentID, courseID)
				if err != nil {
					return err
				}
				return printAttendance(a, records)
			})
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&studentID, "student", 0, "student id (faculty, admin)")
	fl.IntVar(&courseID, "course", 0, "course id")

	cmd.AddCommand(newCourseAttendanceCommand(a), newMarkAttendanceCommand(a))
	return cmd
}

func printAttendance(a *app, records []models.AttendanceRecord) error {
	byCourse := services.SummarizeByCourse(records)
	if a.json {
		return a.printJSON(map[string]any{"records": records, "summary": byCourse})
	}
	ids := make([]int, 0, len(byCourse))
	for id := range byCourse {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return a.table(nil, "COURSE\tTOTAL\tPRESENT\tLATE\tABSENT\tEXCUSED\tPERCENT", func(w io.Writer) {
		for _, id := range ids {
			s := byCourse[id]
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%.1f%%\n", id, s.Total, s.Present, s.Late, s.Absent, s.Excused, s.Percentage)
		}
	})
}

func newCourseAttendanceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "course <course-id>",
		Short: "Attendance of a whole course (faculty, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "course-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				records, err := a.svc.Attendance.ForCourse(ctx, id)
				if err != nil {
					return err
				}
				return a.table(records, "DATE\tSTUDENT\tSTATUS", func(w io.Writer) {
					for _, r := range records {
						fmt.Fprintf(w, "%s\t%d\t%s\n", r.Date, r.StudentID, r.Status)
					}
				})
			})
		},
	}
}

// parseMarks reads "studentID=STATUS" pairs.
func parseMarks(courseID int, date string, args []string) ([]models.AttendanceRecord, error) {
	out := make([]models.AttendanceRecord, 0, len(args))
	for _, arg := range args {
		idPart, status, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected studentID=STATUS, got %q", arg)
		}
		id, err := parseID(idPart, "student id")
		if err != nil {
			return nil, err
		}
		out = append(out, models.AttendanceRecord{
			StudentID: id,
			CourseID:  courseID,
			Date:      date,
			Status:    models.AttendanceStatus(strings.ToUpper(status)),
		})
	}
	return out, nil
}

func newMarkAttendanceCommand(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "mark <course-id> <student-id=STATUS>...",
		Short: "Record attendance (faculty, admin)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0], "course-id")
			if err != nil {
				return err
			}
			records, err := parseMarks(courseID, date, args[1:])
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.Attendance.Mark(ctx, records)
				if err != nil {
					return err
				}
				a.printf("Recorded %d attendance entries\n", len(out))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	return cmd
}
