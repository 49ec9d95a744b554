package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"campus/models"
	"campus/services"
)

func newExamsCommand(a *app) *cobra.Command {
	var f services.ExamFilter
	var status string
	cmd := &cobra.Command{
		Use:   "exams",
		Short: "List and manage exams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.Status = models.ExamStatus(strings.ToUpper(status))
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Exams.List(ctx, f)
				if err != nil {
					return err
				}
				return a.table(list, "ID\tCOURSE\tTITLE\tDATE\tTIME\tLOCATION\tSTATUS", func(w io.Writer) {
					for _, e := range list {
						fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s-%s\t%s\t%s\n", e.ID, e.CourseID, e.Title, e.Date, e.StartTime, e.EndTime, e.Location, e.Status)
					}
				})
			})
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.CourseID, "course", 0, "course id")
	fl.StringVar(&status, "status", "", "UPCOMING, IN_PROGRESS or COMPLETED")
	fl.StringVar(&f.Search, "search", "", "title contains")

	cmd.AddCommand(newExamCreateCommand(a), newExamDeleteCommand(a), newQuestionPaperCommand(a))
	return cmd
}

func newExamCreateCommand(a *app) *cobra.Command {
	var e models.Exam
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Schedule an exam (faculty, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Title = args[0]
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.Exams.Create(ctx, e)
				if err != nil {
					return err
				}
				a.printf("Scheduled exam #%d\n", out.ID)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&e.CourseID, "course", 0, "course id")
	fl.StringVar(&e.Date, "date", "", "date (YYYY-MM-DD)")
	fl.StringVar(&e.StartTime, "start", "", "start time (HH:MM)")
	fl.StringVar(&e.EndTime, "end", "", "end time (HH:MM)")
	fl.StringVar(&e.Location, "location", "", "room")
	fl.IntVar(&e.TotalMarks, "total", 100, "total marks")
	fl.IntVar(&e.PassingMarks, "passing", 40, "passing marks")
	return cmd
}

func newExamDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <exam-id>",
		Short: "Delete an exam (faculty, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "exam-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if err := a.svc.Exams.Delete(ctx, id); err != nil {
					return err
				}
				a.printf("Deleted exam #%d\n", id)
				return nil
			})
		},
	}
}

func newQuestionPaperCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-paper <exam-id> <file>",
		Short: "Attach a question paper (faculty, admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "exam-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				out, err := a.svc.Exams.UploadQuestionPaper(ctx, id, args[1], f)
				if err != nil {
					return err
				}
				a.printf("Question paper stored at %s\n", out.QuestionPaperURL)
				return nil
			})
		},
	}
}
