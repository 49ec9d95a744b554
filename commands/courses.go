package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"campus/services"
)

func newCoursesCommand(a *app) *cobra.Command {
	var f services.CourseFilter
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List courses and manage teacher assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Courses.Courses(ctx, f)
				if err != nil {
					return err
				}
				return a.table(list, "ID\tCODE\tNAME\tDEPARTMENT\tTEACHERS", func(w io.Writer) {
					for _, c := range list {
						ids := make([]string, len(c.TeacherIDs))
						for i, id := range c.TeacherIDs {
							ids[i] = fmt.Sprint(id)
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Code, c.Name, c.Department, strings.Join(ids, ","))
					}
				})
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Department, "department", "", "department")
	fl.IntVar(&f.TeacherID, "teacher", 0, "taught by teacher id")
	fl.BoolVar(&f.UnassignedOnly, "unassigned", false, "only courses without teachers")
	fl.StringVar(&f.Search, "search", "", "code or name contains")

	cmd.AddCommand(
		newTeachersCommand(a),
		newAssignmentCommand(a, "assign", true),
		newAssignmentCommand(a, "unassign", false),
	)
	return cmd
}

func newTeachersCommand(a *app) *cobra.Command {
	var department string
	cmd := &cobra.Command{
		Use:   "teachers",
		Short: "List faculty members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Courses.Teachers(ctx, department)
				if err != nil {
					return err
				}
				return a.table(list, "ID\tNAME\tEMAIL\tDEPARTMENT", func(w io.Writer) {
					for _, t := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.FullName, t.Email, t.Department)
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&department, "department", "", "department")
	return cmd
}

func newAssignmentCommand(a *app, use string, assign bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <course-id> <teacher-id>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " a teacher (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0], "course-id")
			if err != nil {
				return err
			}
			teacherID, err := parseID(args[1], "teacher-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				var err error
				if assign {
					_, err = a.svc.Courses.Assign(ctx, courseID, teacherID)
				} else {
					_, err = a.svc.Courses.Unassign(ctx, courseID, teacherID)
				}
				if err != nil {
					return err
				}
				a.printf("Course #%d updated\n", courseID)
				return nil
			})
		},
	}
}
