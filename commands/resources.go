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

func newResourcesCommand(a *app) *cobra.Command {
	var f services.ResourceFilter
	var kind string
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Course materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.Type = models.ResourceType(strings.ToUpper(kind))
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Resources.List(ctx, f)
				if err != nil {
					return err
				}
				return a.table(list, "ID\tCOURSE\tTYPE\tTITLE\tFILE\tUPLOADED", func(w io.Writer) {
					for _, r := range list {
						fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n", r.ID, r.CourseID, r.Type, r.Title, r.FileName, r.UploadedAt.Local().Format("2006-01-02"))
					}
				})
			})
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.CourseID, "course", 0, "course id")
	fl.StringVar(&kind, "type", "", "NOTES, SLIDES, ASSIGNMENT or OTHER")
	fl.StringVar(&f.Search, "search", "", "title contains")

	cmd.AddCommand(newResourceUploadCommand(a), newResourceDownloadCommand(a), newResourceDeleteCommand(a))
	return cmd
}

func newResourceUploadCommand(a *app) *cobra.Command {
	var up models.ResourceUpload
	var kind string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Share a file with a course (faculty, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			up.FileName = args[0]
			up.Type = models.ResourceType(strings.ToUpper(kind))
			return a.run(cmd.Context(), func(ctx context.Context) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				out, err := a.svc.Resources.Upload(ctx, up, f)
				if err != nil {
					return err
				}
				a.printf("Uploaded resource #%d\n", out.ID)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&up.Title, "title", "", "title")
	fl.StringVar(&up.Description, "description", "", "description")
	fl.IntVar(&up.CourseID, "course", 0, "course id")
	fl.StringVar(&kind, "type", "", "NOTES, SLIDES, ASSIGNMENT or OTHER")
	return cmd
}

func newResourceDownloadCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "download <resource-id>",
		Short: "Download a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "resource-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if output == "" || output == "-" {
					return a.svc.Resources.Download(ctx, id, a.out)
				}
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				if err := a.svc.Resources.Download(ctx, id, f); err != nil {
					f.Close()
					os.Remove(output)
					return err
				}
				return f.Close()
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (stdout when empty)")
	return cmd
}

func newResourceDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource-id>",
		Short: "Remove a resource (faculty, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "resource-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if err := a.svc.Resources.Delete(ctx, id); err != nil {
					return err
				}
				a.printf("Deleted resource #%d\n", id)
				return nil
			})
		},
	}
}
