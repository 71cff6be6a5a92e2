package cmd

import (
	"fmt"

	"resume-hotspots/internal/pdfpage"
	"resume-hotspots/internal/project"
	"resume-hotspots/internal/region"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <project.rhz>",
	Short: "Show a summary of a hot zone project",
	Long: `Print the project's sources, page geometry, zones and photo counts.

Examples:
  hotzone info resume.rhz
  hotzone info -v resume.rhz`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	store, err := project.Open(path)
	if err != nil {
		return err
	}

	f := store.File
	fmt.Printf("Project:   %s\n", f.Name)
	fmt.Printf("Modified:  %s\n", f.Modified.Format("2006-01-02 15:04"))

	if f.ResumePDFPath != "" {
		pdfPath := f.GetResumePDFPath(path)
		fmt.Printf("Resume:    %s\n", f.ResumePDFPath)
		if info, err := pdfpage.ReadFirstPage(pdfPath); err == nil {
			fmt.Printf("Page:      %.0fx%.0f pts, rotate %d, aspect %.3f\n",
				info.WidthPts, info.HeightPts, info.Rotate, info.Aspect())
		} else if verbose {
			fmt.Printf("Page:      unreadable (%v)\n", err)
		}
	}
	if f.PageImagePath != "" {
		fmt.Printf("Bitmap:    %s\n", f.PageImagePath)
	}

	regions := store.Regions()
	photos := store.Photos()
	fmt.Printf("Zones:     %d\n", len(regions))
	fmt.Printf("Photos:    %d\n", len(photos))

	if verbose {
		for _, r := range regions {
			n := len(region.PhotosFor(photos, r.ID))
			fmt.Printf("  %s  (%.0f, %.0f) %.0fx%.0f  %d photos\n",
				r.ID, r.X, r.Y, r.Width, r.Height, n)
		}
	}
	return nil
}
