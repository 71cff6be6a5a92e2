package cmd

import (
	"fmt"
	"os"

	"resume-hotspots/internal/engine"
	"resume-hotspots/internal/pdfpage"
	"resume-hotspots/internal/photo"
	"resume-hotspots/internal/project"
	"resume-hotspots/internal/publish"

	"github.com/spf13/cobra"
)

var (
	publishOut     string
	publishTitle   string
	publishPhotoPx int
)

var publishCmd = &cobra.Command{
	Use:   "publish <project.rhz>",
	Short: "Render the static viewer site for a project",
	Long: `Render a project into a self-contained static site: index.html, a
regions.json manifest, the page bitmap and scaled photo copies.

Examples:
  hotzone publish resume.rhz -o ./site
  hotzone publish resume.rhz -o ./site --title "Jane Doe" --photo-size 1200`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVarP(&publishOut, "out", "o", "site",
		"output directory")
	publishCmd.Flags().StringVar(&publishTitle, "title", "",
		"site title (defaults to the project name)")
	publishCmd.Flags().IntVar(&publishPhotoPx, "photo-size", 0,
		"longest photo side in pixels")
}

func runPublish(cmd *cobra.Command, args []string) error {
	path := args[0]

	store, err := project.Open(path)
	if err != nil {
		return err
	}
	f := store.File

	pageImage := f.GetPageImagePath(path)
	if pageImage == "" {
		return fmt.Errorf("project has no page image, attach one in the editor first")
	}

	space, err := pageSpace(f, path, pageImage)
	if err != nil {
		return err
	}

	title := publishTitle
	if title == "" {
		title = f.Name
	}

	pub := &publish.Publisher{
		Space:     space,
		PageImage: pageImage,
		Regions:   store.Regions(),
		Photos:    store.Photos(),
		PhotosDir: photo.Dir{Path: f.GetPhotosDir(path)},
	}
	opts := publish.Options{
		OutDir:      publishOut,
		Title:       title,
		MaxPhotoDim: publishPhotoPx,
	}
	if err := pub.Publish(opts); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "published %d zones to %s\n", len(store.Regions()), publishOut)
	}
	return nil
}

// pageSpace derives the zone coordinate space the same way the editor
// does: from the PDF's first page when one is attached, otherwise from
// the page bitmap's aspect ratio.
func pageSpace(f *project.File, path, pageImage string) (engine.Space, error) {
	width := f.AuthoringWidth
	if width <= 0 {
		width = engine.DefaultAuthoringWidth
	}

	if f.ResumePDFPath != "" {
		if info, err := pdfpage.ReadFirstPage(f.GetResumePDFPath(path)); err == nil {
			return engine.NewSpace(width, info.Aspect()), nil
		}
	}

	aspect, err := pdfpage.AspectFromImage(pageImage)
	if err != nil {
		return engine.Space{}, fmt.Errorf("deriving page geometry: %w", err)
	}
	return engine.NewSpace(width, aspect), nil
}
