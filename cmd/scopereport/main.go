// Command scopereport builds an observation report from a saved session
// without opening the GUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"radar-scope/internal/config"
	"radar-scope/internal/report"
	"radar-scope/internal/session"
)

func main() {
	sessionPath := flag.String("s", "", "Path to .scopesession file")
	outPath := flag.String("o", "report.rtf", "Output report path")
	folder := flag.String("d", "", "Photograph folder (default: the folder stored in the session)")
	flag.Parse()

	if *sessionPath == "" {
		fmt.Println("Usage: scopereport -s <session.scopesession> [-o report.rtf] [-d <folder>]")
		os.Exit(1)
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		cfg = config.Default()
	}

	sess, err := session.Load(*sessionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load session: %v\n", err)
		os.Exit(1)
	}

	dir := *folder
	if dir == "" {
		dir = sess.GetFolderPath(*sessionPath)
	}
	if dir == "" {
		fmt.Fprintln(os.Stderr, "Session has no photograph folder; pass one with -d")
		os.Exit(1)
	}

	fmt.Printf("Session: %s (%d annotations)\n", *sessionPath, len(sess.Annotations))
	fmt.Printf("Folder:  %s\n", dir)

	images, err := report.CollectImages(sess, dir, report.RenderOptions{
		RingFractions: cfg.Annotation.RingFractions,
		MarkerSize:    cfg.Annotation.MarkerSize,
		LabelScale:    cfg.Annotation.LabelScale,
		Description:   sess.Metadata.DescriptionLines(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render images: %v\n", err)
		os.Exit(1)
	}

	if err := report.Export(*outPath, sess, images); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Report written: %s (%d photographs)\n", *outPath, len(images))
}
