package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check and print the resolved configuration",
		Long: `Load carousel.yaml, apply .env and CAROUSEL_* overrides and print the
configuration the carousel would run with.

Exits non-zero when the file cannot be parsed or a value is rejected.`,
		Usage: "carousel validate",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	res, err := loadConfig()
	if err != nil {
		return err
	}
	printResolved(os.Stdout, res)
	return nil
}

func printResolved(w io.Writer, res *config.Resolved) {
	cfg := res.Config
	source := res.Path
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintf(w, "Config:     %s\n", source)
	fmt.Fprintf(w, "Version:    %s\n", res.Version)
	fmt.Fprintf(w, "Mode:       %s\n", cfg.ResolvedMode())
	fmt.Fprintf(w, "Autoplay:   %t (every %s, resume after %s)\n", cfg.AutoScroll, cfg.TickInterval, cfg.ResumeDelay)
	fmt.Fprintf(w, "Animation:  %s\n", cfg.AnimationDuration)
	fmt.Fprintf(w, "Controls:   %t\n", cfg.ShowControls)
	fmt.Fprintf(w, "Thumbnails: %t\n", cfg.ShowThumbnails)
	fmt.Fprintf(w, "Overlay:    %t\n", cfg.ShowOverlayText)
	fmt.Fprintf(w, "Slides:     %d\n", len(cfg.Images))
	for i, s := range cfg.Images {
		label := s.Title
		if label == "" {
			label = s.ImageURL
		}
		fmt.Fprintf(w, "  %2d. %s\n", i+1, label)
	}
}
