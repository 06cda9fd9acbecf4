// Command ggfilter applies a color filter to an image file.
//
// Usage:
//
//	ggfilter -in photo.jpg -out sepia.png -filter sepia -diagonal
//	ggfilter -list
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"

	ggfilter "github.com/gogpu/gg-filter"
	"github.com/gogpu/gg-filter/internal/caption"
	"github.com/gogpu/gg-filter/internal/imageio"
)

func main() {
	var (
		in       = flag.String("in", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
		out      = flag.String("out", "filtered.png", "output image (png, jpeg, gif, bmp, tiff)")
		name     = flag.String("filter", "sepia", "filter kind (see -list)")
		diagonal = flag.Bool("diagonal", false, "restrict the filter to the outer diagonal bands")
		maxSize  = flag.Int("max-size", 0, "downscale so neither side exceeds this many pixels (0 = keep)")
		label    = flag.Bool("caption", false, "stamp the filter name onto the output")
		workers  = flag.Int("workers", 0, "engine workers (0 = GOMAXPROCS)")
		quality  = flag.Int("quality", imageio.DefaultJPEGQuality, "JPEG quality (1-100)")
		timeout  = flag.Duration("timeout", time.Minute, "give up waiting for the filter after this long")
		verbose  = flag.Bool("v", false, "log job lifecycle to stderr")
		list     = flag.Bool("list", false, "list filter kinds and exit")
	)
	flag.Parse()

	if *list {
		for _, k := range ggfilter.Kinds() {
			fmt.Printf("%d\t%s\t%s\n", k.ID(), k, k.Label())
		}
		return
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		ggfilter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	kind, err := ggfilter.ParseKind(*name)
	if err != nil {
		log.Fatalf("Invalid filter: %v", err)
	}

	img, format, err := imageio.Load(*in)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}
	img = imageio.Fit(img, *maxSize, *maxSize)

	src, err := ggfilter.RasterFromImage(img)
	if err != nil {
		log.Fatalf("Failed to convert %s image: %v", format, err)
	}

	result, err := apply(src, kind, *diagonal, *workers, *timeout)
	if err != nil {
		log.Fatalf("Failed to apply %s: %v", kind, err)
	}

	final := result.ToImage()
	if *label {
		if final, err = caption.Stamp(final, kind.Label(), caption.Options{}); err != nil {
			log.Fatalf("Failed to caption: %v", err)
		}
	}

	if err := imageio.Save(*out, final, *quality); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("%s saved to %s (%dx%d)\n", kind.Label(), *out, src.Width(), src.Height())
}

// apply runs the filter through a Session the way an image view does and
// waits for the delivered raster.
func apply(src *ggfilter.Raster, kind ggfilter.Kind, diagonal bool, workers int, timeout time.Duration) (*ggfilter.Raster, error) {
	results := make(chan *ggfilter.Raster, 1)
	failures := make(chan error, 1)

	s := ggfilter.NewSession(
		func() *ggfilter.Raster { return src },
		func(r *ggfilter.Raster) { results <- r },
		ggfilter.WithErrorHandler(func(err error) { failures <- err }),
		ggfilter.WithEngineOptions(ggfilter.WithWorkers(workers)),
	)
	defer s.Close()

	// Record the mask first so only one job is submitted.
	if _, err := s.SetDiagonal(diagonal); err != nil {
		return nil, err
	}
	job, err := s.SelectFilter(kind)
	if err != nil {
		return nil, err
	}
	if job == nil {
		// NoFilter is already selected: the original is the result.
		return s.Original(), nil
	}

	select {
	case r := <-results:
		return r, nil
	case err := <-failures:
		return nil, err
	case <-time.After(timeout):
		return nil, errors.Errorf("timed out after %v", timeout)
	}
}
