package presentation

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"socio_verify_api/metrics"
	"socio_verify_api/tools"
	"socio_verify_api/types"

	"cloud.google.com/go/logging"
	"golang.org/x/sync/errgroup"
)

const ImageDisplayHeight = 350.0

// Only this much of an image is read to find its size. It covers the
// format header and a JPEG's EXIF segment, which is capped at 64 KiB.
const probeHeaderBytes = 256 << 10

type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placeholder is shown until an image's natural size is known.
func Placeholder() Box {
	return Box{Width: 0, Height: ImageDisplayHeight}
}

// SizeFor fixes the height and derives the width from the aspect ratio.
func SizeFor(naturalWidth, naturalHeight int) Box {
	if naturalWidth <= 0 || naturalHeight <= 0 {
		return Placeholder()
	}
	return Box{
		Width:  ImageDisplayHeight * float64(naturalWidth) / float64(naturalHeight),
		Height: ImageDisplayHeight,
	}
}

// Media is one attached file as the viewer lays it out. Images carry a box,
// videos play with native controls across the full container width.
type Media struct {
	Cid        string         `json:"cid"`
	Kind       types.FileType `json:"kind"`
	URL        string         `json:"url"`
	PreviewURL string         `json:"previewUrl,omitempty"`
	Box        *Box           `json:"box,omitempty"`
	Sized      bool           `json:"sized"`
	Controls   bool           `json:"controls,omitempty"`
	FullWidth  bool           `json:"fullWidth,omitempty"`
}

type MediaSource interface {
	FetchMedia(ctx context.Context, cid string) (io.ReadCloser, string, error)
	MediaURL(cid string) string
}

type Dimensions struct {
	Width  int
	Height int
}

type ProbeResult struct {
	Index      int
	Dimensions Dimensions
}

// Prober reads the natural size of images from the content gateway.
type Prober struct {
	media       MediaSource
	logger      tools.Logger
	metrics     *metrics.Metrics
	concurrency int
}

func NewProber(media MediaSource, logger tools.Logger, m *metrics.Metrics, concurrency int) *Prober {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Prober{media: media, logger: logger, metrics: m, concurrency: concurrency}
}

// Probe reads the header of one image and returns its displayed size.
// The rest of the object is never downloaded.
func (p *Prober) Probe(ctx context.Context, cid string) (Dimensions, error) {
	rc, _, err := p.media.FetchMedia(ctx, cid)
	if err != nil {
		return Dimensions{}, err
	}
	defer rc.Close()

	var head bytes.Buffer
	header := bufio.NewReader(io.TeeReader(io.LimitReader(rc, probeHeaderBytes), &head))
	if _, _, err := image.DecodeConfig(header); err != nil {
		return Dimensions{}, fmt.Errorf("decode image %s: %w", cid, err)
	}
	// Keep reading up to the window so that EXIF behind the header is seen.
	if _, err := io.Copy(io.Discard, header); err != nil {
		return Dimensions{}, fmt.Errorf("read image %s: %w", cid, err)
	}

	width, height, err := tools.DecodeImageDimensions(p.logger, head.Bytes())
	if err != nil {
		return Dimensions{}, fmt.Errorf("decode image %s: %w", cid, err)
	}
	return Dimensions{Width: width, Height: height}, nil
}

// Start probes every image in files in the background. Results are keyed by
// the file's index. The channel closes once all probes have finished or ctx
// is done; results are never delivered after ctx is done, and a failed probe
// simply delivers nothing.
func (p *Prober) Start(ctx context.Context, files []types.File) <-chan ProbeResult {
	out := make(chan ProbeResult, len(files))

	go func() {
		defer close(out)

		var g errgroup.Group
		g.SetLimit(p.concurrency)

		for i, file := range files {
			if file.Kind() != types.FILE_TYPE_IMAGE {
				continue
			}
			if ctx.Err() != nil {
				break
			}

			i, file := i, file
			g.Go(func() error {
				dims, err := p.Probe(ctx, file.Cid)
				if ctx.Err() != nil {
					p.metrics.IncImageProbe("abandoned")
					return nil
				}
				if err != nil {
					p.metrics.IncImageProbe("failed")
					p.logger.Log(logging.Entry{
						Severity: logging.Warning,
						Payload:  "Image dimension probe failed",
						Labels:   map[string]string{"cid": file.Cid, "error": err.Error()},
					})
					return nil
				}

				p.metrics.IncImageProbe("sized")
				out <- ProbeResult{Index: i, Dimensions: dims}
				return nil
			})
		}

		_ = g.Wait()
	}()

	return out
}
