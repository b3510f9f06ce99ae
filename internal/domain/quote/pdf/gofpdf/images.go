package gofpdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

var errNoImage = errors.New("line item has no image reference")

// Product pictures get downscaled before embedding; catalog photos can be
// several megapixels and the printed cell is under 3cm.
const maxImageDim = 600

type imageFetcher struct {
	client *http.Client
}

func newImageFetcher(timeout time.Duration) *imageFetcher {
	return &imageFetcher{client: &http.Client{Timeout: timeout}}
}

// fetch resolves a line item's picture: the inline blob wins when present,
// otherwise the remote URL is tried with the short client timeout. Every
// failure mode is an error for the caller to degrade on, never a panic.
func (f *imageFetcher) fetch(it quote.LineItem) (image.Image, error) {
	if len(it.ImageData) > 0 {
		img, err := imaging.Decode(bytes.NewReader(it.ImageData))
		if err != nil {
			return nil, fmt.Errorf("decode inline image %s: %w", it.Code, err)
		}
		return downscale(img), nil
	}

	if it.ImageURL == "" {
		return nil, errNoImage
	}
	resp, err := f.client.Get(it.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", it.Code, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image %s: status %d", it.Code, resp.StatusCode)
	}
	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", it.Code, err)
	}
	return downscale(img), nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxImageDim && b.Dy() <= maxImageDim {
		return img
	}
	return imaging.Fit(img, maxImageDim, maxImageDim, imaging.Lanczos)
}

func encodeJPEG(img image.Image) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &buf, nil
}
