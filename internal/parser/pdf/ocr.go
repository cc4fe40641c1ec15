package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// OCR recognizes text in a page image. The expensive last-resort stage.
type OCR interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// tesseractOCR drives a local tesseract via gosseract, with light image
// preprocessing to help low-quality scans.
type tesseractOCR struct {
	lang string
}

func newTesseractOCR(lang string) *tesseractOCR {
	if lang == "" {
		lang = "eng"
	}
	return &tesseractOCR{lang: lang}
}

func (t *tesseractOCR) Recognize(_ context.Context, imagePath string) (string, error) {
	prepared, cleanup, err := prepareForOCR(imagePath)
	if err != nil {
		// fall back to the raw image
		prepared = imagePath
	}
	if cleanup != nil {
		defer cleanup()
	}

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(t.lang); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(prepared); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return text, nil
}

// prepareForOCR grayscales, upsizes small scans, and sharpens the page
// image, writing the result to a temp file.
func prepareForOCR(imagePath string) (string, func(), error) {
	src, err := imaging.Open(imagePath)
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}

	img := imaging.Grayscale(src)
	if img.Bounds().Dy() < 1000 {
		img = imaging.Resize(img, 0, 1500, imaging.Lanczos)
	}
	img = imaging.AdjustContrast(img, 25)
	img = imaging.Sharpen(img, 1.2)

	tmp, err := os.CreateTemp("", "ocr-page-*.png")
	if err != nil {
		return "", nil, err
	}
	tmp.Close()
	if err := imaging.Save(img, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("save image: %w", err)
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// rasterize renders each page of a PDF to an image file using pdftoppm,
// falling back to ImageMagick convert. Returns paths in page order plus a
// cleanup function.
func rasterize(ctx context.Context, pdfData []byte, bin string, dpi int) ([]string, func(), error) {
	if bin == "" {
		bin = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 200
	}

	tmpDir, err := os.MkdirTemp("", "pdf-pages-*")
	if err != nil {
		return nil, nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o644); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("write temp pdf: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, bin, "-png", "-r", fmt.Sprintf("%d", dpi), pdfPath, prefix)
	if err := cmd.Run(); err != nil {
		cmd = exec.CommandContext(ctx, "convert", "-density", fmt.Sprintf("%d", dpi), pdfPath, prefix+".png")
		if err2 := cmd.Run(); err2 != nil {
			cleanup()
			return nil, nil, fmt.Errorf("pdftoppm and convert both failed: %w", err)
		}
	}

	matches, _ := filepath.Glob(prefix + "*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("no pages rendered")
	}
	return matches, cleanup, nil
}

// ocrPages runs OCR over page images in order, concatenating page results.
func ocrPages(ctx context.Context, ocr OCR, pages []string) (string, []string) {
	var b strings.Builder
	var warnings []string
	for _, page := range pages {
		text, err := ocr.Recognize(ctx, page)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ocr %s: %v", filepath.Base(page), err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.WriteString(text)
	}
	return b.String(), warnings
}
