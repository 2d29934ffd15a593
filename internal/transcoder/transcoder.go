package transcoder

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/fjallet/uploadbox-go/internal/port"
)

const webpQuality = 80

// FileTranscoder rewrites picked sources before transfer:
//   - Images (JPEG, PNG, WebP): bound width to maxWidth, re-encode as lossy
//     WebP @ quality=80 and report the new media kind.
//   - PDFs: run a lossless pdfcpu optimisation, kind unchanged.
//   - Everything else: returned untouched.
type FileTranscoder struct {
	webpEnc  WebPEncoder
	pdfOpt   PDFOptimizer
	maxWidth int
}

// compile-time check: *FileTranscoder must satisfy port.Transcoder
var _ port.Transcoder = (*FileTranscoder)(nil)

func NewFileTranscoder(webpEnc WebPEncoder, pdfOpt PDFOptimizer, maxWidth int) *FileTranscoder {
	log.Println("initialising transcoder...")
	return &FileTranscoder{webpEnc: webpEnc, pdfOpt: pdfOpt, maxWidth: maxWidth}
}

func (t *FileTranscoder) Transcode(mediaKind string, data []byte) ([]byte, string, error) {
	switch mediaKind {
	case "image/jpeg", "image/png", "image/webp":
		return t.transcodeImage(data)
	case "application/pdf":
		out, err := t.optimisePdf(data)
		return out, mediaKind, err
	default:
		return data, mediaKind, nil
	}
}

func (t *FileTranscoder) transcodeImage(data []byte) ([]byte, string, error) {
	img, _, err := t.webpEnc.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("transcoder: failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if t.maxWidth > 0 && bounds.Dx() > t.maxWidth {
		height := int(float64(bounds.Dy()) * float64(t.maxWidth) / float64(bounds.Dx()))
		dst := image.NewRGBA(image.Rect(0, 0, t.maxWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	buf := &bytes.Buffer{}
	if err := t.webpEnc.Encode(img, webpQuality, buf); err != nil {
		return nil, "", fmt.Errorf("transcoder: failed to encode WebP: %w", err)
	}
	return buf.Bytes(), "image/webp", nil
}

func (t *FileTranscoder) optimisePdf(data []byte) ([]byte, error) {
	// pdfcpu only works file-to-file
	inFile, err := os.CreateTemp("", "pdf_in_*.pdf")
	if err != nil {
		return nil, fmt.Errorf("transcoder: could not create temp input PDF: %w", err)
	}
	defer func(name string) {
		if err := os.Remove(name); err != nil {
			log.Printf("failed to remove in temp file %q: %v", name, err)
		}
	}(inFile.Name())

	if _, err := io.Copy(inFile, bytes.NewReader(data)); err != nil {
		_ = inFile.Close()
		return nil, fmt.Errorf("transcoder: failed to write temp input PDF: %w", err)
	}
	_ = inFile.Close()

	outFile, err := os.CreateTemp("", "pdf_out_*.pdf")
	if err != nil {
		return nil, fmt.Errorf("transcoder: could not create temp output PDF: %w", err)
	}
	_ = outFile.Close()
	defer func(name string) {
		if err := os.Remove(name); err != nil {
			log.Printf("failed to remove out temp file %q: %v", name, err)
		}
	}(outFile.Name())

	if err := t.pdfOpt.OptimizeFile(inFile.Name(), outFile.Name()); err != nil {
		return nil, fmt.Errorf("transcoder: pdfcpu optimization failed: %w", err)
	}

	out, err := os.ReadFile(outFile.Name())
	if err != nil {
		return nil, fmt.Errorf("transcoder: failed to read optimized PDF: %w", err)
	}
	return out, nil
}
