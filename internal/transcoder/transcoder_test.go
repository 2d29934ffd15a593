package transcoder

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"testing"
)

// fakeEncoder records the image it was asked to encode.
type fakeEncoder struct {
	encoded   image.Image
	decodeErr error
	encodeErr error
}

func (f *fakeEncoder) Encode(img image.Image, quality int, w io.Writer) error {
	f.encoded = img
	if f.encodeErr != nil {
		return f.encodeErr
	}
	_, err := w.Write([]byte("webp-bytes"))
	return err
}

func (f *fakeEncoder) Decode(r io.Reader) (image.Image, string, error) {
	if f.decodeErr != nil {
		return nil, "", f.decodeErr
	}
	return image.Decode(r)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestTranscode_ImageReencodedAsWebP(t *testing.T) {
	enc := &fakeEncoder{}
	tr := NewFileTranscoder(enc, NewPDFOptimizer(), 100)

	out, kind, err := tr.Transcode("image/png", pngBytes(t, 50, 40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != "image/webp" {
		t.Errorf("kind = %q; want image/webp", kind)
	}
	if string(out) != "webp-bytes" {
		t.Errorf("out = %q; want encoder output", out)
	}
	if got := enc.encoded.Bounds().Dx(); got != 50 {
		t.Errorf("width = %d; want untouched 50 (below max)", got)
	}
}

func TestTranscode_ImageWidthBounded(t *testing.T) {
	enc := &fakeEncoder{}
	tr := NewFileTranscoder(enc, NewPDFOptimizer(), 100)

	if _, _, err := tr.Transcode("image/png", pngBytes(t, 400, 200)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := enc.encoded.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("resized to %dx%d; want 100x50", b.Dx(), b.Dy())
	}
}

func TestTranscode_CorruptImageFails(t *testing.T) {
	tr := NewFileTranscoder(NewWebPEncoder(), NewPDFOptimizer(), 100)

	_, _, err := tr.Transcode("image/jpeg", []byte("not an image"))
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestTranscode_EncodeErrorSurfaces(t *testing.T) {
	enc := &fakeEncoder{encodeErr: errors.New("encoder broken")}
	tr := NewFileTranscoder(enc, NewPDFOptimizer(), 100)

	_, _, err := tr.Transcode("image/png", pngBytes(t, 10, 10))
	if err == nil {
		t.Fatal("expected encode error, got nil")
	}
}

func TestTranscode_UnknownKindPassthrough(t *testing.T) {
	tr := NewFileTranscoder(NewWebPEncoder(), NewPDFOptimizer(), 100)

	in := []byte("# notes\nplain text")
	out, kind, err := tr.Transcode("text/markdown", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != "text/markdown" {
		t.Errorf("kind = %q; want unchanged", kind)
	}
	if !bytes.Equal(out, in) {
		t.Error("passthrough should return the bytes untouched")
	}
}
