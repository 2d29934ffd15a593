package port

// Transcoder rewrites uploaded bytes before transfer: images are resized and
// re-encoded, PDFs losslessly optimised, anything else passed through. It
// returns the new bytes and the (possibly changed) media kind.
type Transcoder interface {
	Transcode(mediaKind string, data []byte) ([]byte, string, error)
}
