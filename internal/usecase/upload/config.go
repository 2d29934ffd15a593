package upload

import "strings"

// image kinds the transcoder re-encodes as WebP
var imageKinds = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

func IsImageKind(mediaKind string) bool {
	_, ok := imageKinds[mediaKind]
	return ok
}

func IsPdfKind(mediaKind string) bool {
	return mediaKind == "application/pdf"
}

// withWebpExtension rewrites the file name extension after a WebP
// re-encode so the stored name matches the stored bytes.
func withWebpExtension(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i > 0 {
		return fileName[:i] + ".webp"
	}
	return fileName + ".webp"
}
