package mock

// Transcoder implements the transcoder for tests. When Out is nil the
// input passes through unchanged.
type Transcoder struct {
	Out     []byte
	OutKind string
	Err     error

	Called bool
	InKind string
	InData []byte
}

func (m *Transcoder) Transcode(mediaKind string, data []byte) ([]byte, string, error) {
	m.Called = true
	m.InKind = mediaKind
	m.InData = data
	if m.Err != nil {
		return nil, "", m.Err
	}
	if m.Out == nil {
		return data, mediaKind, nil
	}
	return m.Out, m.OutKind, nil
}
