package media

// StreamKind tells video-only and audio-only streams apart.
type StreamKind int

const (
	Video StreamKind = iota
	Audio
)

func (k StreamKind) String() string {
	if k == Audio {
		return "audio"
	}
	return "video"
}

// Codec is the normalized name of a video codec.
type Codec string

const (
	AVC  Codec = "AVC/H.264"
	HEVC Codec = "HEVC/H.265"
	AV1  Codec = "AV1"
)

// CodecOf maps provider codec ids onto codec names. Unknown ids are treated as AVC.
func CodecOf(id int) Codec {
	switch id {
	case 12:
		return HEVC
	case 13:
		return AV1
	default:
		return AVC
	}
}

// Extensions per stream kind.
const (
	ExtVideo    = ".mp4"
	ExtAudio    = ".m4a"
	ExtFallback = ".m4s"
)

// StreamDescriptor is one elementary stream candidate returned for an input.
type StreamDescriptor struct {
	Kind       StreamKind
	URL        string
	BackupURLs []string
	DurationMs int64
	Bandwidth  int64
	CodecID    int
	Codec      Codec
	Quality    int
}

// Extension returns the file extension for the stream kind.
func (s *StreamDescriptor) Extension() string {
	switch s.Kind {
	case Video:
		return ExtVideo
	case Audio:
		return ExtAudio
	default:
		return ExtFallback
	}
}

// SizeBytes estimates the stream size from its bandwidth and duration.
func (s *StreamDescriptor) SizeBytes() int64 {
	return s.Bandwidth * s.DurationMs / 8000
}

// Fragment turns the stream into an untitled fragment.
func (s *StreamDescriptor) Fragment() Fragment {
	return Fragment{
		URL:        s.URL,
		BackupURLs: s.BackupURLs,
		DurationMs: s.DurationMs,
		SizeBytes:  s.SizeBytes(),
		Extension:  s.Extension(),
	}
}
