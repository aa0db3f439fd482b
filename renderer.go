package renderers

import "time"

// DefaultMaxDroppedFramesToNotify is the number of dropped video frames
// after which a video renderer reports drops to its event listener.
const DefaultMaxDroppedFramesToNotify = 50

// TrackType is the media stream category a renderer handles.
type TrackType int

const (
	TrackTypeAudio TrackType = iota
	TrackTypeVideo
)

func (t TrackType) String() string {
	switch t {
	case TrackTypeAudio:
		return "audio"
	case TrackTypeVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Renderer is a decode-renderer candidate handed to the host engine.
// The host tries candidates in list order until one accepts the format.
type Renderer interface {
	// Name returns a stable, human-readable renderer name.
	Name() string

	// TrackType returns the track type this renderer decodes.
	TrackType() TrackType

	// Provider returns the implementation backing this renderer.
	Provider() Provider

	// SupportsFormat reports whether the renderer accepts the given
	// sample MIME type.
	SupportsFormat(mimeType string) bool
}

// CodecSelector is the host's strategy for choosing platform codecs.
type CodecSelector interface {
	SupportsMimeType(mimeType string) bool
}

// AudioSink is the host's audio output target.
type AudioSink interface {
	Name() string
}

// AudioEventListener receives audio renderer events from the host's
// event-delivery mechanism. Event delivery is not performed by this package.
type AudioEventListener interface{}

// VideoEventListener receives video renderer events from the host's
// event-delivery mechanism.
type VideoEventListener interface{}

// AudioParams carries the host context for one audio build call.
type AudioParams struct {
	Mode                  ExtensionMode
	CodecSelector         CodecSelector // nil = platform renderer accepts nothing
	EnableDecoderFallback bool          // Allow the platform path to fall back between codecs
	Sink                  AudioSink
	Events                AudioEventListener
}

// VideoParams carries the host context for one video build call.
type VideoParams struct {
	Mode                     ExtensionMode
	CodecSelector            CodecSelector
	EnableDecoderFallback    bool
	Events                   VideoEventListener
	AllowedJoiningTime       time.Duration
	MaxDroppedFramesToNotify int // 0 = DefaultMaxDroppedFramesToNotify
}

func (p VideoParams) maxDroppedFrames() int {
	if p.MaxDroppedFramesToNotify <= 0 {
		return DefaultMaxDroppedFramesToNotify
	}
	return p.MaxDroppedFramesToNotify
}

// VideoFallbackOptions are feature bits passed to the fallback video builder.
type VideoFallbackOptions struct {
	EnableAltProfile bool // Enable the extended (HEVC) profile
}

// PlatformBuilder constructs the platform renderer for each track type.
// Construction cannot fail.
type PlatformBuilder interface {
	BuildAudioRenderer(params AudioParams) Renderer
	BuildVideoRenderer(params VideoParams) Renderer
}

// FallbackBuilder constructs the software fallback renderer for each track
// type. Construction fails if the codec library cannot be initialized.
type FallbackBuilder interface {
	BuildAudioRenderer(params AudioParams) (Renderer, error)
	BuildVideoRenderer(params VideoParams, opts VideoFallbackOptions) (Renderer, error)
}
