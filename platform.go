package renderers

import "time"

// HardwareBuilder is the default PlatformBuilder. Its renderers decode on
// the platform codecs chosen by the host's CodecSelector.
type HardwareBuilder struct{}

var _ PlatformBuilder = HardwareBuilder{}

// BuildAudioRenderer returns a HardwareAudioRenderer for params.
func (HardwareBuilder) BuildAudioRenderer(params AudioParams) Renderer {
	return &HardwareAudioRenderer{
		selector:        params.CodecSelector,
		decoderFallback: params.EnableDecoderFallback,
		sink:            params.Sink,
		events:          params.Events,
	}
}

// BuildVideoRenderer returns a HardwareVideoRenderer for params.
func (HardwareBuilder) BuildVideoRenderer(params VideoParams) Renderer {
	return &HardwareVideoRenderer{
		selector:         params.CodecSelector,
		decoderFallback:  params.EnableDecoderFallback,
		events:           params.Events,
		joiningTime:      params.AllowedJoiningTime,
		maxDroppedFrames: params.maxDroppedFrames(),
	}
}

// HardwareAudioRenderer is the platform audio candidate.
type HardwareAudioRenderer struct {
	selector        CodecSelector
	decoderFallback bool
	sink            AudioSink
	events          AudioEventListener
}

func (r *HardwareAudioRenderer) Name() string         { return "HardwareAudioRenderer" }
func (r *HardwareAudioRenderer) TrackType() TrackType { return TrackTypeAudio }
func (r *HardwareAudioRenderer) Provider() Provider   { return ProviderPlatform }

// Sink returns the audio output target the renderer writes to.
func (r *HardwareAudioRenderer) Sink() AudioSink { return r.sink }

// DecoderFallback reports whether the platform may fall back between codecs.
func (r *HardwareAudioRenderer) DecoderFallback() bool { return r.decoderFallback }

// SupportsFormat delegates to the host's codec selector.
func (r *HardwareAudioRenderer) SupportsFormat(mimeType string) bool {
	return r.selector != nil && r.selector.SupportsMimeType(mimeType)
}

// HardwareVideoRenderer is the platform video candidate.
type HardwareVideoRenderer struct {
	selector         CodecSelector
	decoderFallback  bool
	events           VideoEventListener
	joiningTime      time.Duration
	maxDroppedFrames int
}

func (r *HardwareVideoRenderer) Name() string         { return "HardwareVideoRenderer" }
func (r *HardwareVideoRenderer) TrackType() TrackType { return TrackTypeVideo }
func (r *HardwareVideoRenderer) Provider() Provider   { return ProviderPlatform }

// AllowedJoiningTime returns how long the renderer may keep rendering
// while joining a new stream.
func (r *HardwareVideoRenderer) AllowedJoiningTime() time.Duration { return r.joiningTime }

// MaxDroppedFramesToNotify returns the dropped-frame reporting threshold.
func (r *HardwareVideoRenderer) MaxDroppedFramesToNotify() int { return r.maxDroppedFrames }

// DecoderFallback reports whether the platform may fall back between codecs.
func (r *HardwareVideoRenderer) DecoderFallback() bool { return r.decoderFallback }

// SupportsFormat delegates to the host's codec selector.
func (r *HardwareVideoRenderer) SupportsFormat(mimeType string) bool {
	return r.selector != nil && r.selector.SupportsMimeType(mimeType)
}
