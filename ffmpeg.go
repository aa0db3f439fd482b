package renderers

import (
	"errors"
	"fmt"
	"time"
)

// ErrLibraryNotFound is returned when libavcodec cannot be loaded.
var ErrLibraryNotFound = errors.New("ffmpeg library not available")

// FFmpegLibrary describes a loaded libavcodec.
type FFmpegLibrary struct {
	Path    string // Path the library was loaded from
	Version uint32 // avcodec_version(): major<<16 | minor<<8 | micro
	License string // avcodec_license()

	// findDecoder reports whether the library has a decoder registered
	// under the given name. Backed by avcodec_find_decoder_by_name.
	findDecoder func(name string) bool
}

// HasDecoder returns true if libavcodec has a decoder named name
// (e.g. "h264", "flac").
func (l *FFmpegLibrary) HasDecoder(name string) bool {
	if name == "" || l.findDecoder == nil {
		return false
	}
	return l.findDecoder(name)
}

// VersionString formats Version as "major.minor.micro".
func (l *FFmpegLibrary) VersionString() string {
	return fmt.Sprintf("%d.%d.%d", l.Version>>16, (l.Version>>8)&0xff, l.Version&0xff)
}

// FFmpegBuilder is the default FallbackBuilder. It loads libavcodec on first
// use; every build call fails if the library cannot be loaded.
type FFmpegBuilder struct {
	load func() (*FFmpegLibrary, error)
}

var _ FallbackBuilder = (*FFmpegBuilder)(nil)

// NewFFmpegBuilder returns a builder backed by the system libavcodec.
// See FFMPEG_LIB_PATH and MEDIA_SDK_LIB_PATH for search path overrides.
func NewFFmpegBuilder() *FFmpegBuilder {
	return &FFmpegBuilder{load: loadFFmpeg}
}

func (b *FFmpegBuilder) library() (*FFmpegLibrary, error) {
	lib, err := b.load()
	if err != nil {
		return nil, err
	}
	setProviderAvailable(ProviderFFmpeg)
	return lib, nil
}

// BuildAudioRenderer returns an FFmpegAudioRenderer.
func (b *FFmpegBuilder) BuildAudioRenderer(params AudioParams) (Renderer, error) {
	lib, err := b.library()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg audio renderer: %w", err)
	}
	return &FFmpegAudioRenderer{
		lib:    lib,
		sink:   params.Sink,
		events: params.Events,
	}, nil
}

// BuildVideoRenderer returns an FFmpegVideoRenderer. HEVC is only accepted
// when opts.EnableAltProfile is set.
func (b *FFmpegBuilder) BuildVideoRenderer(params VideoParams, opts VideoFallbackOptions) (Renderer, error) {
	lib, err := b.library()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg video renderer: %w", err)
	}
	return &FFmpegVideoRenderer{
		lib:              lib,
		events:           params.Events,
		joiningTime:      params.AllowedJoiningTime,
		maxDroppedFrames: params.maxDroppedFrames(),
		altProfile:       opts.EnableAltProfile,
	}, nil
}

// FFmpegAudioRenderer is the software fallback audio candidate.
type FFmpegAudioRenderer struct {
	lib    *FFmpegLibrary
	sink   AudioSink
	events AudioEventListener
}

func (r *FFmpegAudioRenderer) Name() string         { return "FFmpegAudioRenderer" }
func (r *FFmpegAudioRenderer) TrackType() TrackType { return TrackTypeAudio }
func (r *FFmpegAudioRenderer) Provider() Provider   { return ProviderFFmpeg }

// Library returns the libavcodec backing this renderer.
func (r *FFmpegAudioRenderer) Library() *FFmpegLibrary { return r.lib }

// Sink returns the audio output target the renderer writes to.
func (r *FFmpegAudioRenderer) Sink() AudioSink { return r.sink }

// SupportsFormat returns true if the loaded libavcodec can decode mimeType.
func (r *FFmpegAudioRenderer) SupportsFormat(mimeType string) bool {
	codec := AudioCodecFromMimeType(mimeType)
	return codec != AudioCodecUnknown && r.lib.HasDecoder(codec.FFmpegName())
}

// DecoderName returns the name of the decoder used for mimeType, formatted
// as "ffmpeg<version>-<codec>", or "" if the format is not supported.
func (r *FFmpegAudioRenderer) DecoderName(mimeType string) string {
	if !r.SupportsFormat(mimeType) {
		return ""
	}
	return ffmpegDecoderName(r.lib, AudioCodecFromMimeType(mimeType).FFmpegName())
}

// FFmpegVideoRenderer is the software fallback video candidate.
type FFmpegVideoRenderer struct {
	lib              *FFmpegLibrary
	events           VideoEventListener
	joiningTime      time.Duration
	maxDroppedFrames int
	altProfile       bool
}

func (r *FFmpegVideoRenderer) Name() string         { return "FFmpegVideoRenderer" }
func (r *FFmpegVideoRenderer) TrackType() TrackType { return TrackTypeVideo }
func (r *FFmpegVideoRenderer) Provider() Provider   { return ProviderFFmpeg }

// Library returns the libavcodec backing this renderer.
func (r *FFmpegVideoRenderer) Library() *FFmpegLibrary { return r.lib }

// AltProfileEnabled reports whether the extended (HEVC) profile is enabled.
func (r *FFmpegVideoRenderer) AltProfileEnabled() bool { return r.altProfile }

// AllowedJoiningTime returns how long the renderer may keep rendering
// while joining a new stream.
func (r *FFmpegVideoRenderer) AllowedJoiningTime() time.Duration { return r.joiningTime }

// MaxDroppedFramesToNotify returns the dropped-frame reporting threshold.
func (r *FFmpegVideoRenderer) MaxDroppedFramesToNotify() int { return r.maxDroppedFrames }

// Codecs returns the video codecs this renderer decodes with the loaded
// library.
func (r *FFmpegVideoRenderer) Codecs() []VideoCodec {
	out := make([]VideoCodec, 0, len(videoCodecs))
	for _, c := range videoCodecs {
		if r.SupportsFormat(c.MimeType()) {
			out = append(out, c)
		}
	}
	return out
}

// SupportsFormat returns true if the loaded libavcodec can decode mimeType.
// HEVC additionally requires the alt profile.
func (r *FFmpegVideoRenderer) SupportsFormat(mimeType string) bool {
	codec := VideoCodecFromMimeType(mimeType)
	switch codec {
	case VideoCodecUnknown:
		return false
	case VideoCodecH265:
		if !r.altProfile {
			return false
		}
	}
	return r.lib.HasDecoder(codec.FFmpegName())
}

// DecoderName returns the name of the decoder used for mimeType, formatted
// as "ffmpeg<version>-<codec>", or "" if the format is not supported.
func (r *FFmpegVideoRenderer) DecoderName(mimeType string) string {
	if !r.SupportsFormat(mimeType) {
		return ""
	}
	return ffmpegDecoderName(r.lib, VideoCodecFromMimeType(mimeType).FFmpegName())
}

func ffmpegDecoderName(lib *FFmpegLibrary, codecName string) string {
	return "ffmpeg" + lib.VersionString() + "-" + codecName
}
