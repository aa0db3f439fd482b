package renderers

import (
	"strings"

	"github.com/pion/webrtc/v4"
)

// VideoCodec identifies the video codec type.
type VideoCodec int

const (
	VideoCodecUnknown VideoCodec = iota
	VideoCodecVP8
	VideoCodecVP9
	VideoCodecH264
	VideoCodecH265
	VideoCodecAV1
)

var videoCodecs = []VideoCodec{VideoCodecVP8, VideoCodecVP9, VideoCodecH264, VideoCodecH265, VideoCodecAV1}

func (c VideoCodec) String() string {
	switch c {
	case VideoCodecVP8:
		return "VP8"
	case VideoCodecVP9:
		return "VP9"
	case VideoCodecH264:
		return "H264"
	case VideoCodecH265:
		return "H265"
	case VideoCodecAV1:
		return "AV1"
	default:
		return "Unknown"
	}
}

// MimeType returns the MIME type for this codec.
func (c VideoCodec) MimeType() string {
	switch c {
	case VideoCodecVP8:
		return webrtc.MimeTypeVP8
	case VideoCodecVP9:
		return webrtc.MimeTypeVP9
	case VideoCodecH264:
		return webrtc.MimeTypeH264
	case VideoCodecH265:
		return webrtc.MimeTypeH265
	case VideoCodecAV1:
		return webrtc.MimeTypeAV1
	default:
		return ""
	}
}

// FFmpegName returns the libavcodec decoder name for this codec.
func (c VideoCodec) FFmpegName() string {
	switch c {
	case VideoCodecVP8:
		return "vp8"
	case VideoCodecVP9:
		return "vp9"
	case VideoCodecH264:
		return "h264"
	case VideoCodecH265:
		return "hevc"
	case VideoCodecAV1:
		return "av1"
	default:
		return ""
	}
}

// VideoCodecFromMimeType maps a MIME type to a VideoCodec. Matching is
// case-insensitive; unknown types yield VideoCodecUnknown.
func VideoCodecFromMimeType(mimeType string) VideoCodec {
	for _, c := range videoCodecs {
		if strings.EqualFold(c.MimeType(), mimeType) {
			return c
		}
	}
	return VideoCodecUnknown
}

// AudioCodec identifies the audio codec type.
type AudioCodec int

const (
	AudioCodecUnknown AudioCodec = iota
	AudioCodecOpus
	AudioCodecG711A // A-law (PCMA)
	AudioCodecG711U // μ-law (PCMU)
	AudioCodecAAC
	AudioCodecMP3
	AudioCodecFLAC
	AudioCodecAC3
	AudioCodecEAC3
	AudioCodecVorbis
)

var audioCodecs = []AudioCodec{
	AudioCodecOpus, AudioCodecG711A, AudioCodecG711U, AudioCodecAAC, AudioCodecMP3,
	AudioCodecFLAC, AudioCodecAC3, AudioCodecEAC3, AudioCodecVorbis,
}

func (c AudioCodec) String() string {
	switch c {
	case AudioCodecOpus:
		return "Opus"
	case AudioCodecG711A:
		return "PCMA"
	case AudioCodecG711U:
		return "PCMU"
	case AudioCodecAAC:
		return "AAC"
	case AudioCodecMP3:
		return "MP3"
	case AudioCodecFLAC:
		return "FLAC"
	case AudioCodecAC3:
		return "AC3"
	case AudioCodecEAC3:
		return "EAC3"
	case AudioCodecVorbis:
		return "Vorbis"
	default:
		return "Unknown"
	}
}

// MimeType returns the MIME type for this codec.
func (c AudioCodec) MimeType() string {
	switch c {
	case AudioCodecOpus:
		return webrtc.MimeTypeOpus
	case AudioCodecG711A:
		return webrtc.MimeTypePCMA
	case AudioCodecG711U:
		return webrtc.MimeTypePCMU
	case AudioCodecAAC:
		return "audio/mp4a-latm"
	case AudioCodecMP3:
		return "audio/mpeg"
	case AudioCodecFLAC:
		return "audio/flac"
	case AudioCodecAC3:
		return "audio/ac3"
	case AudioCodecEAC3:
		return "audio/eac3"
	case AudioCodecVorbis:
		return "audio/vorbis"
	default:
		return ""
	}
}

// FFmpegName returns the libavcodec decoder name for this codec.
func (c AudioCodec) FFmpegName() string {
	switch c {
	case AudioCodecOpus:
		return "opus"
	case AudioCodecG711A:
		return "pcm_alaw"
	case AudioCodecG711U:
		return "pcm_mulaw"
	case AudioCodecAAC:
		return "aac"
	case AudioCodecMP3:
		return "mp3"
	case AudioCodecFLAC:
		return "flac"
	case AudioCodecAC3:
		return "ac3"
	case AudioCodecEAC3:
		return "eac3"
	case AudioCodecVorbis:
		return "vorbis"
	default:
		return ""
	}
}

// AudioCodecFromMimeType maps a MIME type to an AudioCodec. Matching is
// case-insensitive; unknown types yield AudioCodecUnknown.
func AudioCodecFromMimeType(mimeType string) AudioCodec {
	for _, c := range audioCodecs {
		if strings.EqualFold(c.MimeType(), mimeType) {
			return c
		}
	}
	return AudioCodecUnknown
}
