package renderers

import (
	"errors"
	"fmt"

	"github.com/pion/logging"
)

// ErrFallbackInstantiation is returned when the fallback renderer could not
// be constructed. The build call that returns it produces no candidates.
var ErrFallbackInstantiation = errors.New("error instantiating ffmpeg extension")

// Composition is the set of renderers a build call produces.
type Composition int

const (
	CompositionPlatformOnly         Composition = iota // Platform renderer alone
	CompositionPlatformPlusFallback                    // Platform and fallback renderers
)

func (c Composition) String() string {
	switch c {
	case CompositionPlatformOnly:
		return "platform-only"
	case CompositionPlatformPlusFallback:
		return "platform+fallback"
	default:
		return "unknown"
	}
}

// audioComposition decides the audio candidates. ExtensionModeOff only
// drops the fallback when FlagDisableFallbackAudio is also set.
func audioComposition(mode ExtensionMode, flags Flags) Composition {
	if mode == ExtensionModeOff && flags.Has(FlagDisableFallbackAudio) {
		return CompositionPlatformOnly
	}
	return CompositionPlatformPlusFallback
}

// videoComposition decides the video candidates. Flags are not consulted.
func videoComposition(mode ExtensionMode) Composition {
	if mode == ExtensionModeOff {
		return CompositionPlatformOnly
	}
	return CompositionPlatformPlusFallback
}

// FactoryOptions configures the collaborators of a RendererFactory.
// Zero fields select the defaults.
type FactoryOptions struct {
	Platform      PlatformBuilder       // Default: HardwareBuilder
	Fallback      FallbackBuilder       // Default: NewFFmpegBuilder()
	LoggerFactory logging.LoggerFactory // Default: logging.NewDefaultLoggerFactory()
}

// RendererFactory builds the ordered renderer candidate lists the host
// engine tries for each track type.
//
// The configuration is fixed at construction, so a factory may serve
// concurrent audio and video build calls.
type RendererFactory struct {
	cfg      Config
	platform PlatformBuilder
	fallback FallbackBuilder
	log      logging.LeveledLogger
}

// NewRendererFactory creates a factory with the given configuration.
func NewRendererFactory(cfg Config, opts FactoryOptions) *RendererFactory {
	if opts.Platform == nil {
		opts.Platform = HardwareBuilder{}
	}
	if opts.Fallback == nil {
		opts.Fallback = NewFFmpegBuilder()
	}
	if opts.LoggerFactory == nil {
		opts.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &RendererFactory{
		cfg:      cfg,
		platform: opts.Platform,
		fallback: opts.Fallback,
		log:      opts.LoggerFactory.NewLogger("renderers"),
	}
}

// Flags returns the factory's effective flags.
func (f *RendererFactory) Flags() Flags { return f.cfg.Flags() }

// BuildAudioRenderers appends the audio candidates to out and returns the
// resulting list. The platform renderer is always added first. On a
// fallback construction failure it returns nil and an error wrapping
// ErrFallbackInstantiation, and out is left untouched.
func (f *RendererFactory) BuildAudioRenderers(params AudioParams, out []Renderer) ([]Renderer, error) {
	built := []Renderer{f.platform.BuildAudioRenderer(params)}

	comp := audioComposition(params.Mode, f.cfg.Flags())
	f.log.Debugf("audio renderers: mode=%s flags=%s composition=%s", params.Mode, f.cfg.Flags(), comp)
	if comp == CompositionPlatformOnly {
		return append(out, built...), nil
	}

	r, err := f.fallback.BuildAudioRenderer(params)
	if err != nil {
		f.log.Errorf("audio fallback renderer failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrFallbackInstantiation, err)
	}

	mode := params.Mode
	if mode == ExtensionModeOff {
		mode = ExtensionModeOn
	}
	built = insertRenderer(built, r, mode)
	f.log.Infof("Loaded %s.", r.Name())
	return append(out, built...), nil
}

// BuildVideoRenderers appends the video candidates to out and returns the
// resulting list. ExtensionModeOff always yields the platform renderer alone.
// Errors are reported as for BuildAudioRenderers.
func (f *RendererFactory) BuildVideoRenderers(params VideoParams, out []Renderer) ([]Renderer, error) {
	built := []Renderer{f.platform.BuildVideoRenderer(params)}

	comp := videoComposition(params.Mode)
	f.log.Debugf("video renderers: mode=%s flags=%s composition=%s", params.Mode, f.cfg.Flags(), comp)
	if comp == CompositionPlatformOnly {
		return append(out, built...), nil
	}

	opts := VideoFallbackOptions{EnableAltProfile: f.cfg.Flags().Has(FlagEnableAltProfile)}
	r, err := f.fallback.BuildVideoRenderer(params, opts)
	if err != nil {
		f.log.Errorf("video fallback renderer failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrFallbackInstantiation, err)
	}

	built = insertRenderer(built, r, params.Mode)
	f.log.Infof("Loaded %s.", r.Name())
	return append(out, built...), nil
}

// insertRenderer places r at the policy index for mode, appending when the
// policy is undefined for mode. out holds only this call's candidates; the
// caller's list is joined on success.
func insertRenderer(out []Renderer, r Renderer, mode ExtensionMode) []Renderer {
	idx, ok := InsertionIndex(len(out), mode)
	if !ok {
		idx = len(out)
	}
	out = append(out, nil)
	copy(out[idx+1:], out[idx:])
	out[idx] = r
	return out
}
