package renderers

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	name       string
	track      TrackType
	provider   Provider
	altProfile bool
}

func (r *fakeRenderer) Name() string                 { return r.name }
func (r *fakeRenderer) TrackType() TrackType         { return r.track }
func (r *fakeRenderer) Provider() Provider           { return r.provider }
func (r *fakeRenderer) SupportsFormat(_ string) bool { return true }

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.calls = append(l.calls, call)
	l.mu.Unlock()
}

type fakePlatform struct {
	log *callLog
}

func (p fakePlatform) BuildAudioRenderer(AudioParams) Renderer {
	p.log.add("platform")
	return &fakeRenderer{name: "platform", track: TrackTypeAudio, provider: ProviderPlatform}
}

func (p fakePlatform) BuildVideoRenderer(VideoParams) Renderer {
	p.log.add("platform")
	return &fakeRenderer{name: "platform", track: TrackTypeVideo, provider: ProviderPlatform}
}

type fakeFallback struct {
	err        error
	log        *callLog
	audioCalls atomic.Int32
	videoCalls atomic.Int32
}

func (f *fakeFallback) BuildAudioRenderer(AudioParams) (Renderer, error) {
	f.audioCalls.Add(1)
	f.log.add("fallback")
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRenderer{name: "fallback", track: TrackTypeAudio, provider: ProviderFFmpeg}, nil
}

func (f *fakeFallback) BuildVideoRenderer(_ VideoParams, opts VideoFallbackOptions) (Renderer, error) {
	f.videoCalls.Add(1)
	f.log.add("fallback")
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRenderer{name: "fallback", track: TrackTypeVideo, provider: ProviderFFmpeg, altProfile: opts.EnableAltProfile}, nil
}

func quietLoggerFactory() logging.LoggerFactory {
	lf := logging.NewDefaultLoggerFactory()
	lf.DefaultLogLevel = logging.LogLevelDisabled
	return lf
}

func newTestFactory(flags Flags, fallback FallbackBuilder, log *callLog) *RendererFactory {
	cfg := NewConfigBuilder().SetFlags(flags).Build()
	return NewRendererFactory(cfg, FactoryOptions{
		Platform:      fakePlatform{log: log},
		Fallback:      fallback,
		LoggerFactory: quietLoggerFactory(),
	})
}

func names(list []Renderer) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Name()
	}
	return out
}

var allFlagSets = []Flags{
	0,
	FlagEnableAltProfile,
	FlagDisableFallbackAudio,
	CombineFlags(FlagEnableAltProfile, FlagDisableFallbackAudio),
}

var allModes = []ExtensionMode{ExtensionModeOff, ExtensionModeOn, ExtensionModePrefer}

func TestRendererFactory_PlatformAddedFirst(t *testing.T) {
	for _, flags := range allFlagSets {
		for _, mode := range allModes {
			t.Run(flags.String()+"/"+mode.String(), func(t *testing.T) {
				t.Run("audio", func(t *testing.T) {
					log := &callLog{}
					f := newTestFactory(flags, &fakeFallback{log: log}, log)
					list, err := f.BuildAudioRenderers(AudioParams{Mode: mode}, nil)
					require.NoError(t, err)
					require.Equal(t, "platform", log.calls[0])
					require.Contains(t, names(list), "platform")
				})
				t.Run("video", func(t *testing.T) {
					log := &callLog{}
					f := newTestFactory(flags, &fakeFallback{log: log}, log)
					list, err := f.BuildVideoRenderers(VideoParams{Mode: mode}, nil)
					require.NoError(t, err)
					require.Equal(t, "platform", log.calls[0])
					require.Contains(t, names(list), "platform")
				})
			})
		}
	}
}

func TestRendererFactory_BuildAudioRenderers(t *testing.T) {
	tests := []struct {
		name          string
		mode          ExtensionMode
		flags         Flags
		want          []string
		wantFallbacks int32
	}{
		{"on", ExtensionModeOn, 0, []string{"platform", "fallback"}, 1},
		{"on alt-profile", ExtensionModeOn, FlagEnableAltProfile, []string{"platform", "fallback"}, 1},
		{"prefer", ExtensionModePrefer, 0, []string{"fallback", "platform"}, 1},
		{"prefer disable-fallback-audio", ExtensionModePrefer, FlagDisableFallbackAudio, []string{"fallback", "platform"}, 1},
		{"on disable-fallback-audio", ExtensionModeOn, FlagDisableFallbackAudio, []string{"platform", "fallback"}, 1},
		{"off disable-fallback-audio", ExtensionModeOff, FlagDisableFallbackAudio, []string{"platform"}, 0},
		{"off all flags", ExtensionModeOff, CombineFlags(FlagEnableAltProfile, FlagDisableFallbackAudio), []string{"platform"}, 0},
		// Audio keeps the fallback in off mode unless explicitly disabled.
		{"off", ExtensionModeOff, 0, []string{"platform", "fallback"}, 1},
		{"off alt-profile", ExtensionModeOff, FlagEnableAltProfile, []string{"platform", "fallback"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeFallback{}
			f := newTestFactory(tt.flags, fb, nil)

			list, err := f.BuildAudioRenderers(AudioParams{Mode: tt.mode}, nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, names(list))
			require.Equal(t, tt.wantFallbacks, fb.audioCalls.Load())
			for _, r := range list {
				require.Equal(t, TrackTypeAudio, r.TrackType())
			}
		})
	}
}

func TestRendererFactory_BuildVideoRenderers(t *testing.T) {
	tests := []struct {
		name        string
		mode        ExtensionMode
		flags       Flags
		want        []string
		wantAltProf bool
	}{
		{"off", ExtensionModeOff, 0, []string{"platform"}, false},
		{"off alt-profile", ExtensionModeOff, FlagEnableAltProfile, []string{"platform"}, false},
		{"off disable-fallback-audio", ExtensionModeOff, FlagDisableFallbackAudio, []string{"platform"}, false},
		{"on", ExtensionModeOn, 0, []string{"platform", "fallback"}, false},
		{"on alt-profile", ExtensionModeOn, FlagEnableAltProfile, []string{"platform", "fallback"}, true},
		{"prefer", ExtensionModePrefer, 0, []string{"fallback", "platform"}, false},
		{"prefer alt-profile", ExtensionModePrefer, FlagEnableAltProfile, []string{"fallback", "platform"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeFallback{}
			f := newTestFactory(tt.flags, fb, nil)

			list, err := f.BuildVideoRenderers(VideoParams{Mode: tt.mode}, nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, names(list))

			if tt.mode == ExtensionModeOff {
				require.Zero(t, fb.videoCalls.Load())
				return
			}
			for _, r := range list {
				if fr := r.(*fakeRenderer); fr.provider == ProviderFFmpeg {
					require.Equal(t, tt.wantAltProf, fr.altProfile)
				}
			}
		})
	}
}

func TestRendererFactory_FallbackFailure(t *testing.T) {
	cause := errors.New("codec library init failed")

	for _, mode := range []ExtensionMode{ExtensionModeOn, ExtensionModePrefer} {
		t.Run("video/"+mode.String(), func(t *testing.T) {
			f := newTestFactory(FlagEnableAltProfile, &fakeFallback{err: cause}, nil)
			list, err := f.BuildVideoRenderers(VideoParams{Mode: mode}, nil)
			require.Nil(t, list)
			require.ErrorIs(t, err, ErrFallbackInstantiation)
			require.ErrorIs(t, err, cause)
		})
	}

	for _, mode := range allModes {
		t.Run("audio/"+mode.String(), func(t *testing.T) {
			f := newTestFactory(0, &fakeFallback{err: cause}, nil)
			list, err := f.BuildAudioRenderers(AudioParams{Mode: mode}, nil)
			require.Nil(t, list)
			require.ErrorIs(t, err, ErrFallbackInstantiation)
			require.ErrorIs(t, err, cause)
		})
	}

	t.Run("audio suppressed", func(t *testing.T) {
		f := newTestFactory(FlagDisableFallbackAudio, &fakeFallback{err: cause}, nil)
		list, err := f.BuildAudioRenderers(AudioParams{Mode: ExtensionModeOff}, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"platform"}, names(list))
	})

	t.Run("video off", func(t *testing.T) {
		f := newTestFactory(0, &fakeFallback{err: cause}, nil)
		list, err := f.BuildVideoRenderers(VideoParams{Mode: ExtensionModeOff}, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"platform"}, names(list))
	})
}

func TestRendererFactory_FallbackFailureLeavesCallerList(t *testing.T) {
	cause := errors.New("codec library init failed")
	existing := &fakeRenderer{name: "existing"}
	f := newTestFactory(0, &fakeFallback{err: cause}, nil)

	out := make([]Renderer, 1, 4)
	out[0] = existing
	list, err := f.BuildVideoRenderers(VideoParams{Mode: ExtensionModeOn}, out)
	require.ErrorIs(t, err, ErrFallbackInstantiation)
	require.Nil(t, list)
	require.Equal(t, []Renderer{existing, nil, nil, nil}, out[:cap(out)])

	list, err = f.BuildAudioRenderers(AudioParams{Mode: ExtensionModePrefer}, out)
	require.ErrorIs(t, err, ErrFallbackInstantiation)
	require.Nil(t, list)
	require.Equal(t, []Renderer{existing, nil, nil, nil}, out[:cap(out)])
}

func TestRendererFactory_ExistingCandidates(t *testing.T) {
	existing := &fakeRenderer{name: "existing", track: TrackTypeVideo}

	f := newTestFactory(0, &fakeFallback{}, nil)

	list, err := f.BuildVideoRenderers(VideoParams{Mode: ExtensionModePrefer}, []Renderer{existing})
	require.NoError(t, err)
	require.Equal(t, []string{"existing", "fallback", "platform"}, names(list))

	list, err = f.BuildVideoRenderers(VideoParams{Mode: ExtensionModeOn}, []Renderer{existing})
	require.NoError(t, err)
	require.Equal(t, []string{"existing", "platform", "fallback"}, names(list))
}

func TestRendererFactory_AddFlagsMatchesSetFlags(t *testing.T) {
	for _, a := range allFlagSets {
		for _, b := range allFlagSets {
			added := NewConfigBuilder().AddFlags(a).AddFlags(b).Build()
			set := NewConfigBuilder().SetFlags(CombineFlags(a, b)).Build()
			require.Equal(t, set, added)

			for _, mode := range allModes {
				fa := newTestFactory(added.Flags(), &fakeFallback{}, nil)
				fs := newTestFactory(set.Flags(), &fakeFallback{}, nil)

				la, errA := fa.BuildAudioRenderers(AudioParams{Mode: mode}, nil)
				ls, errS := fs.BuildAudioRenderers(AudioParams{Mode: mode}, nil)
				require.NoError(t, errA)
				require.NoError(t, errS)
				require.Equal(t, names(ls), names(la))
			}
		}
	}
}

func TestRendererFactory_ConcurrentBuilds(t *testing.T) {
	fb := &fakeFallback{}
	f := newTestFactory(FlagEnableAltProfile, fb, nil)

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			list, err := f.BuildAudioRenderers(AudioParams{Mode: ExtensionModePrefer}, nil)
			if err == nil && len(list) != 2 {
				err = errors.New("unexpected audio list length")
			}
			errs <- err
		}()
		go func() {
			defer wg.Done()
			list, err := f.BuildVideoRenderers(VideoParams{Mode: ExtensionModeOn}, nil)
			if err == nil && len(list) != 2 {
				err = errors.New("unexpected video list length")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(n), fb.audioCalls.Load())
	require.Equal(t, int32(n), fb.videoCalls.Load())
}

func TestRendererFactory_Defaults(t *testing.T) {
	f := NewRendererFactory(NewConfigBuilder().Build(), FactoryOptions{})
	require.IsType(t, HardwareBuilder{}, f.platform)
	require.IsType(t, &FFmpegBuilder{}, f.fallback)
	require.NotNil(t, f.log)
	require.Equal(t, Flags(0), f.Flags())
}

func TestRendererFactory_LogsLoadedRenderer(t *testing.T) {
	var buf bytes.Buffer
	lf := logging.NewDefaultLoggerFactory()
	lf.DefaultLogLevel = logging.LogLevelInfo
	lf.Writer = &buf

	f := NewRendererFactory(NewConfigBuilder().Build(), FactoryOptions{
		Platform:      fakePlatform{},
		Fallback:      &fakeFallback{},
		LoggerFactory: lf,
	})

	_, err := f.BuildAudioRenderers(AudioParams{Mode: ExtensionModeOn}, nil)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Loaded fallback.")
}

func TestComposition(t *testing.T) {
	require.Equal(t, CompositionPlatformOnly, audioComposition(ExtensionModeOff, FlagDisableFallbackAudio))
	require.Equal(t, CompositionPlatformPlusFallback, audioComposition(ExtensionModeOff, 0))
	require.Equal(t, CompositionPlatformPlusFallback, audioComposition(ExtensionModeOn, FlagDisableFallbackAudio))
	require.Equal(t, CompositionPlatformOnly, videoComposition(ExtensionModeOff))
	require.Equal(t, CompositionPlatformPlusFallback, videoComposition(ExtensionModePrefer))

	require.Equal(t, "platform-only", CompositionPlatformOnly.String())
	require.Equal(t, "platform+fallback", CompositionPlatformPlusFallback.String())
	require.Equal(t, "unknown", Composition(9).String())
}
