// Package renderers builds the ordered decode-renderer candidate lists a
// media playback engine tries for each track type.
//
// Every list starts from one platform (hardware codec) renderer. A software
// fallback renderer backed by FFmpeg's libavcodec is added depending on the
// requested ExtensionMode and the factory's Flags:
//
//	mode    audio                                   video
//	off     platform, fallback (platform alone      platform
//	        with FlagDisableFallbackAudio)
//	on      platform, fallback                      platform, fallback
//	prefer  fallback, platform                      fallback, platform
//
// # Configuration
//
// Flags are assembled with a ConfigBuilder and fixed when the
// RendererFactory is created:
//
//	cfg := renderers.NewConfigBuilder().
//		SetFlags(renderers.FlagEnableAltProfile).
//		AddFlags(renderers.FlagDisableFallbackAudio).
//		Build()
//	factory := renderers.NewRendererFactory(cfg, renderers.FactoryOptions{})
//
// # Native Libraries
//
// libavcodec is loaded with purego on the first fallback build. Set
// FFMPEG_LIB_PATH to the library file, or MEDIA_SDK_LIB_PATH to the
// directory containing it. If the library cannot be loaded, build calls
// that need the fallback renderer fail with ErrFallbackInstantiation.
package renderers
