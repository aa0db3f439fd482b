package renderers

import "sync/atomic"

// Provider identifies a renderer implementation.
type Provider uint8

const (
	ProviderPlatform Provider = iota // Hardware codec path of the host platform
	ProviderFFmpeg                   // Software decoding through libavcodec
	providerCount
)

// providerMeta contains static metadata about a provider.
type providerMeta struct {
	Name     string
	Hardware bool
}

// Static metadata table - indexed by Provider.
var providerInfo = [providerCount]providerMeta{
	ProviderPlatform: {"platform", true},
	ProviderFFmpeg:   {"ffmpeg", false},
}

// Runtime availability. The platform path is assumed present; ffmpeg is
// marked available once libavcodec has been loaded.
var providerAvailable [providerCount]atomic.Bool

func init() {
	providerAvailable[ProviderPlatform].Store(true)
}

// String returns the provider name.
func (p Provider) String() string {
	if p >= providerCount {
		return "unknown"
	}
	return providerInfo[p].Name
}

// Hardware returns true if the provider decodes on a hardware codec.
func (p Provider) Hardware() bool {
	if p >= providerCount {
		return false
	}
	return providerInfo[p].Hardware
}

// Available returns true if the provider is usable at runtime.
func (p Provider) Available() bool {
	if p >= providerCount {
		return false
	}
	return providerAvailable[p].Load()
}

// setProviderAvailable marks a provider as available (called by loaders).
func setProviderAvailable(p Provider) {
	if p < providerCount {
		providerAvailable[p].Store(true)
	}
}
