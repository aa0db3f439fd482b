package renderers

// Config is the immutable configuration of a RendererFactory.
// Assemble it with a ConfigBuilder before constructing the factory.
type Config struct {
	flags Flags
}

// Flags returns the configured feature flags.
func (c Config) Flags() Flags { return c.flags }

// ConfigBuilder assembles a Config. The zero value is ready to use.
type ConfigBuilder struct {
	flags Flags
}

// NewConfigBuilder returns an empty builder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// SetFlags replaces the configured flags.
func (b *ConfigBuilder) SetFlags(flags Flags) *ConfigBuilder {
	b.flags = flags
	return b
}

// AddFlags unions flags into the configured flags.
func (b *ConfigBuilder) AddFlags(flags Flags) *ConfigBuilder {
	b.flags = b.flags.Union(flags)
	return b
}

// Build returns the assembled Config. The builder may be reused;
// later changes do not affect configs already built.
func (b *ConfigBuilder) Build() Config {
	return Config{flags: b.flags}
}
