package docfetch

import "autofax/internal/platform/config"

// FromConfig reads FETCH_TIMEOUT, FETCH_MAX_BYTES and TEMP_DIR from a CORE_API_ scoped view
func FromConfig(c config.Conf) Options {
	return Options{
		Timeout:  c.MayDuration("FETCH_TIMEOUT", defaultTimeout),
		MaxBytes: c.MayInt64("FETCH_MAX_BYTES", defaultMaxBytes),
		Dir:      c.MayString("TEMP_DIR", ""),
	}
}
