package ringcentral

import "autofax/internal/platform/config"

// FromConfig reads credentials from a RINGCENTRAL_ scoped view
// missing credentials are not an error here, login reports them
func FromConfig(c config.Conf) Options {
	return Options{
		Server:       c.MayString("SERVER", serverDefault),
		ClientID:     c.MayString("CLIENT_ID", ""),
		ClientSecret: c.MayString("CLIENT_SECRET", ""),
		JWT:          c.MayString("JWT", ""),
		Timeout:      c.MayDuration("TIMEOUT", defaultTimeout),
	}
}

// ParseSession maps a config value onto a SessionMode, unknown values fall back to per-dispatch
func ParseSession(s string) SessionMode {
	if SessionMode(s) == SessionShared {
		return SessionShared
	}
	return SessionPerDispatch
}
