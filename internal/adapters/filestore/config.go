package filestore

import "autofax/internal/platform/config"

// FromConfig reads UPLOAD_DIR and PUBLIC_URL from a CORE_API_ scoped view
// the public url defaults to localhost on the configured PORT
func FromConfig(c config.Conf) Options {
	return Options{
		Dir:       c.MayString("UPLOAD_DIR", ""),
		PublicURL: c.MayURL("PUBLIC_URL", "http://localhost:"+c.MayString("PORT", "4000")).String(),
	}
}
