package modkit

import "autofax/internal/modkit/module"

// Module is what api.Mount mounts, the same contract the port registry uses
type Module = module.Module
