package container

// resolutionContext lives for one top-level Get call. The instance cache is
// shared by the whole call graph; the list of entered module vaults is copied
// for every dependency so sibling branches do not see each other's modules.
type resolutionContext struct {
	instances map[*Binding]any
	vaults    []*Vault

	// silent lookups, as done by Bound, log no diagnostics
	silent bool
}

func newResolutionContext() *resolutionContext {
	return &resolutionContext{instances: make(map[*Binding]any)}
}

func (rc *resolutionContext) split() *resolutionContext {
	return &resolutionContext{
		instances: rc.instances,
		vaults:    append([]*Vault(nil), rc.vaults...),
		silent:    rc.silent,
	}
}

// fresh starts a new call graph that still knows the modules entered so far.
func (rc *resolutionContext) fresh() *resolutionContext {
	return &resolutionContext{
		instances: make(map[*Binding]any),
		vaults:    append([]*Vault(nil), rc.vaults...),
		silent:    rc.silent,
	}
}
