package command

import "github.com/forge2d/forge2d/metadata"

func newTestRegistry() *metadata.Registry {
	r := metadata.NewRegistry()
	metadata.RegisterDefaults(r)
	return r
}
