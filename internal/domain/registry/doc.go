// Package registry holds the static application registry: which apps exist,
// their titles, icons and default window sizes. The window manager consults
// it on every open; unknown ids are ignored there.
//
// Built-in entries come from the embedded apps.yaml. Deployments can extend
// or override them with Seeder.SeedFile.
package registry
