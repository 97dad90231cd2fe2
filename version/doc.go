// Package version reports the matryoshka build version.
//
// Values come from -ldflags when set:
//
//	-ldflags "-X github.com/dendrascience/matryoshka/version.Version=v1.0.0 -X github.com/dendrascience/matryoshka/version.Commit=abc123 -X github.com/dendrascience/matryoshka/version.Date=2024-01-01T00:00:00Z"
//
// and otherwise from the module and VCS stamps in runtime/debug build info.
package version
