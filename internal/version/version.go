// Package version holds the application version, injected at build time with
//
//	go build -ldflags "-X github.com/ndewijer/Equity-Ledger-Backend/internal/version.Version=1.2.0"
package version

// Version is the application version. It is "dev" for local builds.
var Version = "dev"
