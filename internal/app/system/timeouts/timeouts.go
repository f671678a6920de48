// Package timeouts provides the timeout tiers used with context.WithTimeout
// around store and identity-provider calls.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and session lookups
//   - Medium: list queries and single-document writes
//   - Provider: network calls to the external identity provider; these run
//     without any store lock held and a failure is final for the request
package timeouts

import "time"

const (
	Ping     = 2 * time.Second
	Short    = 5 * time.Second
	Medium   = 10 * time.Second
	Provider = 15 * time.Second
)
