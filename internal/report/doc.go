// Package report collects per-file sync outcomes into a deterministic
// session report. Outcomes are ordered lexically by path regardless of the
// order workers finished in, so serializing the same library state twice
// produces identical bytes.
package report
