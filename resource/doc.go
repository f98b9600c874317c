// Package resource bounds what a single clustering run may consume.
//
// A Controller tracks three budgets:
//
//   - memory for the dense n×n matrices (similarity, normalized similarity)
//   - worker slots for pipelines that run concurrently
//   - IO throughput for dataset reads from blob storage
//
// A nil *Controller is valid and imposes no limits.
package resource
