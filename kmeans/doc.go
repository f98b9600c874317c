// Package kmeans implements Lloyd's K-means clustering.
//
// Centroids start as the first k points of the dataset (no random
// sampling), so training is fully deterministic. Each iteration assigns
// every point to its nearest centroid (ties go to the lowest centroid index)
// and moves each centroid to the mean of its group. Training stops when no
// centroid moves by Config.Epsilon or more, or after Config.MaxIter
// iterations.
//
// A group that receives no points fails the run with errs.ErrNumerical
// instead of producing a NaN centroid.
package kmeans
