// Package distance provides the geometry primitives shared by both clustering
// engines.
//
// # Supported Metrics
//
//   - MetricL2: Euclidean distance (default K-means assignment)
//   - MetricSquaredL2: squared Euclidean distance (same K-means labels)
//
// kmeans.Config.Metric selects one through Provider. The Gaussian kernel
// and the silhouette call SquaredL2 and L2 directly.
//
// # Usage
//
//	d := distance.L2(a, b)
//	sq := distance.SquaredL2(a, b)
//	f, err := distance.Provider(distance.MetricSquaredL2)
package distance
