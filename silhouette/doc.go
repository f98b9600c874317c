// Package silhouette scores a clustering with the mean silhouette
// coefficient.
//
// For point i in cluster A, a(i) is the mean Euclidean distance to the other
// members of A and b(i) is the smallest mean distance to the members of any
// other cluster. The point's coefficient is (b(i)-a(i)) / max(a(i), b(i)) and
// the score is the mean over all points, in [-1, 1].
//
// Cluster membership is kept in Roaring bitmaps (see Partition).
package silhouette
