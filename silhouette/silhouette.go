package silhouette

import (
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/symnmf/distance"
	"github.com/hupe1980/symnmf/errs"
)

// Partition groups point indices by cluster label.
type Partition struct {
	labels  []int
	members map[int]*roaring.Bitmap
}

// NewPartition builds a partition from per-point labels.
// Negative labels are rejected.
func NewPartition(labels []int) (*Partition, error) {
	p := &Partition{members: make(map[int]*roaring.Bitmap)}
	for i, l := range labels {
		if l < 0 {
			return nil, errs.Invalid("silhouette", "negative label %d at point %d", l, i)
		}
		bm, ok := p.members[l]
		if !ok {
			bm = roaring.New()
			p.members[l] = bm
			p.labels = append(p.labels, l)
		}
		bm.Add(uint32(i))
	}
	slices.Sort(p.labels)
	return p, nil
}

// Labels returns the distinct cluster labels in ascending order.
func (p *Partition) Labels() []int {
	return slices.Clone(p.labels)
}

// Len returns the number of distinct clusters.
func (p *Partition) Len() int { return len(p.labels) }

// Size returns the number of points labeled l.
func (p *Partition) Size(l int) int {
	bm, ok := p.members[l]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// Members returns the point indices labeled l in ascending order.
func (p *Partition) Members(l int) []uint32 {
	bm, ok := p.members[l]
	if !ok {
		return nil
	}
	return bm.ToArray()
}

// Score returns the mean silhouette coefficient of the clustering.
//
// It fails with a numerical error when labels name a single cluster or any
// cluster has exactly one member.
func Score(points [][]float64, labels []int) (float64, error) {
	if len(points) != len(labels) {
		return 0, errs.Invalid("silhouette", "got %d labels for %d points", len(labels), len(points))
	}
	if len(points) == 0 {
		return 0, errs.Invalid("silhouette", "no points")
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return 0, errs.Invalid("silhouette", "point %d has dimension %d, want %d", i, len(p), dim)
		}
	}

	part, err := NewPartition(labels)
	if err != nil {
		return 0, err
	}
	return ScorePartition(points, part)
}

// ScorePartition scores points against a prebuilt partition.
func ScorePartition(points [][]float64, part *Partition) (float64, error) {
	if part.Len() < 2 {
		return 0, errs.Numerical("silhouette", "need at least 2 clusters, got %d", part.Len())
	}

	groups := make([][]uint32, part.Len())
	covered := 0
	for g, l := range part.labels {
		members := part.Members(l)
		if len(members) < 2 {
			return 0, errs.Numerical("silhouette", "cluster %d has a single member", l)
		}
		if int(members[len(members)-1]) >= len(points) {
			return 0, errs.Invalid("silhouette", "cluster %d references point %d of %d", l, members[len(members)-1], len(points))
		}
		covered += len(members)
		groups[g] = members
	}
	if covered != len(points) {
		return 0, errs.Invalid("silhouette", "partition covers %d of %d points", covered, len(points))
	}

	owner := make([]int, len(points))
	for g, members := range groups {
		for _, i := range members {
			owner[i] = g
		}
	}

	sums := make([]float64, len(groups))
	total := 0.0
	for i, p := range points {
		clear(sums)
		for g, members := range groups {
			for _, j := range members {
				sums[g] += distance.L2(p, points[j])
			}
		}

		own := owner[i]
		a := sums[own] / float64(len(groups[own])-1)
		b := math.Inf(1)
		for g := range groups {
			if g == own {
				continue
			}
			b = math.Min(b, sums[g]/float64(len(groups[g])))
		}

		if m := math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}

	score := total / float64(len(points))
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, errs.Numerical("silhouette", "non-finite score")
	}
	return score, nil
}
