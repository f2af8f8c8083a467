package vectorindex

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Metric selects how distances between vectors are computed.
type Metric string

const (
	// MetricL2 is squared Euclidean distance.
	MetricL2 Metric = "l2"
	// MetricCosine is 1 - cosine similarity.
	MetricCosine Metric = "cosine"
)

// ParseMetric validates a metric name. An empty name means MetricL2.
func ParseMetric(name string) (Metric, error) {
	switch Metric(name) {
	case "", MetricL2:
		return MetricL2, nil
	case MetricCosine:
		return MetricCosine, nil
	default:
		return "", fmt.Errorf("unsupported distance metric: %s", name)
	}
}

// Flat is an exact nearest-neighbour index. Search compares the query
// against every row.
type Flat struct {
	metric    Metric
	dimension int
	vectors   [][]float32
}

var _ port.VectorIndex = (*Flat)(nil)

type storedIndex struct {
	Metric    Metric      `json:"metric"`
	Dimension int         `json:"dim"`
	Vectors   [][]float32 `json:"v"`
}

// Build creates an index whose row i is vectors[i].
func Build(metric Metric, vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("cannot build index from zero vectors")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("cannot build index from zero-dimension vectors")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector dimension mismatch at row %d: expected %d, got %d", i, dim, len(v))
		}
	}
	return &Flat{
		metric:    metric,
		dimension: dim,
		vectors:   vectors,
	}, nil
}

// Decode restores an index written by MarshalBinary.
func Decode(data []byte) (*Flat, error) {
	var stored storedIndex
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	metric, err := ParseMetric(string(stored.Metric))
	if err != nil {
		return nil, err
	}
	idx, err := Build(metric, stored.Vectors)
	if err != nil {
		return nil, err
	}
	if idx.dimension != stored.Dimension {
		return nil, fmt.Errorf("index header dimension %d does not match rows (%d)", stored.Dimension, idx.dimension)
	}
	return idx, nil
}

// MarshalBinary serializes the index.
func (f *Flat) MarshalBinary() ([]byte, error) {
	return json.Marshal(storedIndex{
		Metric:    f.metric,
		Dimension: f.dimension,
		Vectors:   f.vectors,
	})
}

func (f *Flat) Size() int {
	return len(f.vectors)
}

func (f *Flat) Dimension() int {
	return f.dimension
}

func (f *Flat) Metric() Metric {
	return f.metric
}

// Search returns the k nearest rows in ascending distance order. Equal
// distances keep row order. Missing results are padded with ID -1.
func (f *Flat) Search(query []float32, k int) ([]domain.Hit, error) {
	if len(query) != f.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", f.dimension, len(query))
	}
	if k <= 0 {
		return nil, nil
	}

	hits := make([]domain.Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = domain.Hit{ID: i, Distance: f.distance(query, v)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k < len(hits) {
		return hits[:k], nil
	}
	for len(hits) < k {
		hits = append(hits, domain.Hit{ID: -1, Distance: math.MaxFloat32})
	}
	return hits, nil
}

func (f *Flat) distance(a, b []float32) float64 {
	if f.metric == MetricCosine {
		return 1 - cosineSimilarity(a, b)
	}
	return squaredL2(a, b)
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
