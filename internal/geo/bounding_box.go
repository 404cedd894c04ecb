package geo

import (
	"fmt"
	"math"
	"sync"
)

// BoundingBox defines the corners of a lat/lon box
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains checks whether the given coordinate is within the bounding box
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
}

// ComputeBoundingBox computes the smallest box holding every non-nil station.
func ComputeBoundingBox(stations []*Station) (BoundingBox, error) {
	if len(stations) == 0 {
		return BoundingBox{}, fmt.Errorf("no stations to compute bounding box")
	}

	minLat := math.MaxFloat64
	maxLat := -math.MaxFloat64
	minLon := math.MaxFloat64
	maxLon := -math.MaxFloat64

	for _, s := range stations {
		if s == nil {
			continue
		}
		minLat = math.Min(minLat, s.Latitude)
		maxLat = math.Max(maxLat, s.Latitude)
		minLon = math.Min(minLon, s.Longitude)
		maxLon = math.Max(maxLon, s.Longitude)
	}

	if minLat == math.MaxFloat64 {
		return BoundingBox{}, fmt.Errorf("no valid station coordinates found")
	}

	return BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}, nil
}

// BoundingBoxStore keeps one bounding box per station source.
type BoundingBoxStore struct {
	mu    sync.RWMutex
	store map[string]BoundingBox
}

func NewBoundingBoxStore() *BoundingBoxStore {
	return &BoundingBoxStore{
		store: make(map[string]BoundingBox),
	}
}

func (s *BoundingBoxStore) Set(sourceID string, bbox BoundingBox) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[sourceID] = bbox
}

func (s *BoundingBoxStore) Delete(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, sourceID)
}

func (s *BoundingBoxStore) Get(sourceID string) (BoundingBox, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bbox, ok := s.store[sourceID]
	return bbox, ok
}

// IsInBoundingBox checks if c lies inside the box of the given source.
// Unknown sources contain nothing.
func (s *BoundingBoxStore) IsInBoundingBox(sourceID string, c Coordinate) bool {
	bbox, ok := s.Get(sourceID)
	if !ok {
		return false
	}
	return bbox.Contains(c)
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Note: (0,0) is treated as invalid, even though it is a real location in the
// Gulf of Guinea. Station feeds use it as a placeholder for missing data.
func IsValidLatLon(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}
