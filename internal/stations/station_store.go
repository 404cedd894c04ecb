package stations

import (
	"sort"
	"sync"

	"trainsearch.org/internal/geo"
)

type stationSet struct {
	stations []*geo.Station
	byID     map[string]*geo.Station
}

// StationStore is a thread-safe in-memory registry of stations, indexed by
// source ID and, within a source, by station ID.
type StationStore struct {
	mu   sync.RWMutex
	data map[string]stationSet
}

// NewStationStore initializes and returns a new, empty StationStore.
// The underlying map is lazily initialized on first use in Set.
func NewStationStore() *StationStore {
	return &StationStore{}
}

// Set replaces the stations of sourceID. When two stations share an ID the
// first one wins the ID index; both stay in the station list.
func (s *StationStore) Set(sourceID string, stations []*geo.Station) {
	set := stationSet{
		stations: make([]*geo.Station, 0, len(stations)),
		byID:     make(map[string]*geo.Station, len(stations)),
	}
	for _, st := range stations {
		if st == nil {
			continue
		}
		set.stations = append(set.stations, st)
		if _, dup := set.byID[st.ID]; !dup {
			set.byID[st.ID] = st
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]stationSet)
	}
	s.data[sourceID] = set
}

// Get returns a copy of the station list of sourceID.
// The bool is false when nothing was ever stored for the source.
func (s *StationStore) Get(sourceID string) ([]*geo.Station, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.data[sourceID]
	if !ok {
		return nil, false
	}
	out := make([]*geo.Station, len(set.stations))
	copy(out, set.stations)
	return out, true
}

// Station looks up one station by ID. A nil result means the station is
// unknown, which the geo package treats as an absent station.
func (s *StationStore) Station(sourceID, stationID string) *geo.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[sourceID].byID[stationID]
}

// Sources returns the IDs of all loaded sources in sorted order.
func (s *StationStore) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the total number of stations over all sources.
func (s *StationStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, set := range s.data {
		n += len(set.stations)
	}
	return n
}

// Delete drops every station of sourceID.
func (s *StationStore) Delete(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sourceID)
}
