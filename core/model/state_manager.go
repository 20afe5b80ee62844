package model

import (
	"sync"
)

// StateManager tracks the fitted state of a model in a thread-safe manner.
type StateManager struct {
	mu sync.RWMutex

	fitted     bool
	nFeatures  int
	nSamples   int
	iterations int
}

// NewStateManager creates a StateManager for data of the given shape.
func NewStateManager(nFeatures, nSamples int) *StateManager {
	return &StateManager{nFeatures: nFeatures, nSamples: nSamples}
}

// IsFitted returns whether at least one Fit completed (or weights were imported).
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// MarkFitted marks the model as fitted and accumulates the number of
// iterations run by the last training call.
func (s *StateManager) MarkFitted(iterations int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	if iterations > 0 {
		s.iterations += iterations
	}
}

// AddIterations accumulates iterations without touching the fitted flag.
// Used when training stops early on an error.
func (s *StateManager) AddIterations(iterations int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if iterations > 0 {
		s.iterations += iterations
	}
}

// Iterations returns the total number of iterations run so far.
func (s *StateManager) Iterations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iterations
}

// Dimensions returns the number of features and samples the model was built with.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// Reset clears the fitted flag and the iteration counter; dimensions are kept.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.iterations = 0
}

// ModelState is a snapshot of StateManager used for weight metadata.
type ModelState struct {
	Fitted     bool `json:"fitted"`
	NFeatures  int  `json:"n_features"`
	NSamples   int  `json:"n_samples"`
	Iterations int  `json:"iterations_run"`
}

// GetState returns the current state.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ModelState{
		Fitted:     s.fitted,
		NFeatures:  s.nFeatures,
		NSamples:   s.nSamples,
		Iterations: s.iterations,
	}
}

// SetState restores fitted flag and iteration count; dimensions are owned by
// the data and are not overwritten.
func (s *StateManager) SetState(state ModelState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = state.Fitted
	s.iterations = state.Iterations
}
