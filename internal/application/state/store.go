package state

// store.go: estado compartido de la calculadora.
//
// Un único Store inyectable con las entidades cargadas, los promedios históricos y
// los últimos resultados. Cada carga de históricos toma un token de secuencia y
// solo el token más reciente puede escribir: una respuesta lenta que llega tarde
// no pisa a una más nueva.

import (
	"sync"

	"github.com/gtfunds/calculos/internal/domain"
)

// Store es seguro para uso concurrente.
type Store struct {
	mu sync.RWMutex

	cycles    []domain.Cycle
	kycs      []domain.KYC
	investors []domain.Investor

	historical    *domain.HistoricalAverages
	historicalSeq uint64 // token que escribió historical
	seq           uint64 // último token emitido

	lastEstimate *domain.EstimationResult
	lastAnalysis *domain.CycleAnalysis
	overview     *domain.Overview
	lastErr      error
}

// New crea un Store vacío.
func New() *Store {
	return &Store{}
}

// NextSequence emite un token nuevo. Invalida todos los tokens anteriores.
func (s *Store) NextSequence() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// IsCurrent devuelve true si seq es el último token emitido.
func (s *Store) IsCurrent(seq uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return seq == s.seq
}

// SetHistorical guarda los promedios y limpia el último error, solo si seq es el
// último token emitido. Devuelve false si el resultado es obsoleto y se descartó.
func (s *Store) SetHistorical(seq uint64, h domain.HistoricalAverages) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.historical = &h
	s.historicalSeq = seq
	s.lastErr = nil
	return true
}

// ClearHistorical borra los promedios si seq es el último token (sin ciclos completados).
func (s *Store) ClearHistorical(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.historical = nil
	s.historicalSeq = seq
	s.lastErr = nil
	return true
}

// SetErrorIfCurrent guarda err solo si seq es el último token emitido.
// Un fallo de una carga obsoleta no pisa el estado de una más nueva.
func (s *Store) SetErrorIfCurrent(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.lastErr = err
	return true
}

// Historical devuelve una copia de los promedios guardados, o nil si no hay.
func (s *Store) Historical() *domain.HistoricalAverages {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.historical == nil {
		return nil
	}
	h := *s.historical
	return &h
}

func (s *Store) SetCycles(cycles []domain.Cycle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles = cycles
}

func (s *Store) Cycles() []domain.Cycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Cycle(nil), s.cycles...)
}

func (s *Store) SetKYCs(kycs []domain.KYC) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kycs = kycs
}

func (s *Store) KYCs() []domain.KYC {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.KYC(nil), s.kycs...)
}

func (s *Store) SetInvestors(investors []domain.Investor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investors = investors
}

func (s *Store) Investors() []domain.Investor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Investor(nil), s.investors...)
}

func (s *Store) SetLastEstimate(r domain.EstimationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEstimate = &r
}

// LastEstimate devuelve la última estimación calculada, o nil.
func (s *Store) LastEstimate() *domain.EstimationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastEstimate == nil {
		return nil
	}
	r := *s.lastEstimate
	return &r
}

func (s *Store) SetLastAnalysis(a domain.CycleAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAnalysis = &a
}

// LastAnalysis devuelve el último análisis de ciclo, o nil.
func (s *Store) LastAnalysis() *domain.CycleAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastAnalysis == nil {
		return nil
	}
	a := *s.lastAnalysis
	return &a
}

func (s *Store) SetOverview(o domain.Overview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overview = &o
}

// Overview devuelve el último resumen general calculado, o nil.
func (s *Store) Overview() *domain.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.overview == nil {
		return nil
	}
	o := *s.overview
	return &o
}

// SetError guarda el último error de carga; nil lo limpia.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
