// Package store provides the in-memory payment record store. Records are
// held in a single map with secondary indices by channel, status and period,
// all guarded by one lock so readers never observe a half-updated index.
package store

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
)

const (
	DefaultCapacity       = 10000
	DefaultAuditRetention = 10000

	storeEngine  = "in-memory-map"
	storeVersion = "1.0"
)

// StoreInfo describes the backing engine for diagnostics.
type StoreInfo struct {
	Engine               string `json:"engine"`
	Version              string `json:"version"`
	MaxCapacity          int    `json:"max_capacity"`
	SupportsTransactions bool   `json:"supports_transactions"`
	ThreadSafe           bool   `json:"thread_safe"`
}

// PaymentStore owns the only copy of every record. Post-save mutation goes
// through WithRecord; a record changed behind the store's back is re-filed
// on its next Save.
type PaymentStore struct {
	mu        sync.RWMutex
	records   map[string]domain.Record
	byChannel map[string][]string
	byStatus  map[string][]string
	byPeriod  map[string][]string
	indexed   map[string]indexKeys
	capacity  int

	auditMu        sync.Mutex
	audit          []AuditEntry
	auditRetention int

	logger *slog.Logger
}

func NewPaymentStore(capacity, auditRetention int, logger *slog.Logger) *PaymentStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if auditRetention <= 0 {
		auditRetention = DefaultAuditRetention
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentStore{
		records:        make(map[string]domain.Record),
		byChannel:      make(map[string][]string),
		byStatus:       make(map[string][]string),
		byPeriod:       make(map[string][]string),
		indexed:        make(map[string]indexKeys),
		capacity:       capacity,
		auditRetention: auditRetention,
		logger:         logger,
	}
}

// indexKeys are the keys a record was filed under when it was last indexed.
// Removal and re-filing go by this snapshot, not the record's current fields.
type indexKeys struct {
	channel string
	status  string
	period  string
}

func recordKeys(rec domain.Record) indexKeys {
	return indexKeys{
		channel: rec.ChannelID(),
		status:  string(rec.Status()),
		period:  rec.Period(),
	}
}

// Save inserts a new record or replaces an existing one by id. The capacity
// limit applies to inserts only; replacing never fails on a full store. On
// update, stale index entries are dropped by the keys captured at index time
// and the record keeps its position under keys that did not change.
func (s *PaymentStore) Save(rec domain.Record) error {
	if rec == nil {
		return domain.NewValidationError("record is required")
	}

	s.mu.Lock()
	_, exists := s.records[rec.ID()]
	if !exists && len(s.records) >= s.capacity {
		s.mu.Unlock()
		s.logger.Warn("payment store is full", "capacity", s.capacity)
		return domain.NewCapacityExceededError(s.capacity)
	}
	s.records[rec.ID()] = rec
	if exists {
		s.syncIndices(rec)
	} else {
		s.addToIndices(rec)
	}
	s.mu.Unlock()

	op := OpInsert
	if exists {
		op = OpUpdate
	}
	s.recordAudit(op, rec.ID(), fmt.Sprintf("%s record for channel %s", rec.Kind(), rec.ChannelID()))
	return nil
}

// WithRecord runs fn against the stored record under the write lock and
// reconciles the indices afterwards. Only entries whose key changed are
// re-filed, so a status transition keeps the record's position in the
// channel and period sequences.
func (s *PaymentStore) WithRecord(id string, fn func(domain.Record) error) error {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return domain.NewRecordNotFoundError(id)
	}
	err := fn(rec)
	s.syncIndices(rec)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.recordAudit(OpUpdate, id, "record updated in place")
	return nil
}

func (s *PaymentStore) FindByID(id string) (domain.Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.NewRecordNotFoundError(id)
	}
	s.recordAudit(OpRead, id, "looked up by id")
	return rec, nil
}

func (s *PaymentStore) FindAllByChannel(channelID string) []domain.Record {
	out := s.collectIndexed(s.byChannel, channelID)
	s.recordAudit(OpRead, "", fmt.Sprintf("channel %s query returned %d records", channelID, len(out)))
	return out
}

func (s *PaymentStore) FindByStatus(status domain.Status) []domain.Record {
	out := s.collectIndexed(s.byStatus, string(status))
	s.recordAudit(OpRead, "", fmt.Sprintf("status %s query returned %d records", status, len(out)))
	return out
}

func (s *PaymentStore) FindByPeriod(period string) []domain.Record {
	out := s.collectIndexed(s.byPeriod, period)
	s.recordAudit(OpRead, "", fmt.Sprintf("period %s query returned %d records", period, len(out)))
	return out
}

// FindByDateRange returns records created within [from, to], oldest first.
func (s *PaymentStore) FindByDateRange(from, to time.Time) []domain.Record {
	out := s.scan(func(r domain.Record) bool {
		c := r.CreatedAt()
		return !c.Before(from) && !c.After(to)
	})
	s.recordAudit(OpRead, "", fmt.Sprintf("date range query returned %d records", len(out)))
	return out
}

// FindByAmountRange returns records with amounts within [min, max].
func (s *PaymentStore) FindByAmountRange(min, max float64) []domain.Record {
	out := s.scan(func(r domain.Record) bool {
		return r.Amount() >= min && r.Amount() <= max
	})
	s.recordAudit(OpRead, "", fmt.Sprintf("amount range query returned %d records", len(out)))
	return out
}

// TopPayments returns up to limit records by descending amount.
func (s *PaymentStore) TopPayments(limit int) []domain.Record {
	if limit <= 0 {
		return nil
	}
	out := s.scan(func(domain.Record) bool { return true })
	slices.SortStableFunc(out, func(a, b domain.Record) int {
		return cmp.Compare(b.Amount(), a.Amount())
	})
	if len(out) > limit {
		out = out[:limit]
	}
	s.recordAudit(OpRead, "", fmt.Sprintf("top %d payments query", limit))
	return out
}

func (s *PaymentStore) FilterByKind(k domain.Kind) []domain.Record {
	out := s.scan(func(r domain.Record) bool { return r.Kind() == k })
	s.recordAudit(OpRead, "", fmt.Sprintf("kind %s query returned %d records", k, len(out)))
	return out
}

// Delete removes the record and all its index entries. Reports whether a
// record was actually deleted.
func (s *PaymentStore) Delete(id string) bool {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.records, id)
	s.removeFromIndices(id)
	s.mu.Unlock()

	s.recordAudit(OpDelete, id, fmt.Sprintf("%s record removed", rec.Kind()))
	return true
}

// TotalVolume sums the gross amount of every stored record.
func (s *PaymentStore) TotalVolume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, rec := range s.records {
		total += rec.Amount()
	}
	return domain.Round2(total)
}

// StatusDistribution counts records per status. Every status appears in the
// result, including zero counts.
func (s *PaymentStore) StatusDistribution() map[domain.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dist := make(map[domain.Status]int, len(domain.ValidStatuses()))
	for _, st := range domain.ValidStatuses() {
		dist[st] = len(s.byStatus[string(st)])
	}
	return dist
}

func (s *PaymentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *PaymentStore) Info() StoreInfo {
	return StoreInfo{
		Engine:               storeEngine,
		Version:              storeVersion,
		MaxCapacity:          s.capacity,
		SupportsTransactions: false,
		ThreadSafe:           true,
	}
}

// ValidateCurrencyCode reports whether payouts can settle in the given code.
func (s *PaymentStore) ValidateCurrencyCode(code string) bool {
	return domain.IsSupportedCurrency(code)
}

func (s *PaymentStore) collectIndexed(index map[string][]string, key string) []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := index[key]
	out := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// scan walks every record and returns matches ordered by creation time.
func (s *PaymentStore) scan(match func(domain.Record) bool) []domain.Record {
	s.mu.RLock()
	out := make([]domain.Record, 0)
	for _, rec := range s.records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b domain.Record) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

func (s *PaymentStore) addToIndices(rec domain.Record) {
	id := rec.ID()
	k := recordKeys(rec)
	s.byChannel[k.channel] = appendUnique(s.byChannel[k.channel], id)
	s.byStatus[k.status] = appendUnique(s.byStatus[k.status], id)
	s.byPeriod[k.period] = appendUnique(s.byPeriod[k.period], id)
	s.indexed[id] = k
}

func (s *PaymentStore) removeFromIndices(id string) {
	k, ok := s.indexed[id]
	if !ok {
		return
	}
	removeIndexEntry(s.byChannel, k.channel, id)
	removeIndexEntry(s.byStatus, k.status, id)
	removeIndexEntry(s.byPeriod, k.period, id)
	delete(s.indexed, id)
}

// syncIndices re-files the record under index keys that changed since it
// was last indexed. Entries under unchanged keys keep their position.
func (s *PaymentStore) syncIndices(rec domain.Record) {
	id := rec.ID()
	prev, ok := s.indexed[id]
	if !ok {
		s.addToIndices(rec)
		return
	}
	now := recordKeys(rec)
	if now.channel != prev.channel {
		removeIndexEntry(s.byChannel, prev.channel, id)
		s.byChannel[now.channel] = appendUnique(s.byChannel[now.channel], id)
	}
	if now.status != prev.status {
		removeIndexEntry(s.byStatus, prev.status, id)
		s.byStatus[now.status] = appendUnique(s.byStatus[now.status], id)
	}
	if now.period != prev.period {
		removeIndexEntry(s.byPeriod, prev.period, id)
		s.byPeriod[now.period] = appendUnique(s.byPeriod[now.period], id)
	}
	s.indexed[id] = now
}

func appendUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeIndexEntry(index map[string][]string, key, id string) {
	ids := index[key]
	i := slices.Index(ids, id)
	if i < 0 {
		return
	}
	ids = slices.Delete(ids, i, i+1)
	if len(ids) == 0 {
		delete(index, key)
		return
	}
	index[key] = ids
}
