package memory

import (
	"context"
	"sync"

	auditDomain "github.com/davicafu/orgref/internal/audit/domain"
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

// AuditStore guarda el historial en memoria cuando no hay Mongo configurado.
type AuditStore struct {
	mu      sync.RWMutex
	entries []*auditDomain.AuditEntry
	byID    map[string]struct{}
}

func NewAuditStore() *AuditStore {
	return &AuditStore{byID: make(map[string]struct{})}
}

func (s *AuditStore) Append(ctx context.Context, entry *auditDomain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[entry.ID]; ok {
		return auditDomain.ErrAuditAlreadyRecorded
	}
	cp := *entry
	cp.RecordIDs = append([]int64(nil), entry.RecordIDs...)
	s.entries = append(s.entries, &cp)
	s.byID[entry.ID] = struct{}{}
	return nil
}

func (s *AuditStore) Search(ctx context.Context, plan sharedQuery.Plan) (sharedDomain.PagedResult[*auditDomain.AuditEntry], error) {
	s.mu.RLock()
	var matched []*auditDomain.AuditEntry
	for _, e := range s.entries {
		if sharedQuery.Match(plan.Where, auditDomain.AuditFields.Accessor(e)) {
			cp := *e
			matched = append(matched, &cp)
		}
	}
	s.mu.RUnlock()

	sharedQuery.SortRecords(matched, plan.Orders, auditDomain.AuditFields)

	total := int64(len(matched))
	page := plan.Pagination()
	start := min(page.Offset, len(matched))
	end := start + min(page.Limit, len(matched)-start)
	return sharedQuery.Result(plan, matched[start:end], total), nil
}

var _ auditDomain.AuditRepository = (*AuditStore)(nil)
