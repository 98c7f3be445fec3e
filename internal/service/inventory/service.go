package inventory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stationaryhq/stationary/internal/domain/models"
	"github.com/stationaryhq/stationary/internal/repository/localstore"
	"github.com/stationaryhq/stationary/internal/service/normalizer"
)

// Logical keys in the device store. The names predate this service and must
// stay stable so previously saved data keeps loading.
const (
	reportsKey  = "stationaryAppReports"
	stockKey    = "stationaryAppStock"
	selectedKey = "stationaryAppSelectedId"
)

// ReportDraft carries the user-editable fields of a report. The id is never
// part of a draft; creation assigns one and updates keep the existing one.
type ReportDraft struct {
	RequesterName string
	Campus        string
	ImportDate    string
	ExportDate    string
	Items         map[string]int
	Status        models.Status
}

// normalized returns a copy with zero and negative item entries removed and
// the status collapsed to the Process/Done pair.
func (d ReportDraft) normalized() ReportDraft {
	items := make(map[string]int, len(d.Items))
	for name, qty := range d.Items {
		if qty > 0 {
			items[name] = qty
		}
	}
	d.Items = items
	if d.Status != models.StatusDone {
		d.Status = models.StatusProcess
	}
	return d
}

func (d ReportDraft) validate() error {
	if d.RequesterName == "" || d.Campus == "" || d.ImportDate == "" || d.ExportDate == "" {
		return errMissingInformation()
	}
	if !models.ValidCampus(d.Campus) {
		return errMissingInformation()
	}
	if len(d.Items) == 0 {
		return errEmptyReport()
	}
	return nil
}

// Service owns the stock ledger and the report store and enforces the
// reconciliation rules between them. Every operation runs under one mutex:
// the sufficiency gates are check-then-act sequences, so the ledger and the
// report collection must never be observed mid-transition.
type Service struct {
	mu       sync.Mutex
	ledger   *Ledger
	reports  *reportStore
	selected string
	store    localstore.Store
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService loads persisted state (migrating legacy shapes) and returns a
// ready inventory service. A malformed or missing document falls back to an
// empty default rather than failing startup.
func NewService(store localstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}

	today := s.now().Format(models.DateLayout)

	rawStock, _ := store.GetRaw(stockKey)
	s.ledger = NewLedgerFrom(normalizer.MigrateStoredStock(rawStock, today))

	rawReports, _ := store.GetRaw(reportsKey)
	s.reports = newReportStore(normalizer.MigrateStoredReports(rawReports))

	var selected string
	if ok, err := store.Get(selectedKey, &selected); err != nil {
		logger.Warn("discarding unreadable selected-report id", zap.Error(err))
	} else if ok {
		if _, found := s.reports.Find(selected); found {
			s.selected = selected
		}
	}

	return s
}

// CreateReport validates the draft, applies the ledger deduction when the
// report arrives as Done, and prepends the new report. On any gate failure
// neither the ledger nor the report store changes.
func (s *Service) CreateReport(draft ReportDraft) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := draft.normalized()
	if err := d.validate(); err != nil {
		return models.Report{}, err
	}

	if d.Status == models.StatusDone {
		if deficiencies := s.ledger.SufficiencyCheck(d.Items); len(deficiencies) > 0 {
			return models.Report{}, &InsufficientStockError{Deficiencies: deficiencies}
		}
		today := s.today()
		for item, qty := range d.Items {
			s.ledger.ApplyDelta(item, -qty, today)
		}
	}

	report := models.Report{
		ID:            s.newID(),
		RequesterName: d.RequesterName,
		Campus:        d.Campus,
		ImportDate:    d.ImportDate,
		ExportDate:    d.ExportDate,
		Items:         d.Items,
		Status:        d.Status,
	}
	s.reports.Create(report)
	s.persist()
	return report, nil
}

// UpdateReport replaces the report's fields in place and applies the ledger
// delta dictated by the status transition:
//
//	Process→Process  nothing
//	Process→Done     deduct the new item map (gated on sufficiency)
//	Done→Process     return the original item map (never gated)
//	Done→Done        per union item, delta = old − new (only increases gated)
func (s *Service) UpdateReport(id string, draft ReportDraft) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.reports.Find(id)
	if !ok {
		return models.Report{}, ErrReportNotFound
	}

	d := draft.normalized()
	if err := d.validate(); err != nil {
		return models.Report{}, err
	}

	today := s.today()
	switch {
	case original.Status == models.StatusProcess && d.Status == models.StatusDone:
		if deficiencies := s.ledger.SufficiencyCheck(d.Items); len(deficiencies) > 0 {
			return models.Report{}, &InsufficientStockError{Deficiencies: deficiencies}
		}
		for item, qty := range d.Items {
			s.ledger.ApplyDelta(item, -qty, today)
		}

	case original.Status == models.StatusDone && d.Status == models.StatusProcess:
		for item, qty := range original.Items {
			s.ledger.ApplyDelta(item, qty, today)
		}

	case original.Status == models.StatusDone && d.Status == models.StatusDone:
		union := unionItems(original.Items, d.Items)

		var deficiencies []Deficiency
		for _, item := range union {
			extra := d.Items[item] - original.Items[item]
			if extra > 0 && s.ledger.Quantity(item) < extra {
				deficiencies = append(deficiencies, Deficiency{Item: item, Requested: extra, Available: s.ledger.Quantity(item)})
			}
		}
		if len(deficiencies) > 0 {
			return models.Report{}, &InsufficientStockError{Deficiencies: deficiencies}
		}

		for _, item := range union {
			// A decrease in the requested amount returns stock, an increase
			// consumes more; old − new carries the right sign for the ledger.
			s.ledger.ApplyDelta(item, original.Items[item]-d.Items[item], today)
		}
	}

	updated := models.Report{
		ID:            id,
		RequesterName: d.RequesterName,
		Campus:        d.Campus,
		ImportDate:    d.ImportDate,
		ExportDate:    d.ExportDate,
		Items:         d.Items,
		Status:        d.Status,
	}
	s.reports.Update(id, updated)
	s.persist()
	return updated, nil
}

// DeleteReport removes the report. Deleting a Done report returns its items
// to the ledger; deleting a Process report touches nothing. Never gated:
// returning stock cannot be insufficient.
func (s *Service) DeleteReport(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports.Find(id)
	if !ok {
		return ErrReportNotFound
	}

	if report.Status == models.StatusDone {
		today := s.today()
		for item, qty := range report.Items {
			s.ledger.ApplyDelta(item, qty, today)
		}
	}

	s.reports.Delete(id)
	if s.selected == id {
		s.selected = ""
	}
	s.persist()
	return nil
}

// EditStockBulk moves each listed catalog item to an absolute quantity.
// Negative targets clamp to zero; unknown items are ignored. No sufficiency
// gate applies to direct stock edits.
func (s *Service) EditStockBulk(quantities map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	for item, qty := range quantities {
		if qty < 0 {
			qty = 0
		}
		s.ledger.SetAbsolute(item, qty, today)
	}
	s.persist()
}

// ClearStock zeroes every ledger entry unconditionally.
func (s *Service) ClearStock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.ClearAll()
	s.persist()
}

// ReplaceAll swaps in a complete replacement for both the report collection
// and the ledger. Used by the import flow; existing state is discarded, the
// selection cleared.
func (s *Service) ReplaceAll(reports []models.Report, stock map[string]models.StockItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = NewLedgerFrom(stock)
	s.reports = newReportStore(reports)
	s.selected = ""
	s.persist()
	return nil
}

// Reports returns the report collection, newest first.
func (s *Service) Reports() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports.List()
}

// FindReport returns the report with the given id.
func (s *Service) FindReport(id string) (models.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports.Find(id)
}

// Stock returns a copy of the full ledger.
func (s *Service) Stock() map[string]models.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Items()
}

// SelectReport remembers the report the user is working on across restarts.
func (s *Service) SelectReport(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports.Find(id); !ok {
		return ErrReportNotFound
	}
	s.selected = id
	s.persist()
	return nil
}

// ClearSelection forgets the remembered report.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
	s.persist()
}

// SelectedReport returns the remembered report id, empty when none.
func (s *Service) SelectedReport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Service) today() string {
	return s.now().Format(models.DateLayout)
}

// persist writes both collections and the selection after a committed
// mutation. Write failures are logged and the in-memory state stays
// authoritative; they never fail the operation. Callers must hold the mutex.
func (s *Service) persist() {
	if err := s.store.Set(reportsKey, s.reports.List()); err != nil {
		s.logger.Error("failed saving reports", zap.Error(err))
		return
	}
	if err := s.store.Set(stockKey, s.ledger.Items()); err != nil {
		s.logger.Error("failed saving stock", zap.Error(err))
		return
	}

	var err error
	if s.selected == "" {
		err = s.store.Remove(selectedKey)
	} else {
		err = s.store.Set(selectedKey, s.selected)
	}
	if err != nil {
		s.logger.Error("failed saving selected report id", zap.Error(err))
		return
	}

	s.logger.Debug("state saved to device")
}

func unionItems(before, after map[string]int) []string {
	seen := make(map[string]struct{}, len(before)+len(after))
	for item := range before {
		seen[item] = struct{}{}
	}
	for item := range after {
		seen[item] = struct{}{}
	}

	union := make([]string, 0, len(seen))
	for item := range seen {
		union = append(union, item)
	}
	sort.Strings(union)
	return union
}
