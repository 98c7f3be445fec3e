package inventory

import "github.com/stationaryhq/stationary/internal/domain/models"

// reportStore keeps the ordered report collection, newest first. Update
// replaces a record in place without reordering; delete and update on an
// unknown id are no-ops.
type reportStore struct {
	reports []models.Report
}

func newReportStore(reports []models.Report) *reportStore {
	return &reportStore{reports: reports}
}

// Create prepends the report so the newest entry lists first.
func (rs *reportStore) Create(report models.Report) {
	rs.reports = append([]models.Report{report}, rs.reports...)
}

// Update replaces the full record at its existing position.
func (rs *reportStore) Update(id string, report models.Report) {
	for i := range rs.reports {
		if rs.reports[i].ID == id {
			rs.reports[i] = report
			return
		}
	}
}

// Delete removes the report with the given id.
func (rs *reportStore) Delete(id string) {
	for i := range rs.reports {
		if rs.reports[i].ID == id {
			rs.reports = append(rs.reports[:i], rs.reports[i+1:]...)
			return
		}
	}
}

// Find returns the report with the given id, if present.
func (rs *reportStore) Find(id string) (models.Report, bool) {
	for _, report := range rs.reports {
		if report.ID == id {
			return report, true
		}
	}
	return models.Report{}, false
}

// List returns a copy of the collection in stored order.
func (rs *reportStore) List() []models.Report {
	out := make([]models.Report, len(rs.reports))
	copy(out, rs.reports)
	return out
}
