package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gomarkdown/markdown"

	"goinfer/adapters/ingest"
	"goinfer/app"
	"goinfer/domain/core"
	"goinfer/domain/run"
	"goinfer/domain/stats"
	"goinfer/internal/analysis"
	"goinfer/internal/profiling"
)

type sideRequest struct {
	Raw     []float64            `json:"raw,omitempty"`
	Summary *stats.SummaryTriple `json:"summary,omitempty"`
}

func (s sideRequest) toSide() (stats.TestSide, error) {
	switch {
	case s.Raw != nil && s.Summary != nil:
		return stats.TestSide{}, core.NewInvalidParameterError("side", "must carry raw data or a summary, not both")
	case s.Summary != nil:
		return stats.SummarySide(*s.Summary), nil
	case s.Raw != nil:
		return stats.RawSide(stats.Sample(s.Raw)), nil
	default:
		return stats.TestSide{}, core.NewInvalidParameterError("side", "must carry raw data or a summary")
	}
}

type ttestRequest struct {
	Side1 sideRequest `json:"side1"`
	Side2 sideRequest `json:"side2"`
}

type anovaRequest struct {
	Groups stats.GroupedSample `json:"groups"`
}

type rmanovaRequest struct {
	Matrix stats.SubjectConditionMatrix `json:"matrix"`
}

type describeRequest struct {
	Name   string       `json:"name"`
	Values stats.Sample `json:"values"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	a.writeJSON(w, http.StatusOK, profiling.Profile(req.Name, req.Values))
}

func (a *App) handleTTest(w http.ResponseWriter, r *http.Request) {
	var req ttestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	side1, err := req.Side1.toSide()
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	side2, err := req.Side2.toSide()
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	result, err := analysis.TwoSampleTTest(side1, side2)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	a.saveRun(r, stats.TestTTest, 2, sideN(side1)+sideN(side2), result)
	a.writeJSON(w, http.StatusOK, result)
}

func (a *App) handleANOVA(w http.ResponseWriter, r *http.Request) {
	var req anovaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := analysis.OneWayANOVA(req.Groups)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	totalN := 0
	for _, g := range req.Groups {
		totalN += len(g)
	}
	a.saveRun(r, stats.TestANOVA, len(req.Groups), totalN, result)
	a.writeJSON(w, http.StatusOK, result)
}

func (a *App) handleRMANOVA(w http.ResponseWriter, r *http.Request) {
	var req rmanovaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := analysis.RepeatedMeasuresANOVA(req.Matrix)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	a.saveRun(r, stats.TestRMANOVA, req.Matrix.Cols(), req.Matrix.Rows()*req.Matrix.Cols(), result)
	a.writeJSON(w, http.StatusOK, result)
}

// handleSweep ingests the configured data file and runs the full battery
// over its numeric columns.
func (a *App) handleSweep(w http.ResponseWriter, r *http.Request) {
	if a.dataFile == "" {
		a.writeError(w, http.StatusUnprocessableEntity, core.NewInvalidParameterError("sweep", "no data file configured"))
		return
	}

	table, err := ingest.NewDataReader(a.dataFile).ReadData()
	if err != nil {
		a.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	names := table.NumericColumnNames()
	groups, err := ingest.GroupColumns(table, names)
	if err != nil {
		a.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if a.timestampColumn != "" {
		groups, err = a.bucketDaily(table, names, groups)
		if err != nil {
			a.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}
	matrix, err := ingest.MatrixFromColumns(table, names)
	if err != nil {
		a.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	result, err := a.sweeps.Sweep(r.Context(), core.DatasetKey(a.dataFile), names, groups, matrix)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	a.setLastSweep(result)
	a.writeJSON(w, http.StatusOK, result)
}

// bucketDaily collapses each column into per-day totals keyed on the
// configured timestamp column. Columns whose numeric cells do not align
// one-to-one with the timestamp rows cannot be bucketed.
func (a *App) bucketDaily(table *ingest.TableData, names []string, groups stats.GroupedSample) (stats.GroupedSample, error) {
	raw, err := table.StringColumn(a.timestampColumn)
	if err != nil {
		return nil, err
	}
	times, err := ingest.ParseTimestamps(raw, a.timestampLayout)
	if err != nil {
		return nil, err
	}

	bucketed := make(stats.GroupedSample, len(groups))
	for i, g := range groups {
		if len(g) != len(times) {
			return nil, core.NewInvalidParameterError("column", fmt.Sprintf("%q has non-numeric rows, cannot align with timestamps", names[i]))
		}
		daily, err := ingest.DailyTotals(times, g)
		if err != nil {
			return nil, err
		}
		bucketed[i] = daily
	}
	return bucketed, nil
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	runs, err := a.ledger.ListRuns(r.Context(), limit)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []run.TestRun{}
	}
	a.writeJSON(w, http.StatusOK, runs)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	result := a.getLastSweep()
	if result == nil {
		http.Error(w, "no sweep has run yet", http.StatusNotFound)
		return
	}

	html := markdown.ToHTML([]byte(app.RenderMarkdown(result)), nil, nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) saveRun(r *http.Request, testType stats.TestType, groups, totalN int, result stats.TestResult) {
	if a.ledger == nil {
		return
	}
	rec := run.NewTestRun(testType, "", groups, totalN, result)
	if err := a.ledger.SaveRun(r.Context(), rec); err != nil {
		a.logger.Warn("failed to persist %s run: %v", testType, err)
	}
}

func sideN(side stats.TestSide) int {
	if side.IsRaw() {
		return len(side.Raw())
	}
	return side.Summary().N
}

// writeDomainError maps typed engine failures to 422; anything else is a 500.
func (a *App) writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsInvalidParameter(err) || core.IsInsufficientGroups(err) || core.IsDegenerateResult(err) {
		status = http.StatusUnprocessableEntity
	}
	a.writeError(w, status, err)
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	a.logger.Debug("request failed: %v", err)
	a.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}
