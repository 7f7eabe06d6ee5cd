// Package http provides the small admin HTTP surface the surrounding
// catalog manager uses to drive and observe the backfill controller: the
// two operations named in spec §6 (LaunchNextVersionIfNecessary,
// GetBackfillJob), exposed as JSON endpoints rather than a generated RPC
// service, since no proto package backs an inbound admin surface in this
// tree (api/shardrpc covers only the outbound shard-leader calls).
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cascadedb/cascade/internal/altertable"
	"github.com/cascadedb/cascade/internal/backfill"
	cascadeerrors "github.com/cascadedb/cascade/internal/errors"
	"github.com/cascadedb/cascade/pkg/types"
)

// AlterTableRequest is the body of POST /v1/tables/{tableID}/alter.
type AlterTableRequest struct {
	ExpectedVersion int64 `json:"expected_version"`
}

// AlterTableResponse acknowledges a LaunchNextVersionIfNecessary call.
// The driver itself reports nothing beyond success/failure (§4.2), so
// there is nothing else to surface here.
type AlterTableResponse struct {
	RequestID string `json:"request_id"`
}

// BackfillJobResponse is the observability payload for GetBackfillJob
// (§6): the job's status and read-timestamp election progress, or a 404
// if no job is active for the table.
type BackfillJobResponse struct {
	TableID         string `json:"table_id"`
	IndexID         string `json:"index_id"`
	Status          string `json:"status"`
	TimestampChosen bool   `json:"timestamp_chosen"`
	ReadTimestamp   string `json:"read_timestamp,omitempty"`
	NumShards       int    `json:"num_shards"`
	ShardsPending   int    `json:"shards_pending"`
	RequestID       string `json:"request_id"`
}

// AdminHandler serves LaunchNextVersionIfNecessary and GetBackfillJob over
// HTTP for the surrounding catalog manager (§6's "exposed to" contract).
type AdminHandler struct {
	driver *altertable.Driver
	jobs   *backfill.Registry
}

// NewAdminHandler constructs an AdminHandler wired to driver and jobs.
func NewAdminHandler(driver *altertable.Driver, jobs *backfill.Registry) *AdminHandler {
	return &AdminHandler{driver: driver, jobs: jobs}
}

// ServeHTTP routes /v1/tables/{tableID}/alter and
// /v1/tables/{tableID}/backfill. A lightweight hand-rolled router is used
// rather than a mux library, mirroring the teacher's own choice of
// stdlib-only routing for this surface.
func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	path := strings.TrimPrefix(r.URL.Path, "/v1/tables/")
	tableID, rest, ok := strings.Cut(path, "/")
	if !ok || tableID == "" {
		writeError(w, http.StatusNotFound, "not found", requestID)
		return
	}

	switch rest {
	case "alter":
		h.handleAlter(w, r, types.TableID(tableID), requestID)
	case "backfill":
		h.handleGetBackfillJob(w, r, types.TableID(tableID), requestID)
	default:
		writeError(w, http.StatusNotFound, "not found", requestID)
	}
}

func (h *AdminHandler) handleAlter(w http.ResponseWriter, r *http.Request, tableID types.TableID, requestID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", requestID)
		return
	}

	var req AlterTableRequest
	if q := r.URL.Query().Get("expected_version"); q != "" {
		v, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid expected_version", requestID)
			return
		}
		req.ExpectedVersion = v
	} else if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.driver.LaunchNextVersionIfNecessary(r.Context(), tableID, req.ExpectedVersion); err != nil {
		writeError(w, statusForError(err), fmt.Sprintf("alter failed: %v", err), requestID)
		return
	}

	writeJSON(w, http.StatusOK, AlterTableResponse{RequestID: requestID})
}

func (h *AdminHandler) handleGetBackfillJob(w http.ResponseWriter, r *http.Request, tableID types.TableID, requestID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", requestID)
		return
	}

	job, ok := h.jobs.GetBackfillJob(tableID)
	if !ok {
		writeError(w, http.StatusNotFound, "no active backfill job for table", requestID)
		return
	}

	ts, chosen := job.ReadTimestamp()
	resp := BackfillJobResponse{
		TableID:         string(job.TableID),
		IndexID:         string(job.IndexID),
		Status:          string(job.Status()),
		TimestampChosen: chosen,
		NumShards:       job.NumShards(),
		ShardsPending:   job.ShardsPending(),
		RequestID:       requestID,
	}
	if chosen {
		resp.ReadTimestamp = ts.String()
	}

	writeJSON(w, http.StatusOK, resp)
}

// statusForError maps a CascadeError's category to an HTTP status code,
// following §7's recovery table: AlreadyPresent is caller-visible success
// territory but still reported as a normal 200-adjacent 409 here since an
// admin caller (unlike the internal driver-to-driver path) wants to see
// the conflict; NotLeader/IO map to 503 (retry against the new leader);
// everything else is 500.
func statusForError(err error) int {
	switch cascadeerrors.GetCategory(err) {
	case cascadeerrors.CategoryAlreadyPresent:
		return http.StatusConflict
	case cascadeerrors.CategoryNotLeader, cascadeerrors.CategoryIO:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
