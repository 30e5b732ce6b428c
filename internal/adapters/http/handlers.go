package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/solver"
	"svw.info/pips/internal/usecase"
)

// Handler exposes the service as a JSON API. Puzzles travel as text in the
// board/pieces/constraints format.
type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/count", h.handleCount)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodePost enforces POST and decodes the body into req.
func decodePost(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// placementJSON is the wire form of a placement.
type placementJSON struct {
	Piece     string       `json:"piece"`
	Point     domain.Point `json:"point"`
	Direction string       `json:"direction"`
}

func placementsOut(placements []domain.Placement) []placementJSON {
	out := make([]placementJSON, len(placements))
	for i, pl := range placements {
		out[i] = placementJSON{
			Piece:     pl.Piece.String(),
			Point:     pl.Point,
			Direction: pl.Direction.String(),
		}
	}
	return out
}

// ---- Solve ----

type solveReq struct {
	Puzzle string `json:"puzzle"`
}
type solveResp struct {
	Placements []placementJSON `json:"placements,omitempty"`
	DurationMs int64           `json:"durationMs"`
	Nodes      int             `json:"nodes"`
	Error      string          `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if !decodePost(w, r, &req) {
		return
	}
	g, err := h.UC.Parse(req.Puzzle)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: err.Error()})
		return
	}
	placements, st, err := h.UC.Solve(r.Context(), g)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, solver.ErrUnsolvable) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
		return
	}
	writeJSON(w, http.StatusOK, solveResp{
		Placements: placementsOut(placements),
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Count ----

type countReq struct {
	Puzzle string `json:"puzzle"`
	Limit  int    `json:"limit,omitempty"`
}
type countResp struct {
	Solutions  int             `json:"solutions"`
	First      []placementJSON `json:"first,omitempty"`
	DurationMs int64           `json:"durationMs"`
	Nodes      int             `json:"nodes"`
	Error      string          `json:"error,omitempty"`
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	var req countReq
	if !decodePost(w, r, &req) {
		return
	}
	g, err := h.UC.Parse(req.Puzzle)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, countResp{Error: err.Error()})
		return
	}
	n, first, st, err := h.UC.Count(r.Context(), g, req.Limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, countResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
		return
	}
	writeJSON(w, http.StatusOK, countResp{
		Solutions:  n,
		First:      placementsOut(first),
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Validate ----

type validateReq struct {
	Puzzle string `json:"puzzle"`
}
type validateResp struct {
	OK        bool              `json:"ok"`
	Conflicts []domain.Conflict `json:"conflicts,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if !decodePost(w, r, &req) {
		return
	}
	g, err := h.UC.Parse(req.Puzzle)
	if err != nil {
		// Parse already validates; report the failure as a result.
		writeJSON(w, http.StatusOK, validateResp{OK: false, Error: err.Error()})
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), g)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, validateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Hint ----

type hintReq struct {
	Puzzle string `json:"puzzle"`
}
type hintResp struct {
	Found   bool           `json:"found"`
	Hint    *placementJSON `json:"hint,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if !decodePost(w, r, &req) {
		return
	}
	g, err := h.UC.Parse(req.Puzzle)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: err.Error()})
		return
	}
	hh, found, err := h.UC.Hint(r.Context(), g)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, hintResp{Error: err.Error()})
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, hintResp{Found: false})
		return
	}
	pl := placementsOut([]domain.Placement{hh.Placement})[0]
	writeJSON(w, http.StatusOK, hintResp{Found: true, Hint: &pl, Message: hh.Message})
}

// ---- Generate ----

type generateReq struct {
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}
type generateResp struct {
	Puzzle     *domain.Puzzle `json:"puzzle,omitempty"`
	DurationMs int64          `json:"durationMs"`
	Nodes      int            `json:"nodes"`
	Error      string         `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if !decodePost(w, r, &req) {
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, st, err := h.UC.Generate(r.Context(), seed, domain.ParseDifficulty(req.Difficulty))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, generateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{Puzzle: p, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var p domain.Puzzle
	if !decodePost(w, r, &p) {
		return
	}
	if _, err := h.UC.Parse(p.Text); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: err.Error()})
		return
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

type loadReq struct {
	ID string `json:"id"`
}
type loadResp struct {
	Puzzle *domain.Puzzle `json:"puzzle,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if !decodePost(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "missing id"})
		return
	}
	p, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Puzzle: p})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	ps, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, listResp{Puzzles: ps})
}
