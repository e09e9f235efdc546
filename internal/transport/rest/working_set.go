package rest

import "net/http"

type workingSetResponse struct {
	Items    []itemDTO `json:"items"`
	Cursor   int       `json:"cursor"`
	Modality string    `json:"modality"`
}

func (h *Handler) getWorkingSet(w http.ResponseWriter, r *http.Request) {
	items, cursor := h.svc.DueWorkingSet()
	writeJSON(w, http.StatusOK, workingSetResponse{
		Items:    toItemDTOs(items),
		Cursor:   cursor,
		Modality: h.svc.ActiveModality().String(),
	})
}

func (h *Handler) advanceWorkingSet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AdvanceCursor(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.getWorkingSet(w, r)
}

func (h *Handler) reselectWorkingSet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MakeNextSelection(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.getWorkingSet(w, r)
}
