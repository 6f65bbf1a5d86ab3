package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/novara/internal/ics"
	"github.com/dukerupert/novara/internal/planning"
	"github.com/dukerupert/novara/internal/store"
)

type ExportHandler struct {
	planner *planning.Service
	members *store.MemberStore
	logger  *slog.Logger
	now     func() time.Time
}

func NewExportHandler(svc *planning.Service, members *store.MemberStore, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{planner: svc, members: members, logger: logger, now: time.Now}
}

// Calendar serves the current plan set as an iCalendar file. An empty
// plan set still yields a valid, empty calendar.
func (h *ExportHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List()
	if err != nil {
		h.logger.Error("list members for export", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load members")
		return
	}

	content := ics.Generate(h.planner.Plans(), members, h.now().UTC())

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="novara.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}
