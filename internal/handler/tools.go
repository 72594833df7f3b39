package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
	"github.com/neurotracker/neurotracker-go/internal/service"
	"go.uber.org/zap"
)

// ToolsHandler serves the tool pages and the profile of a signed-in session.
type ToolsHandler struct {
	sessions  *navigation.SessionManager
	attention *service.AttentionService
	meeting   *service.MeetingService
	calendar  *service.CalendarService
	compat    *service.CompatibilityService
	profile   *service.ProfileService
	log       *zap.Logger
	now       func() time.Time
}

func NewToolsHandler(
	sessions *navigation.SessionManager,
	attention *service.AttentionService,
	meeting *service.MeetingService,
	calendar *service.CalendarService,
	compat *service.CompatibilityService,
	profile *service.ProfileService,
	log *zap.Logger,
) *ToolsHandler {
	return &ToolsHandler{
		sessions:  sessions,
		attention: attention,
		meeting:   meeting,
		calendar:  calendar,
		compat:    compat,
		profile:   profile,
		log:       log,
		now:       time.Now,
	}
}

// identity returns the signed-in user of the request's session. Tools are
// only reachable once the session is past the survey.
func (h *ToolsHandler) identity(w http.ResponseWriter, r *http.Request) (navigation.Identity, bool) {
	ctrl, err := controller(h.sessions, r)
	if err != nil {
		writeError(w, h.log, err)
		return navigation.Identity{}, false
	}
	if !ctrl.Screen().Authenticated() {
		writeJSON(w, http.StatusForbidden, errorResponse("finish the assessment first"))
		return navigation.Identity{}, false
	}
	return ctrl.Identity(), true
}

// HandleProfile handles GET /api/v1/profile requests.
func (h *ToolsHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	p, err := h.profile.Profile(r.Context(), id.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleGetAttention handles GET /api/v1/tools/attention requests.
func (h *ToolsHandler) HandleGetAttention(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	s, err := h.attention.Settings(r.Context(), id.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": s, "cameras": service.Cameras})
}

// HandlePutAttention handles PUT /api/v1/tools/attention requests.
func (h *ToolsHandler) HandlePutAttention(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var s model.AttentionSettings
	if !decode(w, r, &s) {
		return
	}
	if err := h.attention.Save(r.Context(), id.Email, s); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandleResetAttention handles POST /api/v1/tools/attention/reset requests.
func (h *ToolsHandler) HandleResetAttention(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	s, err := h.attention.Reset(r.Context(), id.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandleClassify handles POST /api/v1/tools/attention/classify requests.
func (h *ToolsHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var sample model.PoseSample
	if !decode(w, r, &sample) {
		return
	}
	status, err := h.attention.Classify(r.Context(), id.Email, sample)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.AttentionStatus{"status": status})
}

// HandleGetMeeting handles GET /api/v1/tools/meeting requests.
func (h *ToolsHandler) HandleGetMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	s, err := h.meeting.Settings(r.Context(), id.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"settings":             s,
		"ai_models":            service.MeetingAIModels,
		"transcript_models":    service.TranscriptModels,
		"summarization_levels": service.SummarizationLevels,
		"suggested_level":      service.SuggestLevel(),
	})
}

// HandlePutMeeting handles PUT /api/v1/tools/meeting requests.
func (h *ToolsHandler) HandlePutMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var s model.MeetingSettings
	if !decode(w, r, &s) {
		return
	}
	if err := h.meeting.Save(r.Context(), id.Email, s); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandleSuggestMeeting handles POST /api/v1/tools/meeting/suggest requests.
func (h *ToolsHandler) HandleSuggestMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	s, err := h.meeting.ApplySuggestion(r.Context(), id.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandleCalendar handles GET /api/v1/tools/calendar requests. The optional
// month parameter is YYYY-MM; green, orange and red filter priorities and all
// default to true.
func (h *ToolsHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	q := r.URL.Query()
	now := h.now().UTC()
	year, month := now.Year(), now.Month()
	if m := q.Get("month"); m != "" {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("month must look like 2006-01"))
			return
		}
		year, month = t.Year(), t.Month()
	}

	filter := model.PriorityFilter{
		Green:  queryBool(q.Get("green"), true),
		Orange: queryBool(q.Get("orange"), true),
		Red:    queryBool(q.Get("red"), true),
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":    h.calendar.Month(year, month, filter),
		"upcoming": h.calendar.Upcoming(now),
		"labels":   service.PriorityLabels,
	})
}

func queryBool(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func queryInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// probeFromQuery reads whatever hardware the client detected.
func probeFromQuery(r *http.Request) model.HardwareProbe {
	q := r.URL.Query()
	return model.HardwareProbe{
		Cores:          queryInt(q.Get("cores")),
		Renderer:       q.Get("renderer"),
		DeviceMemoryGB: queryInt(q.Get("memory")),
		StorageQuotaGB: queryInt(q.Get("storage")),
	}
}

// HandleGetModels handles GET /api/v1/tools/ai-models requests.
func (h *ToolsHandler) HandleGetModels(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}
	c, err := h.compat.Estimate(r.Context(), probeFromQuery(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"compatibility": c, "models": service.AIModels()})
}

// HandlePutModels handles PUT /api/v1/tools/ai-models requests.
func (h *ToolsHandler) HandlePutModels(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}
	var cfg model.SystemConfig
	if !decode(w, r, &cfg) {
		return
	}
	c, err := h.compat.Save(r.Context(), cfg)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleModelsChart handles GET /api/v1/tools/ai-models/chart requests and
// returns ECharts options.
func (h *ToolsHandler) HandleModelsChart(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}
	c, err := h.compat.Estimate(r.Context(), probeFromQuery(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, service.ChartOptions(c))
}
