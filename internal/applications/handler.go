package applications

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"internship-tracker/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the store.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.list)
	rg.POST("/applications", h.create)
	rg.GET("/applications/:id", h.get)
	rg.PATCH("/applications/:id", h.update)
	rg.DELETE("/applications/:id", h.remove)
	rg.POST("/deadline-mask", h.mask)
}

type listResponse struct {
	View   View          `json:"view"`
	Items  []Application `json:"items"`
	Counts Counts        `json:"counts"`
}

func (h *Handler) list(c *gin.Context) {
	view, err := ParseView(c.Query("view"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "view must be one of all, active, completed", nil)
		return
	}
	c.Set("view", string(view))

	all := h.Store.All()
	respond.OK(c, listResponse{
		View:   view,
		Items:  view.Select(all),
		Counts: CountViews(all),
	})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)

	app, ok := h.Store.Get(id)
	if !ok {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "application not found", nil)
		return
	}
	respond.OK(c, app)
}

type createRequest struct {
	Name              string `json:"name"`
	Link              string `json:"link"`
	Deadline          string `json:"deadline"`
	ApplicationStatus string `json:"applicationStatus"`
	ResultStatus      string `json:"resultStatus"`
}

func (h *Handler) create(c *gin.Context) {
	c.Set("mutation", "add")

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	draft := Draft{
		Name:     req.Name,
		Link:     req.Link,
		Deadline: req.Deadline,
	}
	if strings.TrimSpace(req.ApplicationStatus) != "" {
		status, err := ParseApplicationStatus(req.ApplicationStatus)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
			return
		}
		draft.ApplicationStatus = status
	}
	if strings.TrimSpace(req.ResultStatus) != "" {
		result, err := ParseResultStatus(req.ResultStatus)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
			return
		}
		draft.ResultStatus = result
	}

	app, ok, err := h.Store.Add(c.Request.Context(), draft)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to save application", nil)
		return
	}
	if !ok {
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeValidation, "name and deadline are required", nil)
		return
	}
	c.Set("applicationId", app.ID)
	respond.JSON(c, http.StatusCreated, app)
}

type updateRequest struct {
	ApplicationStatus *string `json:"applicationStatus"`
	ResultStatus      *string `json:"resultStatus"`
}

func (req updateRequest) updates() ([]Update, error) {
	var out []Update
	if req.ApplicationStatus != nil {
		status, err := ParseApplicationStatus(*req.ApplicationStatus)
		if err != nil {
			return nil, err
		}
		out = append(out, SetApplicationStatus{Status: status})
	}
	if req.ResultStatus != nil {
		result, err := ParseResultStatus(*req.ResultStatus)
		if err != nil {
			return nil, err
		}
		out = append(out, SetResultStatus{Result: result})
	}
	return out, nil
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	updates, err := req.updates()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		return
	}
	if len(updates) == 0 {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "applicationStatus or resultStatus is required", nil)
		return
	}

	ops := make([]string, 0, len(updates))
	for _, u := range updates {
		ops = append(ops, u.op())
	}
	c.Set("mutation", strings.Join(ops, ","))

	ok, err := h.Store.Update(c.Request.Context(), id, updates...)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to save application", nil)
		return
	}
	if !ok {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "application not found", nil)
		return
	}

	app, ok := h.Store.Get(id)
	if !ok {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "application not found", nil)
		return
	}
	respond.OK(c, app)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	c.Set("mutation", "remove")

	if _, err := h.Store.Remove(c.Request.Context(), id); err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to save application", nil)
		return
	}
	respond.NoContent(c)
}

type maskRequest struct {
	Raw string `json:"raw"`
}

func (h *Handler) mask(c *gin.Context) {
	var req maskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	respond.OK(c, gin.H{"deadline": MaskDeadline(req.Raw)})
}
