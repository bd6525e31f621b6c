package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/theme"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	desktop *desktop.Desktop
}

// NewHandlers creates a new handler set
func NewHandlers(d *desktop.Desktop) *Handlers {
	return &Handlers{desktop: d}
}

// Health handles the health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"windows":  h.desktop.Windows.Stats(),
		"registry": h.desktop.Registry.Stats(),
		"nodes":    h.desktop.FS.Len(),
		"theme":    h.desktop.Theme.Mode(),
	})
}

// Snapshot returns the UI-facing desktop state
func (h *Handlers) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.desktop.Snapshot())
}

// ============================================================================
// Windows
// ============================================================================

type openRequest struct {
	AppID string      `json:"appId" binding:"required"`
	Props types.Props `json:"props"`
}

type positionRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

type sizeRequest struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

type splitRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// ListWindows lists open windows with focus state
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state": h.desktop.Windows.State(),
		"stats": h.desktop.Windows.Stats(),
	})
}

// GetWindow returns one window
func (h *Handlers) GetWindow(c *gin.Context) {
	w, ok := h.desktop.Windows.Window(c.Param("id"))
	if !ok {
		notFound(c, "window", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, w)
}

// OpenApp opens a window. The sticky-note app answers 202 because its
// window is created by note reconciliation.
func (h *Handlers) OpenApp(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	w, err := h.desktop.Windows.OpenApp(req.AppID, req.Props)
	if err != nil {
		fail(c, err)
		return
	}
	if w == nil {
		c.JSON(http.StatusAccepted, gin.H{"appId": req.AppID, "window": nil})
		return
	}
	c.JSON(http.StatusCreated, w)
}

// FocusWindow raises a window
func (h *Handlers) FocusWindow(c *gin.Context) {
	windowID := c.Param("id")
	if _, ok := h.desktop.Windows.Window(windowID); !ok {
		notFound(c, "window", windowID)
		return
	}
	raised := h.desktop.Windows.FocusWindow(windowID)
	c.JSON(http.StatusOK, gin.H{"success": true, "raised": raised, "window_id": windowID})
}

// MoveWindow repositions a window
func (h *Handlers) MoveWindow(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.mutate(c, func(windowID string) bool {
		return h.desktop.Windows.MoveWindow(windowID, types.Position{X: *req.X, Y: *req.Y})
	})
}

// ResizeWindow replaces a window's size
func (h *Handlers) ResizeWindow(c *gin.Context) {
	var req sizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.mutate(c, func(windowID string) bool {
		return h.desktop.Windows.ResizeWindow(windowID, types.Size{Width: req.Width, Height: req.Height})
	})
}

// SplitWindow snaps a window to half the viewport
func (h *Handlers) SplitWindow(c *gin.Context) {
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := window.ParseDirection(req.Direction)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.mutate(c, func(windowID string) bool {
		return h.desktop.Windows.SplitWindow(windowID, d)
	})
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	windowID := c.Param("id")
	if !h.desktop.Windows.CloseWindow(windowID) {
		notFound(c, "window", windowID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "window_id": windowID})
}

// mutate runs fn on the window named in the path and answers with the
// updated window
func (h *Handlers) mutate(c *gin.Context, fn func(windowID string) bool) {
	windowID := c.Param("id")
	if !fn(windowID) {
		notFound(c, "window", windowID)
		return
	}
	w, _ := h.desktop.Windows.Window(windowID)
	c.JSON(http.StatusOK, w)
}

// SetViewport records the UI's visible canvas area
func (h *Handlers) SetViewport(c *gin.Context) {
	var v window.Viewport
	if err := c.ShouldBindJSON(&v); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.desktop.Windows.SetViewport(v); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// ============================================================================
// Theme, notes, apps
// ============================================================================

type themeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// GetTheme returns the active theme
func (h *Handlers) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":     h.desktop.Theme.Mode(),
		"topInset": h.desktop.Theme.TopInset(),
		"modes":    theme.Modes(),
	})
}

// SetTheme switches the theme mode
func (h *Handlers) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.desktop.Theme.SetMode(theme.Mode(req.Mode)); err != nil {
		badRequest(c, err)
		return
	}
	h.GetTheme(c)
}

type noteRequest struct {
	Text string `json:"text"`
}

// ListNotes lists sticky notes
func (h *Handlers) ListNotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notes": h.desktop.Notes.List()})
}

// CreateNote adds a sticky note; its window follows through reconciliation
func (h *Handlers) CreateNote(c *gin.Context) {
	note, err := h.desktop.Notes.Create()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// UpdateNote replaces a note's text
func (h *Handlers) UpdateNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	noteID := c.Param("id")
	if err := h.desktop.Notes.Update(noteID, req.Text); err != nil {
		fail(c, err)
		return
	}
	note, _ := h.desktop.Notes.Get(noteID)
	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note and, through reconciliation, its window
func (h *Handlers) DeleteNote(c *gin.Context) {
	noteID := c.Param("id")
	if err := h.desktop.Notes.Delete(noteID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "note_id": noteID})
}

// ListApps lists registered applications
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apps":  h.desktop.Registry.List(),
		"stats": h.desktop.Registry.Stats(),
	})
}

// GetApp returns one application definition
func (h *Handlers) GetApp(c *gin.Context) {
	app, ok := h.desktop.Registry.Lookup(c.Param("id"))
	if !ok {
		notFound(c, "app", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, app)
}
