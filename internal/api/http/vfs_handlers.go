package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

type createFileRequest struct {
	Name      string         `json:"name"`
	ParentID  string         `json:"parentId" binding:"required"`
	FileType  types.FileType `json:"fileType" binding:"required"`
	AppID     string         `json:"appId" binding:"required"`
	ContentID string         `json:"contentId"`
}

type createFolderRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parentId" binding:"required"`
}

type updateNodeRequest struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parentId"`
}

// ListNodes returns the raw node map
func (h *Handlers) ListNodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rootId": h.desktop.FS.GetRoot().ID,
		"nodes":  h.desktop.FS.Nodes(),
	})
}

// GetNode returns one node with its path
func (h *Handlers) GetNode(c *gin.Context) {
	nodeID := c.Param("id")
	node, ok := h.desktop.FS.GetNode(nodeID)
	if !ok {
		notFound(c, "node", nodeID)
		return
	}
	path, _ := h.desktop.FS.PathOf(nodeID)
	c.JSON(http.StatusOK, gin.H{"node": node, "path": path})
}

// GetChildren lists a folder's children in order
func (h *Handlers) GetChildren(c *gin.Context) {
	nodeID := c.Param("id")
	if _, ok := h.desktop.FS.GetNode(nodeID); !ok {
		notFound(c, "node", nodeID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"children": h.desktop.FS.GetChildren(nodeID)})
}

// FindByPath resolves ?p=/slash/delimited/path
func (h *Handlers) FindByPath(c *gin.Context) {
	p := c.DefaultQuery("p", "/")
	node, ok := h.desktop.FS.FindNodeByPath(p)
	if !ok {
		notFound(c, "path", p)
		return
	}
	c.JSON(http.StatusOK, gin.H{"node": node, "path": p})
}

// Glob searches node paths with ?pattern=
func (h *Handlers) Glob(c *gin.Context) {
	pattern := c.Query("pattern")
	if pattern == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pattern is required"})
		return
	}
	matches, err := h.desktop.FS.Glob(pattern)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pattern": pattern, "matches": matches})
}

// CreateFile adds a file node
func (h *Handlers) CreateFile(c *gin.Context) {
	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	node, err := h.desktop.FS.CreateFile(req.Name, req.ParentID, req.FileType, req.AppID, req.ContentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

// CreateFolder adds an empty folder
func (h *Handlers) CreateFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	node, err := h.desktop.FS.CreateFolder(req.Name, req.ParentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

// UpdateNode renames and/or moves a node
func (h *Handlers) UpdateNode(c *gin.Context) {
	var req updateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	nodeID := c.Param("id")
	if _, ok := h.desktop.FS.GetNode(nodeID); !ok {
		notFound(c, "node", nodeID)
		return
	}
	if req.Name != nil {
		if err := h.desktop.FS.Rename(nodeID, *req.Name); err != nil {
			fail(c, err)
			return
		}
	}
	if req.ParentID != nil {
		if err := h.desktop.FS.Move(nodeID, *req.ParentID); err != nil {
			fail(c, err)
			return
		}
	}
	h.GetNode(c)
}

// DeleteNode removes a node and its subtree
func (h *Handlers) DeleteNode(c *gin.Context) {
	removed, err := h.desktop.FS.Delete(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// OpenFile launches the app a file points at
func (h *Handlers) OpenFile(c *gin.Context) {
	w, err := h.desktop.OpenFile(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if w == nil {
		c.JSON(http.StatusOK, gin.H{"window": nil})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"window": w})
}
