package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stake-plus/summarybot/src/data"
	"github.com/stake-plus/summarybot/src/prompts"
)

// TemplateStore lists and publishes prompt template versions.
type TemplateStore interface {
	List(profile string) ([]data.PromptTemplate, error)
	Publish(profile, role, body, author string) (*data.PromptTemplate, error)
}

// Templates serves the prompt template admin API.
type Templates struct {
	store   TemplateStore
	library *prompts.Library
	logger  zerolog.Logger
}

func NewTemplates(store TemplateStore, library *prompts.Library, logger zerolog.Logger) Templates {
	return Templates{store: store, library: library, logger: logger}
}

func validRole(role string) bool {
	return role == prompts.RoleSystem || role == prompts.RoleUser
}

// List returns every stored version for a profile.
func (t Templates) List(c *gin.Context) {
	profile := c.Param("profile")
	if _, err := prompts.Default(profile, prompts.RoleSystem); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
		return
	}
	versions, err := t.store.List(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "templates": versions})
}

// Active returns the body currently used for a profile and role. Version 0 means the
// built-in default.
func (t Templates) Active(c *gin.Context) {
	profile, role := c.Param("profile"), c.Param("role")
	if !validRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "role must be system or user"})
		return
	}
	body, version, err := t.library.Body(profile, role)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":     profile,
		"role":        role,
		"version":     version,
		"fingerprint": data.TemplateFingerprint(body),
		"body":        body,
	})
}

// Publish validates and stores a new template version.
func (t Templates) Publish(c *gin.Context) {
	profile, role := c.Param("profile"), c.Param("role")
	if !validRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "role must be system or user"})
		return
	}
	if _, err := prompts.Default(profile, role); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "template body is empty"})
		return
	}
	if err := prompts.Validate(req.Body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": err.Error()})
		return
	}

	author := c.GetString("sub")
	tmpl, err := t.store.Publish(profile, role, req.Body, author)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	t.logger.Info().
		Str("author", author).
		Str("profile", profile).
		Str("role", role).
		Uint32("version", tmpl.Version).
		Msg("prompt template published")
	c.JSON(http.StatusCreated, tmpl)
}
