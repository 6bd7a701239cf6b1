package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sliink/logmerge/internal/api/docs"
	"github.com/sliink/logmerge/internal/config"
	"github.com/sliink/logmerge/internal/core"
	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin/inputs"
	"github.com/sliink/logmerge/internal/plugin/outputs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	msgWrongFileCount = "please upload exactly two log files"
	msgNoResults      = "No matching log entries found."
)

// API represents the REST API for merging log files
type API struct {
	cfg    config.Config
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
	port   int
	host   string
}

// MergeResponse is the body of a successful merge
type MergeResponse struct {
	ID      string        `json:"id"`
	Columns []string      `json:"columns"`
	Total   int           `json:"total"`
	Shown   int           `json:"shown"`
	Rows    []outputs.Row `json:"rows"`
	Message string        `json:"message"`
}

// ErrorResponse is the body of a rejected request
type ErrorResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// NewAPI creates a new API instance
// @title           Log Merge API
// @version         1.0
// @description     Merge two log files chronologically and filter the result
// @BasePath        /
func NewAPI(cfg config.Config, logger *slog.Logger) *API {
	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	api := &API{
		cfg:    cfg,
		logger: logger,
		router: gin.Default(),
		port:   cfg.APIPort,
		host:   cfg.APIHost,
	}

	api.setupRoutes()

	return api
}

// setupRoutes configures all the API routes
func (a *API) setupRoutes() {
	a.router.GET("/health", a.healthCheck)
	a.router.POST("/merge", a.merge)

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Handler exposes the router, mainly for tests
func (a *API) Handler() http.Handler {
	return a.router
}

// Start starts the API server
func (a *API) Start() error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a.server.ListenAndServe()
}

// Stop stops the API server
func (a *API) Stop(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// healthCheck handles GET /health
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (a *API) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}

// merge handles POST /merge
// @Summary      Merge and filter two log files
// @Description  Parses both uploads, merges them by timestamp and applies the optional filters
// @Tags         merge
// @Accept       multipart/form-data
// @Produce      json
// @Param        workflow     formData  file    false  "Workflow log"
// @Param        connections  formData  file    false  "Connections log"
// @Param        files        formData  file    false  "Two log files, workflow first"
// @Param        start_time   formData  string  false  "Window start, HH:MM:SS"
// @Param        end_time     formData  string  false  "Window end, HH:MM:SS"
// @Param        tool_id      formData  string  false  "Tool ID substring"
// @Param        log_levels   formData  []string  false  "Log level tags"
// @Param        limit        formData  int     false  "Rows to return"
// @Success      200  {object}  MergeResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /merge [post]
func (a *API) merge(c *gin.Context) {
	id := uuid.NewString()
	logger := a.logger.With("request_id", id)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{ID: id, Error: "expected a multipart form: " + err.Error()})
		return
	}

	headers, ok := uploadedFiles(form)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{ID: id, Error: msgWrongFileCount})
		return
	}

	limit := a.cfg.PreviewRows
	if raw := strings.TrimSpace(c.PostForm("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{ID: id, Error: "limit must be a positive integer"})
			return
		}
	}

	sources := make([]model.SourceFile, 0, len(headers))
	for i, header := range headers {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{ID: id, Error: "open upload: " + err.Error()})
			return
		}
		defer file.Close()

		reader, err := inputs.NewReader(header.Filename, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{ID: id, Error: err.Error()})
			return
		}
		defer reader.Close()

		sources = append(sources, model.SourceFile{Source: model.Sources[i], Reader: reader})
	}

	engine := core.NewEngine()
	engine.GetEventBus().LogTo(logger, "request_logger")

	table, err := engine.Merge(sources, a.query(c))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrInvalidTimeFormat) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{ID: id, Error: err.Error()})
		return
	}

	head := table.Head(limit)
	message := msgNoResults
	if !table.Empty() {
		message = fmt.Sprintf("Merged and filtered %d log entries.", table.Len())
	}
	logger.Info("merge complete", "total", table.Len(), "shown", head.Len())

	c.JSON(http.StatusOK, MergeResponse{
		ID:      id,
		Columns: table.Columns,
		Total:   table.Len(),
		Shown:   head.Len(),
		Rows:    outputs.RowsOf(head),
		Message: message,
	})
}

// query reads the filter fields. Missing log_levels fall back to the
// configured defaults; a present but empty field disables the filter.
func (a *API) query(c *gin.Context) model.Query {
	q := model.Query{
		StartTime: c.PostForm("start_time"),
		EndTime:   c.PostForm("end_time"),
		ToolID:    c.PostForm("tool_id"),
	}

	values, present := c.GetPostFormArray("log_levels")
	if !present {
		q.LogLevels = a.cfg.DefaultLevels
		return q
	}
	for _, value := range values {
		for _, level := range strings.Split(value, ",") {
			if level = strings.TrimSpace(level); level != "" {
				q.LogLevels = append(q.LogLevels, level)
			}
		}
	}
	return q
}

// uploadedFiles returns the two uploads in label order. Named workflow and
// connections fields take precedence over a positional files list.
func uploadedFiles(form *multipart.Form) ([]*multipart.FileHeader, bool) {
	workflow, connections := form.File[string(model.SourceWorkflow)], form.File[string(model.SourceConnections)]
	if len(workflow) > 0 || len(connections) > 0 {
		if len(workflow) != 1 || len(connections) != 1 {
			return nil, false
		}
		return []*multipart.FileHeader{workflow[0], connections[0]}, true
	}

	files := form.File["files"]
	if len(files) != len(model.Sources) {
		return nil, false
	}
	return files, true
}
