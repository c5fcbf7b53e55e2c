package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"TenderBoard/internal/domain"
	"TenderBoard/internal/filter"
	"TenderBoard/internal/infrastructure/dataset"
	"TenderBoard/internal/infrastructure/export"
	"TenderBoard/internal/usecase"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

const exportFilename = "filtered_contract_awards.csv"

// Server is the presentation layer: the dashboard page, the JSON API and the
// CSV export. It owns no state beyond its collaborators; every request runs
// one synchronous pipeline pass.
type Server struct {
	engine    *gin.Engine
	dashboard *usecase.Dashboard
	logger    *slog.Logger
	currency  string
	tmpl      *template.Template
}

// NewServer wires routes onto a gin engine.
func NewServer(dashboard *usecase.Dashboard, currency string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:    engine,
		dashboard: dashboard,
		logger:    logger,
		currency:  currency,
		tmpl:      tmpl,
	}

	engine.GET("/", s.index)
	engine.GET("/healthz", s.healthz)

	api := engine.Group("/api")
	api.GET("/dashboard", s.apiDashboard)
	api.GET("/records", s.apiRecords)
	api.GET("/export.csv", s.exportCSV)

	return s, nil
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) index(c *gin.Context) {
	view, ok := s.query(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.tmpl.Execute(c.Writer, s.indexData(view)); err != nil {
		s.logger.Error("render dashboard", "error", err)
	}
}

func (s *Server) apiDashboard(c *gin.Context) {
	view, ok := s.query(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dashboardResponse{
		Metrics: view.Summary,
		Charts: chartSet{
			NoticesOverTime: view.NoticesOverTime,
			TopWinners:      view.TopWinners,
			TopBuyers:       view.TopBuyers,
		},
		Filters:        echoFilters(view.Filters),
		MatchedRecords: len(view.Records),
	})
}

func (s *Server) apiRecords(c *gin.Context) {
	view, ok := s.query(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"row_count": len(view.Records),
		"records":   view.Records,
	})
}

func (s *Server) exportCSV(c *gin.Context) {
	view, ok := s.query(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, view.Records); err != nil {
		s.logger.Error("export csv", "error", err)
	}
}

// query runs the shared parse-filters-then-pipeline step. On failure it has
// already written the error response and returns ok=false.
func (s *Server) query(c *gin.Context) (*usecase.View, bool) {
	in, err := parseFilters(c)
	if err != nil {
		abortError(c, http.StatusBadRequest, err)
		return nil, false
	}

	view, err := s.dashboard.Query(c.Request.Context(), in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dataset.ErrDatasetUnavailable) || errors.Is(err, dataset.ErrSchemaMismatch) {
			status = http.StatusServiceUnavailable
		}
		s.logger.Error("dashboard query failed", "error", err)
		abortError(c, status, err)
		return nil, false
	}

	return view, true
}

// parseFilters reads the user-entered filter values from query parameters.
func parseFilters(c *gin.Context) (filter.Input, error) {
	in := filter.Input{
		CPVCodes: c.Query("cpv"),
		Keywords: c.Query("q"),
	}

	switch c.Query("match_all") {
	case "", "0", "false":
	case "1", "true", "on":
		in.MatchAll = true
	default:
		return filter.Input{}, fmt.Errorf("invalid match_all value %q", c.Query("match_all"))
	}

	var err error
	if in.From, err = parseDateParam(c.Query("from")); err != nil {
		return filter.Input{}, err
	}
	if in.To, err = parseDateParam(c.Query("to")); err != nil {
		return filter.Input{}, err
	}
	if !in.From.IsZero() && !in.To.IsZero() && in.To.Before(in.From) {
		return filter.Input{}, fmt.Errorf("date range end %s precedes start %s",
			in.To.Format(domain.DateLayout), in.From.Format(domain.DateLayout))
	}

	return in, nil
}

func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", raw, domain.DateLayout)
	}
	return t, nil
}

func abortError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
