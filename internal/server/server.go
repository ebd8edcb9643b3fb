// Package server exposes a computed budget report over a read-only HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"fjacquet/budget-csv/internal/aggregator"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/report"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Snapshot is the immutable data served by the API, computed once before the
// server starts.
type Snapshot struct {
	Report       *aggregator.Report
	Transactions []*models.Transaction
}

// Options configures the HTTP listener.
type Options struct {
	Address        string
	AllowedOrigins []string
	Delimiter      rune
}

// Server serves a Snapshot.
type Server struct {
	snapshot  Snapshot
	options   Options
	logger    logging.Logger
	generator *report.ReportGenerator
	engine    *gin.Engine
}

// NewServer builds the router for the snapshot.
func NewServer(snapshot Snapshot, options Options, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDefault()
	}
	s := &Server{
		snapshot:  snapshot,
		options:   options,
		logger:    logger.WithField(logging.FieldComponent, "Server"),
		generator: report.NewReportGenerator(logger, options.Delimiter),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	// cors.New panics on an empty origin list
	if len(s.options.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.options.AllowedOrigins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: false,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.GET("/report", s.getReport)
	api.GET("/categories", s.getCategories)
	api.GET("/months", s.getMonths)
	api.GET("/transactions", s.getTransactions)

	return r
}

// getReport renders the report as JSON, or in the format named by ?format=.
func (s *Server) getReport(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", report.FormatJSON))
	if format == report.FormatJSON {
		c.JSON(http.StatusOK, s.snapshot.Report)
		return
	}

	data, err := s.generator.GenerateReport(s.snapshot.Report, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contentTypes := map[string]string{
		report.FormatText: "text/plain; charset=utf-8",
		report.FormatCSV:  "text/csv; charset=utf-8",
		report.FormatYAML: "application/yaml",
	}
	c.Data(http.StatusOK, contentTypes[format], data)
}

func (s *Server) getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot.Report.Categories())
}

func (s *Server) getMonths(c *gin.Context) {
	names := make([]string, 0, len(s.snapshot.Report.Months))
	for _, month := range s.snapshot.Report.Months {
		names = append(names, month.String())
	}
	c.JSON(http.StatusOK, gin.H{"months": names})
}

type transactionView struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	Counterparty string `json:"counterparty,omitempty"`
	Direction    string `json:"direction"`
	Amount       string `json:"amount"`
	Category     string `json:"category"`
}

// getTransactions lists categorized transactions, optionally filtered by
// ?category= and ?month= (full English month name, case-insensitive).
func (s *Server) getTransactions(c *gin.Context) {
	category := c.Query("category")
	month := c.Query("month")
	if month != "" && !validMonth(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown month: " + month})
		return
	}

	views := []transactionView{}
	for _, tx := range s.snapshot.Transactions {
		name := ""
		if claimed, ok := tx.Category(); ok {
			name = claimed.Name
		}
		if category != "" && name != category {
			continue
		}
		if month != "" && !strings.EqualFold(tx.Date.Month().String(), month) {
			continue
		}
		views = append(views, transactionView{
			ID:           tx.ID,
			Date:         tx.Date.Format("2006-01-02"),
			Description:  tx.Description,
			Counterparty: tx.CounterpartyAccount,
			Direction:    string(tx.Direction),
			Amount:       tx.Amount.StringFixed(2),
			Category:     name,
		})
	}
	c.JSON(http.StatusOK, views)
}

func validMonth(name string) bool {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return true
		}
	}
	return false
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(
			logging.F(logging.FieldPath, c.Request.URL.Path),
			logging.F(logging.FieldStatus, c.Writer.Status()),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()),
		).Debug("Handled request")
	}
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.options.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", logging.F(logging.FieldAddress, s.options.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
