package server

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veristream/veristream/internal/model"
	"github.com/veristream/veristream/internal/pipeline"
	"github.com/veristream/veristream/internal/stream"
	"github.com/veristream/veristream/internal/util"
)

type analyzeRequest struct {
	ArticleText string `json:"articleText"`
	ArticleURL  string `json:"articleUrl"`
}

type sourcesRequest struct {
	Claim         string `json:"claim"`
	CurrentSource string `json:"currentSource"`
}

type researchRequest struct {
	Claim string `json:"claim"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"activeSessions": s.coord.Active(),
	})
}

// handleAnalyze runs the verification pipeline. Clients that accept
// text/event-stream get the incremental event channel; everything else gets
// the single-object JSON response for backward compatibility.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "articleText and articleUrl are required"})
		return
	}

	if req.ArticleText == "" || req.ArticleURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "articleText and articleUrl are required"})
		return
	}
	if _, err := util.DomainFromURL(req.ArticleURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "articleUrl must be a valid URL"})
		return
	}

	articleText := req.ArticleText
	if util.LooksLikeHTML(articleText) {
		articleText = util.VisibleText(articleText)
	}
	if utf8.RuneCountInString(articleText) < s.minArticle {
		c.JSON(http.StatusBadRequest, gin.H{"error": "articleText is too short to analyze"})
		return
	}

	session := s.coord.Begin(req.ArticleURL)
	defer s.coord.End(session.ID)

	pipeReq := pipeline.Request{ArticleText: articleText, ArticleURL: req.ArticleURL}

	if !acceptsEventStream(c.GetHeader("Accept")) {
		s.analyzeJSON(c, pipeReq, session)
		return
	}

	emitter, err := stream.NewSSEEmitter(c.Writer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	if err := s.pipe.Run(c.Request.Context(), pipeReq, session, emitter); err != nil {
		// The stream already carried the terminal error event, or the
		// client is gone. Either way the response is finished.
		s.logger.Warn("analysis aborted", zap.String("session", session.ID.String()), zap.Error(err))
	}
}

// analyzeJSON is the non-streaming mode: the same pipeline behind a
// collecting emitter, answered as one object.
func (s *Server) analyzeJSON(c *gin.Context, req pipeline.Request, session *model.AnalysisSession) {
	collector := &stream.Collector{}
	if err := s.pipe.Run(c.Request.Context(), req, session, collector); err != nil {
		s.logger.Error("analysis failed", zap.String("session", session.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"siteAnalysis": session.Site,
		"sentiment":    session.Sentiment,
		"authorship":   session.Authorship,
		"results":      session.Results,
	})
}

func acceptsEventStream(accept string) bool {
	return strings.Contains(accept, "text/event-stream")
}

func (s *Server) handleAdditionalSources(c *gin.Context) {
	var req sourcesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Claim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claim is required"})
		return
	}

	sources, err := s.researcher.AdditionalSources(c.Request.Context(), req.Claim, req.CurrentSource)
	if err != nil {
		s.logger.Error("additional sources failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch additional sources."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"sources": sources,
	})
}

func (s *Server) handleResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Claim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claim is required"})
		return
	}

	brief, err := s.researcher.DeepResearch(c.Request.Context(), req.Claim)
	if err != nil {
		s.logger.Error("deep research failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to research the claim."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"research": brief,
	})
}
