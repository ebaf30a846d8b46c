package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Skufu/abxprotocol/internal/protocol"
)

type routerOptions struct {
	AllowOrigins []string
	MaxBodyBytes int64
}

func defaultRouterOptions() routerOptions {
	return routerOptions{AllowOrigins: []string{"*"}, MaxBodyBytes: 1 << 20}
}

// RecommendationRequest is the form collector payload. Labels are matched
// case-insensitively against the protocol's option catalogue.
type RecommendationRequest struct {
	OrganSystem string   `json:"organSystem" binding:"required"`
	Diagnosis   string   `json:"diagnosis" binding:"required"`
	Severity    string   `json:"severity" binding:"required"`
	PCNAllergy  bool     `json:"pcnAllergy"`
	RiskFactors []string `json:"riskFactors" binding:"dive,required"`
}

type RecommendationResponse struct {
	protocol.Evaluation
	StatusLabel string `json:"statusLabel"`
}

func setupRouter(db HealthChecker, logger *zap.Logger, opts routerOptions) *gin.Engine {
	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(logger),
		gin.Recovery(),
		limitBodySize(opts.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins:  opts.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("readiness ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     fmt.Sprintf("unhealthy: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
	})

	api := router.Group("/api")

	api.GET("/protocol", func(c *gin.Context) {
		c.JSON(http.StatusOK, protocol.ProtocolMetadata())
	})

	api.GET("/protocol/options", func(c *gin.Context) {
		c.JSON(http.StatusOK, protocol.OptionCatalogue())
	})

	api.GET("/reference/dosing", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Renal Adjustments (Select Agents)",
			"adjustments": protocol.DosingAdjustments(),
			"seeAlso":     "Section 7.3 of the protocol",
		})
	})

	api.GET("/reference/microbiology", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title": "Rapid Diagnostic Interpretation",
			"hints": protocol.MicrobiologyGuide(),
		})
	})

	api.POST("/recommendations", func(c *gin.Context) {
		var payload RecommendationRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "validation_failed",
					"details": describeFieldErrors(verrs),
				})
				return
			}
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		input, err := payload.toInput()
		if err != nil {
			var invalid *protocol.ValidationError
			if errors.As(err, &invalid) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "validation_failed",
					"details": invalid.Messages(),
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		eval := protocol.Evaluate(input)
		c.JSON(http.StatusOK, RecommendationResponse{
			Evaluation:  eval,
			StatusLabel: eval.Verification.Status.Label(),
		})
	})

	return router
}

// toInput resolves the raw labels to canonical option values. Every field
// that does not match is reported, not just the first.
func (r RecommendationRequest) toInput() (protocol.ClinicalInput, error) {
	raw := protocol.ClinicalInput{
		OrganSystem: protocol.OrganSystem(r.OrganSystem),
		Diagnosis:   protocol.Diagnosis(r.Diagnosis),
		Severity:    protocol.Severity(r.Severity),
		PCNAllergy:  r.PCNAllergy,
	}
	for _, rf := range r.RiskFactors {
		raw.RiskFactors = append(raw.RiskFactors, protocol.RiskFactor(rf))
	}

	input := raw.Canonical()
	return input, input.Validate()
}

func describeFieldErrors(verrs validator.ValidationErrors) []string {
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", fe.Field()))
		default:
			out = append(out, fmt.Sprintf("%s failed %q check", fe.Field(), fe.Tag()))
		}
	}
	return out
}
