package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goldjoker92/vigiApp-sub000/geoquery"
)

// QueryFootprints serves the map layer: circle or bbox retrieval of incident
// footprints. Read-only; an API key is enforced only when one is configured.
func QueryFootprints(c *gin.Context, svc *geoquery.Service, apiKey string, timeout time.Duration) {
	if apiKey != "" && c.GetHeader("x-api-key") != apiKey {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return
	}

	mode := geoquery.Mode(c.DefaultQuery("mode", string(geoquery.ModeCircle)))
	params, err := parseQueryParams(c, mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	resp, err := svc.Query(ctx, mode, params)
	if err != nil {
		if ctx.Err() != nil {
			c.JSON(http.StatusGatewayTimeout, gin.H{"ok": false, "error": "query timed out"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseQueryParams(c *gin.Context, mode geoquery.Mode) (geoquery.Params, error) {
	var p geoquery.Params
	var err error

	switch mode {
	case geoquery.ModeCircle:
		if p.Lat, err = requiredFloat(c, "lat"); err != nil {
			return p, err
		}
		if p.Lng, err = requiredFloat(c, "lng"); err != nil {
			return p, err
		}
		// invalid radius falls back to the default inside the service
		p.RadiusM, _ = strconv.ParseFloat(c.Query("radius_m"), 64)
	case geoquery.ModeBbox:
		if p.North, err = requiredFloat(c, "north"); err != nil {
			return p, err
		}
		if p.South, err = requiredFloat(c, "south"); err != nil {
			return p, err
		}
		if p.East, err = requiredFloat(c, "east"); err != nil {
			return p, err
		}
		if p.West, err = requiredFloat(c, "west"); err != nil {
			return p, err
		}
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			t, err = time.Parse(time.RFC3339, since)
		}
		if err == nil {
			p.Since = t
		}
	}
	p.SinceDays, _ = strconv.Atoi(c.Query("sinceDays"))
	p.Limit, _ = strconv.Atoi(c.Query("limit"))
	return p, nil
}

func requiredFloat(c *gin.Context, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, &paramError{name: name, reason: "missing"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &paramError{name: name, reason: "not a number"}
	}
	return v, nil
}

type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string { return "parameter " + e.name + ": " + e.reason }
