package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldjoker92/vigiApp-sub000/db"
	"github.com/goldjoker92/vigiApp-sub000/dedup"
	"github.com/goldjoker92/vigiApp-sub000/geocode"
	"github.com/goldjoker92/vigiApp-sub000/logging"
	"github.com/goldjoker92/vigiApp-sub000/types"
)

// SubmitRequest is the submit-path body. Coordinates and user identity are
// mandatory; ttlDays is clamped server-side.
type SubmitRequest struct {
	UserID  string              `json:"userId"`
	Coords  types.GeoPoint      `json:"coords"`
	Payload types.ReportPayload `json:"payload"`
	TTLDays int                 `json:"ttlDays"`
}

// SubmitReport screens and deduplicates one incident report.
func SubmitReport(c *gin.Context, svc *dedup.Service) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	// best-effort address fill for the footprint subtitle; reporter-typed
	// fields always win
	if req.Coords.Valid() && geocode.Enabled() {
		if err := geocode.FillAddress(c.Request.Context(), req.Coords.Latitude, req.Coords.Longitude, &req.Payload); err != nil {
			logging.L().Debugw("reverse geocode skipped", "err", err)
		}
	}

	id, err := svc.Upsert(c.Request.Context(), types.IncidentReport{
		UserID:  req.UserID,
		Coords:  req.Coords,
		Payload: req.Payload,
	}, req.TTLDays)
	if err != nil {
		status, body := submitErrorResponse(err)
		c.JSON(status, body)
		return
	}

	logging.L().Infow("report accepted", "incident", id, "user", db.HashString(req.UserID))
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

func submitErrorResponse(err error) (int, gin.H) {
	switch types.ErrCode(err) {
	case types.CodeAuthRequired:
		return http.StatusUnauthorized, gin.H{"ok": false, "code": types.CodeAuthRequired, "error": err.Error()}
	case types.CodeCoordsRequired:
		return http.StatusBadRequest, gin.H{"ok": false, "code": types.CodeCoordsRequired, "error": err.Error()}
	case types.CodePrivacyBlocked:
		ce := err.(*types.CodedError)
		return http.StatusUnprocessableEntity, gin.H{
			"ok":         false,
			"code":       types.CodePrivacyBlocked,
			"error":      ce.Message,
			"suggestion": ce.Suggestion,
		}
	default:
		return http.StatusServiceUnavailable, gin.H{"ok": false, "code": types.CodeUnavailable, "error": "tente novamente"}
	}
}
