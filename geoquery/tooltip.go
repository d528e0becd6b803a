package geoquery

import (
	"fmt"
	"strings"

	"github.com/goldjoker92/vigiApp-sub000/types"
)

// Tooltip is the human-readable block embedded in each result row.
type Tooltip struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Meta     TooltipMeta `json:"meta"`
}

type TooltipMeta struct {
	AlertID    string `json:"alertId"`
	UserID     string `json:"userId"`
	RadiusText string `json:"radiusText"`
}

func tooltipFor(fp types.Footprint) Tooltip {
	title := fp.Kind
	if title == "" {
		title = "Ocorrência"
	}
	return Tooltip{
		Title:    title,
		Subtitle: subtitleFor(fp),
		Meta: TooltipMeta{
			AlertID:    fp.AlertID,
			UserID:     fp.UserID,
			RadiusText: formatRadius(fp.RadiusM),
		},
	}
}

// subtitleFor falls back through address granularity: street+number, then
// city/UF, then a generic placeholder.
func subtitleFor(fp types.Footprint) string {
	if fp.Street != "" {
		if fp.Number != "" {
			return fp.Street + ", " + fp.Number
		}
		return fp.Street
	}
	if fp.City != "" {
		if fp.UF != "" {
			return fp.City + "/" + fp.UF
		}
		return fp.City
	}
	return "sua região"
}

func formatRadius(radiusM float64) string {
	if radiusM >= 1000 {
		km := radiusM / 1000
		return strings.Replace(fmt.Sprintf("%.1f km", km), ".", ",", 1)
	}
	return fmt.Sprintf("%.0f m", radiusM)
}
