package sgp4

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/soniakeys/unit"
)

// OMM represents a single Orbit Mean-elements Message object from a JSON representation.
// Fields are based on the CCSDS OMM standard and common JSON outputs (e.g., from space-track.org).
type OMM struct {
	ObjectName         string  `json:"OBJECT_NAME"`
	ObjectID           string  `json:"OBJECT_ID"`   // e.g., "1998-067A"
	EpochStr           string  `json:"EPOCH"`       // ISO 8601 e.g., "2025-05-26T13:06:57.824640"
	MeanMotion         float64 `json:"MEAN_MOTION"` // rev/day
	Eccentricity       float64 `json:"ECCENTRICITY"`
	Inclination        float64 `json:"INCLINATION"`       // degrees
	RAOfAscNode        float64 `json:"RA_OF_ASC_NODE"`    // degrees
	ArgOfPericenter    float64 `json:"ARG_OF_PERICENTER"` // degrees
	MeanAnomaly        float64 `json:"MEAN_ANOMALY"`      // degrees
	EphemerisType      int     `json:"EPHEMERIS_TYPE"`
	ClassificationType string  `json:"CLASSIFICATION_TYPE"`
	NoradCatID         int     `json:"NORAD_CAT_ID"`
	ElementSetNo       int     `json:"ELEMENT_SET_NO"`
	RevAtEpoch         int     `json:"REV_AT_EPOCH"`
	BStar              float64 `json:"BSTAR"`            // 1/EarthRadii
	MeanMotionDot      float64 `json:"MEAN_MOTION_DOT"`  // rev/day^2
	MeanMotionDDot     float64 `json:"MEAN_MOTION_DDOT"` // rev/day^3

	CenterName        string `json:"CENTER_NAME,omitempty"`
	RefFrame          string `json:"REF_FRAME,omitempty"`
	TimeSystem        string `json:"TIME_SYSTEM,omitempty"`
	MeanElementTheory string `json:"MEAN_ELEMENT_THEORY,omitempty"`
}

// ParseOMMs parses a JSON byte slice containing an array of OMM objects.
func ParseOMMs(jsonData []byte) ([]OMM, error) {
	var omms []OMM
	if err := json.Unmarshal(jsonData, &omms); err != nil {
		return nil, fmt.Errorf("error unmarshalling OMM JSON: %w", err)
	}
	return omms, nil
}

// Epoch parses the message epoch. Epochs without a zone are UTC.
func (o *OMM) Epoch() (Epoch, error) {
	s := strings.TrimSpace(o.EpochStr)
	// A fractional second is accepted by both layouts.
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return NewEpoch(t), nil
		}
	}
	return Epoch{}, fmt.Errorf("error parsing OMM epoch string '%s'", o.EpochStr)
}

// MeanElements converts the message to validated mean elements.
func (o *OMM) MeanElements() (MeanElements, error) {
	if o.MeanElementTheory != "" && !strings.EqualFold(o.MeanElementTheory, "SGP4") {
		return MeanElements{}, fmt.Errorf("object %d: unsupported mean element theory %q", o.NoradCatID, o.MeanElementTheory)
	}
	epoch, err := o.Epoch()
	if err != nil {
		return MeanElements{}, fmt.Errorf("object %d: %w", o.NoradCatID, err)
	}
	el, err := NewMeanElements(
		epoch,
		o.Eccentricity,
		unit.AngleFromDeg(o.Inclination),
		unit.AngleFromDeg(o.RAOfAscNode),
		unit.AngleFromDeg(o.ArgOfPericenter),
		unit.AngleFromDeg(o.MeanAnomaly),
		MeanMotionFromRevPerDay(o.MeanMotion),
		o.BStar,
	)
	if err != nil {
		return MeanElements{}, fmt.Errorf("object %d: %w", o.NoradCatID, err)
	}
	return el, nil
}
