package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orbitkit/sgp4"
)

var csvHeader = []string{"object", "time", "tsince_min", "x_km", "y_km", "z_km", "vx_km_s", "vy_km_s", "vz_km_s"}

func newStateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the state at one or more offsets from the element epoch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(v.GetString("log-level"))
			objects, err := loadObjects(v)
			if err != nil {
				return err
			}
			offsets, err := parseOffsets(v.GetStringSlice("offset"))
			if err != nil {
				return err
			}

			opts := []sgp4.Option{sgp4.WithLogger(logger)}
			if v.GetBool("legacy-integrator") {
				opts = append(opts, sgp4.WithIntegratorMode(sgp4.Cached))
			}

			w := csv.NewWriter(cmd.OutOrStdout())
			if err := w.Write(csvHeader); err != nil {
				return err
			}
			for _, obj := range objects {
				prop, err := sgp4.New(obj.elements, opts...)
				if err != nil {
					return fmt.Errorf("%s: %w", obj.name, err)
				}
				for _, tsince := range offsets {
					cs, err := prop.Propagate(tsince)
					if err != nil {
						level.Warn(logger).Log("msg", "propagation failed", "object", obj.name, "tsince", tsince, "err", err)
						continue
					}
					if err := writeState(w, obj.name, tsince, cs); err != nil {
						return err
					}
				}
			}
			w.Flush()
			return w.Error()
		},
	}
	cmd.Flags().StringSlice("offset", []string{"0"}, "minutes since epoch, comma separated")
	return cmd
}

func newEphemerisCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ephemeris",
		Short: "Print states over a time window for every element set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(v.GetString("log-level"))
			objects, err := loadObjects(v)
			if err != nil {
				return err
			}

			start := objects[0].elements.Epoch.Time()
			if s := v.GetString("start"); s != "" {
				if start, err = time.Parse(time.RFC3339, s); err != nil {
					return fmt.Errorf("invalid start: %w", err)
				}
			}
			stop := start.Add(v.GetDuration("duration"))
			if s := v.GetString("stop"); s != "" {
				if stop, err = time.Parse(time.RFC3339, s); err != nil {
					return fmt.Errorf("invalid stop: %w", err)
				}
			}

			elements := make([]sgp4.MeanElements, len(objects))
			for i, obj := range objects {
				elements[i] = obj.elements
			}
			out, err := sgp4.Ephemeris(cmd.Context(), elements, start, stop, v.GetDuration("step"), sgp4.EphemerisOptions{
				Workers: v.GetInt("workers"),
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			return writeSeries(cmd.OutOrStdout(), objects, out)
		},
	}
	f := cmd.Flags()
	f.String("start", "", "window start, RFC3339 (defaults to the first epoch)")
	f.String("stop", "", "window stop, RFC3339")
	f.Duration("duration", 90*time.Minute, "window length when stop is not set")
	f.Duration("step", time.Minute, "sampling step")
	f.Int("workers", 4, "number of propagation workers")
	return cmd
}

func writeSeries(out io.Writer, objects []object, series []sgp4.Series) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range series {
		name := objects[s.Index].name
		for _, cs := range s.States {
			if err := writeState(w, name, cs.Epoch.Sub(s.Elements.Epoch), cs); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func writeState(w *csv.Writer, name string, tsince float64, cs sgp4.CartesianState) error {
	km := func(x float64) string { return strconv.FormatFloat(x/1000.0, 'f', 6, 64) }
	return w.Write([]string{
		name,
		cs.Epoch.Time().Format(time.RFC3339Nano),
		strconv.FormatFloat(tsince, 'f', 6, 64),
		km(cs.Position.X), km(cs.Position.Y), km(cs.Position.Z),
		km(cs.Velocity.X), km(cs.Velocity.Y), km(cs.Velocity.Z),
	})
}

// parseOffsets accepts comma or space separated minutes. Values coming from
// SGP4PROP_OFFSET are only split on whitespace by viper.
func parseOffsets(raw []string) ([]float64, error) {
	offsets := make([]float64, 0, len(raw))
	for _, item := range raw {
		for _, s := range strings.Split(item, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid offset %q: %w", s, err)
			}
			offsets = append(offsets, f)
		}
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("no offsets given")
	}
	return offsets, nil
}
