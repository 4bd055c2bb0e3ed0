// Command sgp4prop propagates element sets and prints TEME states as CSV.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orbitkit/sgp4"
)

const issTLE = `ISS (ZARYA)
1 25544U 98067A   25138.37048074  .00007749  00000+0  14567-3 0  9994
2 25544  51.6369  94.7823 0002558 120.7586  15.7840 15.49587957510533`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "sgp4prop:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "sgp4prop",
		Short:         "Propagate two-line element sets with SGP4/SDP4",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v.SetEnvPrefix("SGP4PROP")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config %s: %w", cfgFile, err)
				}
			}
			return v.BindPFlags(cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("tle", issTLE, "element set text, two or three lines")
	pf.String("tle-file", "", "file holding a TLE catalog or an OMM JSON array")
	pf.Bool("legacy-integrator", false, "keep resonance integrator state between calls")
	pf.String("log-level", "info", "debug, info, warn or error")

	root.AddCommand(newStateCmd(v), newEphemerisCmd(v))
	return root
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	return level.NewFilter(logger, opt)
}

type object struct {
	name     string
	elements sgp4.MeanElements
}

// loadObjects reads the element sets named by the tle-file key, falling back
// to the inline tle key.
func loadObjects(v *viper.Viper) ([]object, error) {
	path := v.GetString("tle-file")
	if path == "" {
		tle, err := sgp4.ParseTLE(v.GetString("tle"))
		if err != nil {
			return nil, err
		}
		el, err := tle.MeanElements()
		if err != nil {
			return nil, err
		}
		return []object{{name: objectName(tle.Name, tle.SatelliteNumber), elements: el}}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var objects []object
	if strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		objects, err = loadOMMs(data)
	} else {
		objects, err = loadTLEs(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("no element sets in %s", path)
	}
	return objects, nil
}

func loadTLEs(data []byte) ([]object, error) {
	tles, err := sgp4.ParseTLEs(string(data))
	if err != nil {
		return nil, err
	}
	objects := make([]object, 0, len(tles))
	for _, tle := range tles {
		el, err := tle.MeanElements()
		if err != nil {
			return nil, err
		}
		objects = append(objects, object{name: objectName(tle.Name, tle.SatelliteNumber), elements: el})
	}
	return objects, nil
}

func loadOMMs(data []byte) ([]object, error) {
	omms, err := sgp4.ParseOMMs(data)
	if err != nil {
		return nil, err
	}
	objects := make([]object, 0, len(omms))
	for i := range omms {
		el, err := omms[i].MeanElements()
		if err != nil {
			return nil, err
		}
		objects = append(objects, object{name: objectName(omms[i].ObjectName, omms[i].NoradCatID), elements: el})
	}
	return objects, nil
}

func objectName(name string, catalog int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%05d", catalog)
}
