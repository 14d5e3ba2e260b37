package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/voltlab/regen2go/internal/api"
	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/persistence"
	"github.com/voltlab/regen2go/internal/regulator"
	"github.com/voltlab/regen2go/internal/sources"
	"github.com/voltlab/regen2go/internal/statistics"
	"github.com/voltlab/regen2go/internal/ui"
)

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	InitializeObjects()

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9000
				}
				addr := fmt.Sprintf(":%d", port)
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				server := &http.Server{Addr: addr, Handler: mux}
				go func() {
					<-ctx.Done()
					ui.Info("Stopping statistics server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					_ = server.Shutdown(timeoutCtx)
				}()
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST api
			g.Add(func() error {
				host := configuration.CurrentConfig.Api.Host
				port := configuration.CurrentConfig.Api.Port
				if port <= 0 || port >= 65535 {
					port = 9001
				}
				echoRest := api.CreateRestService(pers)
				go func() {
					<-ctx.Done()
					ui.Info("Stopping REST api...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					_ = echoRest.Shutdown(timeoutCtx)
				}()
				err := echoRest.Start(fmt.Sprintf("%s:%d", host, port))
				if err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping REST api: " + err.Error())
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === source monitoring
		for _, source := range sources.SourceMap.Items() {
			s := source
			pollingRate := configuration.CurrentConfig.SourcePollingRate
			mon := NewSourceMonitor(s, pollingRate)

			g.Add(func() error {
				err := mon.Run(ctx)
				ui.Info("Source monitor for source %s stopped.", s.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error monitoring source: %v", err)
				}
			})
		}
	}
	{
		// === regulator loops
		for _, regulatorConfig := range configuration.CurrentConfig.Regulators {
			config := regulatorConfig
			reg, exists := regulator.RegulatorMap.Get(config.ID)
			if !exists {
				ui.Fatal("Regulator %s was not initialized", config.ID)
			}

			loop := NewRegulatorLoop(reg, config)
			g.Add(func() error {
				err := loop.Run(ctx)
				ui.Info("Regulator loop for %s stopped.", config.ID)
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error in regulator loop: %v", err)
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects builds the source and regulator instances from the
// current configuration and registers the statistics collectors.
func InitializeObjects() {
	var sourceList []sources.Source
	for _, config := range configuration.CurrentConfig.Sources {
		source, err := sources.NewSource(config, configuration.CurrentConfig.Profiles)
		if err != nil {
			ui.Fatal("Unable to process source configuration %s: %v", config.ID, err)
		}
		sourceList = append(sourceList, source)

		currentValue, err := source.GetValue()
		if err != nil {
			ui.Warning("Error reading source %s: %v", config.ID, err)
		} else {
			source.SetMovingAvg(currentValue)
		}

		sources.SourceMap.Set(config.ID, source)
	}

	sourceCollector := statistics.NewSourceCollector(sourceList)
	statistics.Register(sourceCollector)

	var regulatorList []*regulator.Regulator
	for _, config := range configuration.CurrentConfig.Regulators {
		reg, err := regulator.NewRegulator(config.ID, RegulatorParams(config))
		if err != nil {
			ui.Fatal("Unable to process regulator configuration %s: %v", config.ID, err)
		}
		regulatorList = append(regulatorList, reg)
		regulator.RegulatorMap.Set(config.ID, reg)
	}

	regulatorCollector := statistics.NewRegulatorCollector(regulatorList)
	statistics.Register(regulatorCollector)
}

// RegulatorParams maps a regulator configuration entry onto the
// immutable parameter set of a control session.
func RegulatorParams(config configuration.RegulatorConfig) regulator.Params {
	return regulator.Params{
		Kp:               config.Kp,
		Ki:               config.Ki,
		Kd:               config.Kd,
		Dt:               config.TickInterval.Seconds(),
		TargetVoltage:    config.TargetVoltage,
		ThresholdVoltage: config.ThresholdVoltage,
		MinimumVoltage:   config.MinimumVoltage,
		IntegralLimit:    config.IntegralLimit,
		MaxCurrent:       config.MaxCurrent,
	}
}
