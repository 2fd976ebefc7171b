package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/osalumni/ventoux/command/reader"
	"github.com/osalumni/ventoux/config/configparser"
	"github.com/osalumni/ventoux/logger"
	"github.com/osalumni/ventoux/machine"
	"github.com/osalumni/ventoux/telnet"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := configparser.Defaults()
	if *optConfig != "" {
		loaded, err := configparser.Load(*optConfig)
		if err != nil {
			slog.Error("loading configuration", "file", *optConfig, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *optLogFile != "" {
		cfg.LogFile = *optLogFile
	}

	log, logFile, err := logger.New(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		slog.Error("opening log file", "file", cfg.LogFile, "err", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	slog.SetDefault(log)

	log.Info("ventoux started")

	m := machine.New(machine.Config{
		Quantum:       cfg.Quantum,
		ClockInterval: cfg.ClockInterval,
		Terminals:     cfg.Terminals,
		ProgramDir:    cfg.ProgramDir,
		BootProgram:   cfg.BootProgram,
	}, log)

	listener, err := telnet.New(cfg.TelnetAddr, m, log)
	if err != nil {
		log.Error("starting telnet listener", "err", err)
		os.Exit(1)
	}
	listener.Start()

	go m.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("received shutdown signal")
		listener.Stop()
		m.Stop()
		os.Exit(0)
	}()

	reader.ConsoleReader(m)

	log.Info("shutting down telnet listener")
	listener.Stop()
	log.Info("shutting down machine")
	m.Stop()
}
