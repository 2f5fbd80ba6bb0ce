package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"trainlights"
	"trainlights/leds"
)

// Populated by ldflags
var (
	version            string
	buildUnixTimestamp string
	commitHash         string
)

func init() {
	trainlights.InitializeLogger()
}

func main() {
	ts, _ := strconv.ParseInt(buildUnixTimestamp, 10, 64)
	buildTime := time.Unix(ts, 0)

	versionFlag := flag.Bool("version", false, "Print version")
	systemdFlag := flag.Bool("systemd", false, "Print systemd service file")
	configFlag := flag.String("config", "", "Path to config file")
	selftestFlag := flag.String("selftest", "", "Run a hardware self test (all, off, seq, random)")
	flag.Parse()

	if *versionFlag {
		fmt.Println("Trainlights version:", version)
		fmt.Println("Built on:", buildTime)
		fmt.Println("Commit hash:", commitHash)
		return
	}

	if *systemdFlag {
		trainlights.SystemdServiceFile()
		return
	}

	log.Info().
		Str("version", version).
		Str("build_timestamp", buildTime.Format(time.RFC3339)).
		Str("commit_hash", commitHash).
		Msg("Initializing trainlights")

	config, err := trainlights.NewConfig(trainlights.NewOsFS(), trainlights.Flags{
		ConfigPath: *configFlag,
	}, os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("Config initialization failed")
	}

	controller, err := leds.NewController(leds.NewHardwareLines(), config.LedOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("LED controller initialization failed")
	}
	log.Info().
		Int("leds", controller.Count()).
		Msg("LED controller ready on GPIO 4-27 (green 1-6, amber 7-12, red 13-24)")

	if *selftestFlag != "" {
		if err := trainlights.RunSelfTest(controller, *selftestFlag); err != nil {
			log.Fatal().Err(err).Msg("Self test failed")
		}
		return
	}

	if err := trainlights.StartServer(config, controller); err != nil {
		log.Err(err).Msg("Server closed with error")
	}
}
