package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/eiannone/keyboard"

	"multilift/src/car"
	"multilift/src/config"
	"multilift/src/dispatcher"
	"multilift/src/panel"
	"multilift/src/types"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML fleet config")
	numCars := flag.Int("cars", 0, "Override number of cars")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	initLogger(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "err", err)
		os.Exit(1)
	}
	if *numCars > 0 {
		cfg.NumCars = *numCars
	}

	disp := dispatcher.New(cfg)
	for id := 1; id <= cfg.NumCars; id++ {
		disp.AddCar(car.New(id, cfg.BottomFloor))
	}

	panels := make(map[int]*panel.Panel, cfg.NumFloors)
	for floor := cfg.BottomFloor; floor <= cfg.TopFloor(); floor++ {
		p := panel.New(floor, disp)
		panels[floor] = p
		disp.RegisterSink(p)
	}

	slog.Info("Fleet ready", "cars", cfg.NumCars, "floors", cfg.NumFloors)
	runCallLoop(disp, panels, cfg)
}

// runCallLoop reads single keystrokes: digits accumulate into a floor
// number, u/d submits the call with that direction, q or Ctrl-C quits.
func runCallLoop(disp *dispatcher.Dispatcher, panels map[int]*panel.Panel, cfg config.Config) {
	fmt.Printf("Type a floor number (%d-%d), then u/d to call. q quits.\n",
		cfg.BottomFloor, cfg.TopFloor())

	pendingFloor := -1
	for {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			slog.Error("Keyboard read failed", "err", err)
			break
		}
		if key == keyboard.KeyCtrlC || char == 'q' {
			break
		}

		switch {
		case char >= '0' && char <= '9':
			pendingFloor = pushDigit(pendingFloor, char)

		case char == 'u' || char == 'd':
			if pendingFloor == -1 {
				fmt.Println("Pick a floor digit first")
				continue
			}
			dir := types.Up
			if char == 'd' {
				dir = types.Down
			}
			p, ok := panels[pendingFloor]
			if !ok {
				fmt.Printf("No panel at floor %d\n", pendingFloor)
				continue
			}
			if err := p.RequestLift(dir); err != nil {
				slog.Error("Request rejected", "floor", pendingFloor, "err", err)
			}
			pendingFloor = -1
		}
	}

	disp.Wait()
	slog.Info("All requests served, shutting down")
}

// pushDigit accumulates multi-digit floor input; pending is -1 while no
// digit has been typed yet.
func pushDigit(pending int, digit rune) int {
	if pending < 0 {
		return int(digit - '0')
	}
	return pending*10 + int(digit-'0')
}

// initLogger sets up global logging with compact time and file:line source.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(handler))
}
