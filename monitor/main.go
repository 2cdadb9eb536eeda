package main

import (
	"flag"
	"fmt"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/trainspeed/pkg/chart"
	"github.com/itohio/trainspeed/pkg/config"
	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/history"
	"github.com/itohio/trainspeed/pkg/link"
)

func main() {
	var (
		portFlag    = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag  = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag    = flag.Bool("mock", false, "Use a simulated track instead of the serial port")
		metricsFlag = flag.String("metrics", "", "Prometheus listen address override (\"-\" disables)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	switch *metricsFlag {
	case "":
	case "-":
		cfg.Metrics.Addr = ""
	default:
		cfg.Metrics.Addr = *metricsFlag
	}

	serveMetrics(cfg.Metrics.Addr)

	application := app.NewWithID("com.itohio.trainspeed")

	window := application.NewWindow("Train Speed")
	window.Resize(fyne.NewSize(1000, 600))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configFile: *configFlag,
		history:    history.New(cfg.History.Window),
		window:     window,
		useMock:    *mockFlag,
	}

	toolbar := createToolbar(state)

	state.chart = chart.New(cfg.History.Window)

	state.speedText = canvas.NewText("--", theme.Color(theme.ColorNameForeground))
	state.speedText.TextSize = 48
	state.speedText.TextStyle = fyne.TextStyle{Bold: true}
	state.statsLabel = widget.NewLabel(formatStats(history.Stats{}))

	side := container.NewVBox(
		container.NewCenter(state.speedText),
		widget.NewSeparator(),
		state.statsLabel,
	)

	content := container.NewBorder(
		toolbar,
		nil,
		nil,
		side,
		state.chart,
	)

	window.SetContent(content)
	window.SetOnClosed(func() {
		closeChain(state.chain)
	})
	window.ShowAndRun()
}

// readingChain tracks the goroutines between the device and the history
// for graceful shutdown.
type readingChain struct {
	device         link.Device
	readings       <-chan detector.Reading
	entries        <-chan history.Entry
	historyRoutine chan struct{} // Closed when the history goroutine exits
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configFile string
	device     link.Device
	history    *history.History
	chart      *chart.Chart
	speedText  *canvas.Text
	statsLabel *widget.Label
	window     fyne.Window
	connectBtn *widget.Button
	useMock    bool
	chain      *readingChain // nil if not connected

	callbackOnce sync.Once
}

// createToolbar creates the toolbar with Connect, Settings and Clear buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	clearBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		state.history.Clear()
		state.chart.UpdateData(nil, history.Stats{})
		updateStatus(state, history.Stats{})
	})

	return container.NewBorder(
		nil,
		nil,
		container.NewHBox(connectBtn, settingsBtn),
		container.NewHBox(clearBtn),
		nil,
	)
}

// closeChain gracefully closes the reading chain.
// Closing the device closes its readings channel, which drains the stamper
// and ends the history goroutine.
func closeChain(chain *readingChain) {
	if chain == nil {
		return
	}

	if chain.device != nil {
		chain.device.Close()
	}

	if chain.historyRoutine != nil {
		<-chain.historyRoutine
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		closeChain(state.chain)
		state.chain = nil
		state.device = nil
		state.connectBtn.SetIcon(theme.LoginIcon())
		if state.useMock {
			fmt.Println("Disconnected from simulated track")
		} else {
			fmt.Println("Disconnected from serial port")
		}
		return
	}

	var device link.Device
	if state.useMock {
		device = link.NewMock(state.cfg)
		fmt.Println("Using simulated track")
	} else {
		device = link.New(state.cfg.Serial.Port, state.cfg.Serial.BaudRate, link.DefaultBufferSize)
	}

	if err := device.Connect(); err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to start simulated track: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
		}
		return
	}
	state.device = device
	state.connectBtn.SetIcon(theme.LogoutIcon())
	if !state.useMock {
		fmt.Printf("Connected to serial port: %s\n", state.cfg.Serial.Port)
	}

	state.history.ResetShutdown()

	// The history outlives connections, register the UI callback once.
	state.callbackOnce.Do(func() {
		state.history.OnUpdate(func(entries []history.Entry, stats history.Stats) {
			fyne.Do(func() {
				state.chart.UpdateData(entries, stats)
				updateStatus(state, stats)
			})
		})
	})

	readings := device.Readings()
	entries := history.NewStamper(link.DefaultBufferSize)(readings)

	historyDone := make(chan struct{})
	go func() {
		defer close(historyDone)
		state.history.ProcessEntries(entries)
	}()

	state.chain = &readingChain{
		device:         device,
		readings:       readings,
		entries:        entries,
		historyRoutine: historyDone,
	}
}

// updateStatus refreshes the speed and statistics labels.
func updateStatus(state *appState, stats history.Stats) {
	state.speedText.Text = formatLast(stats)
	state.speedText.Color = lastColor(stats)
	state.speedText.Refresh()
	state.statsLabel.SetText(formatStats(stats))
}
