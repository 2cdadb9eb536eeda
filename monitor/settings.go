package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/trainspeed/pkg/config"
	"github.com/itohio/trainspeed/pkg/link"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createLayoutTab(state),
		createHistoryTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 400))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// saveConfig applies edit to a copy of the configuration, then validates and
// writes it. state.cfg only changes when both succeed. Errors are shown in a dialog.
func saveConfig(state *appState, edit func(*config.Config)) bool {
	if err := editConfig(state.cfg, state.configFile, edit); err != nil {
		dialog.ShowError(err, state.window)
		return false
	}
	return true
}

// editConfig runs edit on a copy of cfg and swaps it in once it is valid and saved.
func editConfig(cfg *config.Config, file string, edit func(*config.Config)) error {
	next := *cfg
	edit(&next)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := next.Save(file); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	*cfg = next
	return nil
}

// reconnect restarts the reading chain if it is running.
func reconnect(state *appState) {
	if state.device == nil || !state.device.IsConnected() {
		return
	}
	handleConnect(state) // Disconnect
	handleConnect(state) // Connect with new settings
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	ports, err := link.Ports()
	portOptions := []string{}
	if err == nil {
		for _, port := range ports {
			portOptions = append(portOptions, port.Name)
		}
	}

	currentPort := state.cfg.Serial.Port
	found := false
	for _, opt := range portOptions {
		if opt == currentPort {
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentPort != "" {
		portSelect.SetSelected(currentPort)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.BaudRate))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			changed := false
			ok := saveConfig(state, func(c *config.Config) {
				if portSelect.Selected != "" && portSelect.Selected != c.Serial.Port {
					c.Serial.Port = portSelect.Selected
					changed = true
				}
				if baud, err := strconv.Atoi(baudEntry.Text); err == nil && baud > 0 && baud != c.Serial.BaudRate {
					c.Serial.BaudRate = baud
					changed = true
				}
			})
			if !ok {
				return
			}
			if changed && !state.useMock {
				reconnect(state)
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createLayoutTab creates the layout tab. The values describe the track the
// firmware was built for and drive the simulated track.
func createLayoutTab(state *appState) *container.TabItem {
	distanceEntry := widget.NewEntry()
	distanceEntry.SetText(fmt.Sprintf("%.3f", state.cfg.Detector.DistanceM))

	scaleEntry := widget.NewEntry()
	scaleEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Detector.Scale))

	minEntry := widget.NewEntry()
	minEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Detector.MinKMH))

	maxEntry := widget.NewEntry()
	maxEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Detector.MaxKMH))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Sensor Distance (m)", Widget: distanceEntry},
			{Text: "Scale (1:n)", Widget: scaleEntry},
			{Text: "Min Speed (km/h)", Widget: minEntry},
			{Text: "Max Speed (km/h)", Widget: maxEntry},
		},
		OnSubmit: func() {
			ok := saveConfig(state, func(c *config.Config) {
				if d, err := strconv.ParseFloat(distanceEntry.Text, 64); err == nil {
					c.Detector.DistanceM = d
				}
				if s, err := strconv.ParseFloat(scaleEntry.Text, 64); err == nil {
					c.Detector.Scale = s
				}
				if v, err := strconv.ParseFloat(minEntry.Text, 64); err == nil {
					c.Detector.MinKMH = v
				}
				if v, err := strconv.ParseFloat(maxEntry.Text, 64); err == nil {
					c.Detector.MaxKMH = v
				}
			})
			if ok && state.useMock {
				reconnect(state)
			}
		},
	}

	return container.NewTabItem("Layout", form)
}

// createHistoryTab creates the History configuration tab.
func createHistoryTab(state *appState) *container.TabItem {
	windowEntry := widget.NewEntry()
	windowEntry.SetText(state.cfg.History.Window.String())

	metricsEntry := widget.NewEntry()
	metricsEntry.SetText(state.cfg.Metrics.Addr)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Window", Widget: windowEntry},
			{Text: "Metrics Address (restart)", Widget: metricsEntry},
		},
		OnSubmit: func() {
			saveConfig(state, func(c *config.Config) {
				if w, err := time.ParseDuration(windowEntry.Text); err == nil && w > 0 {
					c.History.Window = w
				}
				c.Metrics.Addr = metricsEntry.Text
			})
		},
	}

	return container.NewTabItem("History", form)
}

// createMockTab creates the simulated track configuration tab.
func createMockTab(state *appState) *container.TabItem {
	speedEntry := widget.NewEntry()
	speedEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.SpeedKMH))

	spreadEntry := widget.NewEntry()
	spreadEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Mock.Spread))

	periodEntry := widget.NewEntry()
	periodEntry.SetText(state.cfg.Mock.Period.String())

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Mock.TrainLengthM))

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(strconv.Itoa(int(state.cfg.Mock.Noise)))

	timeScaleEntry := widget.NewEntry()
	timeScaleEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.TimeScale))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Speed (km/h)", Widget: speedEntry},
			{Text: "Spread", Widget: spreadEntry},
			{Text: "Period", Widget: periodEntry},
			{Text: "Train Length (m)", Widget: lengthEntry},
			{Text: "Noise (ADC counts)", Widget: noiseEntry},
			{Text: "Time Scale (0=fastest)", Widget: timeScaleEntry},
		},
		OnSubmit: func() {
			ok := saveConfig(state, func(c *config.Config) {
				if v, err := strconv.ParseFloat(speedEntry.Text, 64); err == nil {
					c.Mock.SpeedKMH = v
				}
				if v, err := strconv.ParseFloat(spreadEntry.Text, 64); err == nil {
					c.Mock.Spread = v
				}
				if v, err := time.ParseDuration(periodEntry.Text); err == nil {
					c.Mock.Period = v
				}
				if v, err := strconv.ParseFloat(lengthEntry.Text, 64); err == nil {
					c.Mock.TrainLengthM = v
				}
				if v, err := strconv.ParseUint(noiseEntry.Text, 10, 16); err == nil {
					c.Mock.Noise = uint16(v)
				}
				if v, err := strconv.ParseFloat(timeScaleEntry.Text, 64); err == nil {
					c.Mock.TimeScale = v
				}
			})
			if ok && state.useMock {
				reconnect(state)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
