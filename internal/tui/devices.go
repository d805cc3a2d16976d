// SPDX-License-Identifier: MIT
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spectrum/internal/audio"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)
)

var (
	upKey     = key.NewBinding(key.WithKeys("up", "k"))
	downKey   = key.NewBinding(key.WithKeys("down", "j"))
	selectKey = key.NewBinding(key.WithKeys("enter"))
	quitKey   = key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"))
)

type devicesMsg struct {
	devices []audio.Device
}

type errMsg struct {
	err error
}

// DeviceListModel lets the user pick the line-in device for the analog
// source. Only input-capable devices are offered.
type DeviceListModel struct {
	fetch         func() ([]audio.Device, error)
	devices       []audio.Device
	selectedIndex int
	chosen        int
	viewport      viewport.Model
	ready         bool
	err           error
}

// NewDeviceListModel lists the devices returned by fetch.
// PortAudio must be initialized while the model runs.
func NewDeviceListModel(fetch func() ([]audio.Device, error)) DeviceListModel {
	return DeviceListModel{fetch: fetch, chosen: -1}
}

func (m DeviceListModel) Init() tea.Cmd {
	return func() tea.Msg {
		devices, err := m.fetch()
		if err != nil {
			return errMsg{err}
		}
		inputs := devices[:0:0]
		for _, d := range devices {
			if d.MaxInputChannels > 0 {
				inputs = append(inputs, d)
			}
		}
		return devicesMsg{inputs}
	}
}

func (m DeviceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.viewport.SetContent(m.renderDevices())

	case devicesMsg:
		m.devices = msg.devices
		if m.ready {
			m.viewport.SetContent(m.renderDevices())
		}

	case errMsg:
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit

		case key.Matches(msg, upKey):
			if m.selectedIndex > 0 {
				m.selectedIndex--
				m.viewport.SetContent(m.renderDevices())
			}

		case key.Matches(msg, downKey):
			if m.selectedIndex < len(m.devices)-1 {
				m.selectedIndex++
				m.viewport.SetContent(m.renderDevices())
			}

		case key.Matches(msg, selectKey):
			if len(m.devices) > 0 {
				m.chosen = m.devices[m.selectedIndex].ID
				return m, tea.Quit
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DeviceListModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}
	if !m.ready {
		return "Initializing..."
	}

	title := titleStyle.Render("Analog Input Device")
	help := infoStyle.Render("↑/↓: Navigate • Enter: Select • q: Quit")
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.viewport.View(), help)
}

// Chosen returns the selected device ID, or false if the user quit.
func (m DeviceListModel) Chosen() (int, bool) {
	return m.chosen, m.chosen >= 0
}

// Err returns the error from fetching the device list, if any.
func (m DeviceListModel) Err() error { return m.err }

func (m DeviceListModel) renderDevices() string {
	if len(m.devices) == 0 {
		return "No input devices found."
	}

	var sb strings.Builder
	for i, device := range m.devices {
		info := fmt.Sprintf("[%d] %s\n    Input channels: %d, Default sample rate: %.0f Hz\n",
			device.ID, device.Name, device.MaxInputChannels, device.DefaultSampleRate)
		if i == m.selectedIndex {
			info = highlightStyle.Render(info)
		}
		sb.WriteString(info)
		sb.WriteString("\n")
	}
	return sb.String()
}

// SelectDevice runs the picker and returns the chosen device ID.
func SelectDevice() (int, bool, error) {
	p := tea.NewProgram(NewDeviceListModel(audio.HostDevices), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return 0, false, err
	}
	m := final.(DeviceListModel)
	if m.Err() != nil {
		return 0, false, m.Err()
	}
	id, ok := m.Chosen()
	return id, ok, nil
}
