package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cellsketch/internal/doc"
	"cellsketch/internal/editor"
	"cellsketch/internal/geom"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/"+configName+")")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cellsketch [flags] [file]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *logPath != "" {
		config.LogFile = *logPath
	}
	closeLog, err := setupLogging(config)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	path := config.GetSavePath(config.DefaultFile)
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	m, err := initialModel(config, path)
	if err != nil {
		log.Fatal(err)
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// setupLogging routes slog and the editor logger to the configured file.
// Without one, logs are discarded: the terminal belongs to the UI.
func setupLogging(config *Config) (func(), error) {
	if config.LogFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: config.Level()}))
	slog.SetDefault(logger)
	editor.SetLogger(logger.With("component", "editor"))
	return func() { f.Close() }, nil
}

func initialModel(config *Config, path string) (model, error) {
	palette, err := config.Paints()
	if err != nil {
		return model{}, err
	}
	m := model{
		editor:     editor.New(geom.Size{W: 80, H: 24 - statusHeight}),
		palette:    palette,
		path:       path,
		blink:      config.BlinkInterval(),
		colorIndex: -1,
		frame:      &frame{},
	}

	d, err := loadDocument(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		m.successMessage = fmt.Sprintf("New file %s", path)
	case err != nil:
		m.errorMessage = fmt.Sprintf("Error opening file: %s", err)
	default:
		m.editor, _ = m.editor.Load(d)
		m.successMessage = fmt.Sprintf("Opened %s", displayPath(path))
	}
	slog.Info("start", "file", path, "entities", m.editor.Doc.Len())
	return m, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		st, fx := m.editor.SetBounds(canvasSize(m.width, m.height))
		return m.apply(st, fx)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.help {
			return m, nil
		}
		ev, ok := pointerEvent(msg, m.editor.Bounds.H)
		if !ok {
			return m, nil
		}
		st, fx := m.editor.HandlePointer(ev)
		return m.apply(st, fx)

	case blinkMsg:
		// A dropped tick ends the session's chain of ticks.
		st, fx := m.editor.HandleBlink(msg.session)
		if fx == 0 {
			return m, nil
		}
		next, _ := m.apply(st, fx)
		return next, m.blinkCmd(msg.session)
	}
	return m, nil
}

func canvasSize(width, height int) geom.Size {
	return geom.Size{W: max(1, width), H: max(1, height-statusHeight)}
}

// apply installs the next editor state and turns its effects into frame
// invalidation and blink scheduling.
func (m model) apply(st editor.EditorState, fx editor.Effect) (tea.Model, tea.Cmd) {
	m.editor = st
	if fx.Has(editor.EffectRedraw) {
		m.frame.invalidate()
	}
	if fx.Has(editor.EffectBlinkStart) {
		return m, m.blinkCmd(st.BlinkSession())
	}
	return m, nil
}

func (m model) blinkCmd(session int) tea.Cmd {
	return tea.Tick(m.blink, func(time.Time) tea.Msg {
		return blinkMsg{session: session}
	})
}

func (m *model) save() {
	if err := saveDocument(m.path, m.editor.Doc); err != nil {
		m.errorMessage = fmt.Sprintf("Error saving file: %s", err)
		slog.Error("save", "file", m.path, "err", err)
		return
	}
	m.successMessage = fmt.Sprintf("Saved to %s", displayPath(m.path))
	slog.Info("saved", "file", m.path, "entities", m.editor.Doc.Len())
}

// reload replaces the document with the file on disk. On failure the
// current document is kept.
func (m *model) reload() {
	d, err := loadDocument(m.path)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error opening file: %s", err)
		slog.Error("load", "file", m.path, "err", err)
		return
	}
	m.editor, _ = m.editor.Load(d)
	m.frame.invalidate()
	m.successMessage = fmt.Sprintf("Opened %s", displayPath(m.path))
}

func (m *model) exportPNG() {
	path := exportPath(m.path, ".png")
	if err := exportPNG(m.editor.Doc, path); err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting PNG: %s", err)
		return
	}
	m.successMessage = exportSummary("png", path)
}

func (m *model) exportText() {
	path := exportPath(m.path, ".txt")
	if err := exportVisualTXT(m.editor.Doc, m.editor.Bounds, path); err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting text: %s", err)
		return
	}
	m.successMessage = exportSummary("txt", path)
}

func (m *model) copySelection() {
	text := m.editor.SelectedText()
	if text == "" {
		m.errorMessage = "No text selected"
		return
	}
	if err := writeClipboardText(text); err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard: %s", err)
		return
	}
	m.successMessage = "Copied text"
}

// paste drops clipboard text at the pointer.
func (m *model) paste() (editor.EditorState, editor.Effect) {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard: %s", err)
		return m.editor, 0
	}
	at, _ := m.editor.HoverPoint()
	return m.editor.PasteText(at, cleanClipboardText(text))
}

// setColor applies palette slot i, or transparency for -1, to the current
// channel.
func (m *model) setColor(i int) (editor.EditorState, editor.Effect) {
	paint := doc.Transparent
	if i >= 0 {
		paint = m.palette[i]
	}
	m.colorIndex = i
	return m.editor.Recolor(m.channel, paint)
}
