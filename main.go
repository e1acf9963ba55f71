package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"larch/internal/cfg"
	"larch/internal/log"
	"larch/internal/ui"
	"larch/internal/wm"
	"larch/internal/xcb"
)

func main() {
	mode := "run"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	switch mode {
	case "run":
		run()
	case "windows":
		windows()
	default:
		printHelp()
		os.Exit(1)
	}
}

func run() {
	conf := readConfig()
	logger := makeLogger(conf)
	defer logger.Close()
	watchConfig(logger)

	conn, err := xcb.ConnectDisplay(conf.Display)
	if err != nil {
		logger.Error("Failed to connect to X server: %s", err)
		os.Exit(1)
	}
	defer conn.Close()
	if vendor, err := conn.Vendor(); err == nil {
		logger.Debug("server vendor: %s", vendor)
	}

	manager := wm.New(display{conn}, conn.RootWindow(), logger)
	if err := manager.Run(); err != nil {
		logger.Error("%s", err)
		os.Exit(1)
	}
}

// display adapts the session layer to the manager's connection interface.
type display struct {
	*xcb.Conn
}

func (d display) CreateWindow(r xcb.Rect) (wm.Frame, error) {
	return d.Conn.CreateWindow(r)
}

// watchConfig reloads the log level whenever the configuration file changes.
func watchConfig(logger *log.Logger) {
	path, err := cfg.GetPath()
	if err != nil {
		return
	}
	confCh := make(chan cfg.Config, 4)
	errCh := make(chan error, 4)
	if _, err := cfg.Watch(path, confCh, errCh); err != nil {
		logger.Warn("not watching configuration: %s", err)
		return
	}
	go func() {
		for {
			select {
			case conf := <-confCh:
				logger.SetLevel(log.ParseLevel(conf.Log.Level))
				logger.Info("configuration reloaded")
			case err := <-errCh:
				logger.Warn("configuration watch: %s", err)
			}
		}
	}()
}

func windows() {
	conf := readConfig()
	conn, err := xcb.ConnectDisplay(conf.Display)
	if err != nil {
		fmt.Printf("Failed to connect to X server: %s\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	prog := tea.NewProgram(ui.NewModel(func() ([]ui.Row, error) {
		return listWindows(conn)
	}))
	if err := prog.Start(); err != nil {
		fmt.Printf("Tea error: %s\n", err)
		os.Exit(1)
	}
}

// listWindows enumerates the children of the root window.
func listWindows(conn *xcb.Conn) ([]ui.Row, error) {
	children, err := conn.QueryTree(conn.RootWindow())
	if err != nil {
		return nil, err
	}
	rows := make([]ui.Row, 0, len(children))
	for _, child := range children {
		geom, err := child.Geometry().Get()
		if err != nil {
			// Windows may vanish between the tree query and the geometry
			// read.
			continue
		}
		name, err := conn.WindowName(child)
		if err != nil {
			name = ""
		}
		rows = append(rows, ui.Row{Id: child.ID(), Name: name, Rect: geom.Rect})
	}
	return rows, nil
}

func readConfig() *cfg.Config {
	conf, err := cfg.GetConfig()
	if err == nil {
		return conf
	}
	if !os.IsNotExist(err) {
		fmt.Printf("Failed to get configuration: %s\n", err)
		os.Exit(1)
	}
	path, err := cfg.WriteDefault()
	if err != nil {
		fmt.Printf("Failed to write default config: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("No configuration file found")
	fmt.Printf("Wrote default to:\n  %s\n", path)
	conf = &cfg.DefaultConfig
	return conf
}

func makeLogger(conf *cfg.Config) *log.Logger {
	formatter := log.DefaultFormatter()
	if conf.Log.Format != "" {
		formatter = log.NewFormatter(conf.Log.Format)
	}
	logger, err := log.NewLogger(log.ParseLevel(conf.Log.Level), conf.Log.Path, formatter)
	if err != nil {
		fmt.Printf("Failed to create logger: %s\n", err)
		os.Exit(1)
	}
	return logger
}

func printHelp() {
	fmt.Println(`
    larch - a reparenting X11 window manager

    USAGE:
        larch [run]       Take over the default display and manage
                          top-level windows. Exits with an error if
                          another window manager is already running.

        larch windows     List the top-level windows of the display.
    `)
}
