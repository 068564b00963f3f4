// stagecheck is a terminal inspector for stage files: it lists stages and
// steps through them against a model without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/assets"
	"github.com/Faultbox/stageviewer/internal/engine/camera"
	"github.com/Faultbox/stageviewer/internal/engine/stage"
	"github.com/Faultbox/stageviewer/internal/logger"
	"github.com/Faultbox/stageviewer/internal/viewer"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "browse", "b":
		cmdBrowse(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stagecheck - installation stage inspector

Usage:
  stagecheck <command> [options]

Commands:
  info <stages.yaml>                         Summarize every stage
  browse [-log file] <stages.yaml> [model]   Step through stages interactively

Examples:
  stagecheck info stages.yaml
  stagecheck browse stages.yaml roof.glb
  stagecheck browse -log stagecheck.log stages.json https://example.com/roof.glb`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stagecheck info <stages.yaml>")
		os.Exit(1)
	}
	list, err := stage.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(renderInfo(list))
}

// renderInfo summarizes a stage list, one block per stage.
func renderInfo(list stage.List) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("%d stages", list.Count())))
	for _, st := range list {
		head := fmt.Sprintf("Stage %d", st.Number)
		if st.Title != "" {
			head += "  " + st.Title
		}
		b.WriteString(headerStyle.Render(head) + "\n")
		if st.Camera != nil {
			fmt.Fprintf(&b, "  camera   %s -> %s\n", formatVec(st.Camera.Position.Vec()), formatVec(st.Camera.Target.Vec()))
		}
		for _, a := range st.Actions {
			op := a.Operation
			if op == "" {
				op = "toggle"
			}
			fmt.Fprintf(&b, "  %-8s %s\n", op, a.Layers)
		}
		for _, l := range st.Labels {
			status := ""
			if !l.Renderable() {
				status = dimStyle.Render("  (skipped)")
			}
			fmt.Fprintf(&b, "  label    %q %q at %s%s\n", l.Marker, l.Text, formatVec(l.Position.Vec()), status)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cmdBrowse(args []string) {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	logFile := fs.String("log", "", "Write debug logs to this file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stagecheck browse [-log file] <stages.yaml> [model]")
		os.Exit(1)
	}
	list, err := stage.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to a file.
	log := zap.NewNop()
	if *logFile != "" {
		fileCfg := logger.DefaultFileConfig(*logFile)
		if err := logger.InitWithFileConfig("debug", fileCfg, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		log = logger.Log
	}

	manager := assets.NewManager(assets.Options{Log: log.Named("assets")})
	defer manager.Close()

	v := viewer.New(viewer.Options{
		Loader:       manager,
		Camera:       camera.DefaultSettings(),
		GhostOpacity: 0.25,
		Log:          log.Named("viewer"),
	})
	defer v.Close()
	v.SetStages(list)
	v.Load(fs.Arg(1))

	program := tea.NewProgram(newInspector(v), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running inspector: %v\n", err)
		os.Exit(1)
	}
}
