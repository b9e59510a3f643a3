package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/scene"
)

// viewCommand creates the view command for the terminal graph viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var noEntry bool

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a graph interactively in the terminal",
		Long:  `View opens a live force-directed viewer in the terminal. Drag nodes with the mouse, scroll to zoom, drag the background to pan, and hover to inspect a node's neighborhood.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(args[0], noEntry)
		},
	}

	cmd.Flags().BoolVar(&noEntry, "no-entry-animation", false, "skip the pop-in animation on startup")

	return cmd
}

func (c *CLI) runView(input string, noEntry bool) error {
	g, err := loadGraph(input)
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	s, err := scene.New(g, scene.Options{
		Width:          scene.DefaultWidth,
		Height:         scene.DefaultHeight,
		Physics:        cfg.ForceConfig(),
		EntryAnimation: cfg.Physics.EntryAnimation && !noEntry,
	})
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	m := newViewerModel(s)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

// =============================================================================
// ViewerModel - Live Scene Viewer
// =============================================================================

// cellAspect converts between terminal rows and world units. Cells are
// roughly twice as tall as wide, so one row covers two vertical units and
// geometry keeps its shape on screen.
const cellAspect = 2.0

// statusRows is the number of rows reserved below the canvas.
const statusRows = 2

// frameMsg drives the simulation at a fixed rate.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// ViewerModel is the bubbletea model wrapping a live scene. All gesture
// handling happens inside the scene; the model only translates terminal
// events into scene events and paints the scene's primitives.
type ViewerModel struct {
	scene *scene.Scene

	cols, rows int // canvas size in cells

	// Press bookkeeping so a press-move-release run maps onto exactly one
	// of drag, pan, or click.
	pressed  bool
	dragging bool // press landed on a node
	moved    bool
	lastX    float64 // last pointer position, world-space container coords
	lastY    float64
}

// newViewerModel creates a viewer model for a constructed scene.
func newViewerModel(s *scene.Scene) ViewerModel {
	return ViewerModel{scene: s}
}

func (m ViewerModel) Init() tea.Cmd {
	return frameTick()
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.scene.Closed() {
			return m, nil
		}
		m.scene.Tick()
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height - statusRows
		if m.rows < 1 {
			m.rows = 1
		}
		m.scene.Resize(float64(m.cols), float64(m.rows)*cellAspect)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.scene.Close()
			return m, tea.Quit
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

// handleMouse translates one terminal mouse event into scene events.
func (m ViewerModel) handleMouse(msg tea.MouseMsg) ViewerModel {
	x := float64(msg.X)
	y := float64(msg.Y) * cellAspect

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scene.Dispatch(scene.Event{Kind: scene.Zoom, X: x, Y: y, Factor: 1.1})
		return m
	case tea.MouseButtonWheelDown:
		m.scene.Dispatch(scene.Event{Kind: scene.Zoom, X: x, Y: y, Factor: 1 / 1.1})
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		m.pressed = true
		m.moved = false
		m.lastX, m.lastY = x, y
		if m.scene.NodeAt(x, y) != "" {
			m.dragging = true
			m.scene.Dispatch(scene.Event{Kind: scene.DragStart, X: x, Y: y})
		}

	case tea.MouseActionMotion:
		if !m.pressed {
			m.scene.Dispatch(scene.Event{Kind: scene.Hover, X: x, Y: y})
			return m
		}
		m.moved = true
		if m.dragging {
			m.scene.Dispatch(scene.Event{Kind: scene.DragMove, X: x, Y: y})
		} else {
			m.scene.Dispatch(scene.Event{Kind: scene.Pan, Dx: x - m.lastX, Dy: y - m.lastY})
		}
		m.lastX, m.lastY = x, y

	case tea.MouseActionRelease:
		if !m.pressed {
			return m
		}
		if m.dragging {
			m.scene.Dispatch(scene.Event{Kind: scene.DragEnd})
		}
		if !m.moved {
			m.scene.Dispatch(scene.Event{Kind: scene.Click, X: x, Y: y})
		}
		m.pressed = false
		m.dragging = false
		m.moved = false
	}
	return m
}

// =============================================================================
// Painting
// =============================================================================

// canvasCell is one terminal cell of the painted scene.
type canvasCell struct {
	ch    rune
	color string
}

func (m ViewerModel) View() string {
	if m.cols == 0 || m.rows == 0 {
		return "loading..."
	}

	grid := make([][]canvasCell, m.rows)
	for i := range grid {
		grid[i] = make([]canvasCell, m.cols)
	}

	vis := m.scene.Visuals()
	t := m.scene.Transform()

	// Links first so circles paint over them.
	for _, line := range vis.Lines {
		x1, y1 := t.Apply(line.X1, line.Y1)
		x2, y2 := t.Apply(line.X2, line.Y2)
		color := line.Color
		if line.Opacity < 0.3 {
			color = "#3a3a3a"
		}
		m.paintLine(grid, x1, y1, x2, y2, color)
	}

	for _, ll := range vis.LinkLabels {
		if !ll.Visible {
			continue
		}
		x, y := t.Apply(ll.X, ll.Y)
		m.paintText(grid, x, y, ll.Text, "#ff6b00")
	}

	hovered := m.scene.Hovered()
	for id, circ := range vis.Circles {
		x, y := t.Apply(circ.X, circ.Y)
		ch := '●'
		if id == hovered || id == m.scene.Selected() {
			ch = '◉'
		}
		color := circ.Fill
		if circ.Opacity < 0.3 {
			color = "#3a3a3a"
		}
		m.paintCell(grid, x, y, ch, color)
	}

	for id, nl := range vis.NodeLabels {
		if nl.Opacity <= 0.05 {
			continue
		}
		x, y := t.Apply(nl.X, nl.Y)
		color := "#bbbbbb"
		if id == hovered {
			color = "#ffffff"
		}
		m.paintText(grid, x, y, nl.Text, color)
	}

	var b strings.Builder
	for _, row := range grid {
		for _, cell := range row {
			if cell.ch == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cell.color)).Render(string(cell.ch)))
		}
		b.WriteRune('\n')
	}

	b.WriteString(m.statusLine())
	b.WriteRune('\n')
	b.WriteString(StyleDim.Render("drag nodes · scroll zoom · drag background pan · q quit"))
	return b.String()
}

// statusLine describes the hovered or selected node, mirroring the tooltip.
func (m ViewerModel) statusLine() string {
	id := m.scene.Hovered()
	if id == "" {
		id = m.scene.Selected()
	}
	if id == "" {
		return StyleDim.Render("hover a node to inspect it")
	}
	n, ok := m.scene.Node(id)
	if !ok {
		return ""
	}
	marker := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color())).Render("●")
	desc := n.Description
	if desc == "" {
		desc = "No description available."
	}
	return fmt.Sprintf("%s %s %s %s", marker, StyleValue.Render(n.DisplayLabel()), StyleDim.Render("["+n.Type+"]"), StyleDim.Render(desc))
}

// toCell converts container coordinates to a grid cell.
func (m ViewerModel) toCell(x, y float64) (col, row int) {
	return int(math.Round(x)), int(math.Round(y / cellAspect))
}

func (m ViewerModel) paintCell(grid [][]canvasCell, x, y float64, ch rune, color string) {
	col, row := m.toCell(x, y)
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return
	}
	grid[row][col] = canvasCell{ch: ch, color: color}
}

func (m ViewerModel) paintText(grid [][]canvasCell, x, y float64, text, color string) {
	col, row := m.toCell(x, y)
	col -= len(text) / 2
	if row < 0 || row >= len(grid) {
		return
	}
	for i, ch := range text {
		c := col + i
		if c < 0 || c >= len(grid[row]) {
			continue
		}
		grid[row][c] = canvasCell{ch: ch, color: color}
	}
}

// paintLine draws a link by sampling points along it. Cells already holding
// a glyph are left alone so node markers and labels stay readable.
func (m ViewerModel) paintLine(grid [][]canvasCell, x1, y1, x2, y2 float64, color string) {
	steps := int(math.Max(math.Abs(x2-x1), math.Abs(y2-y1)/cellAspect))
	if steps == 0 {
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		col, row := m.toCell(x1+(x2-x1)*f, y1+(y2-y1)*f)
		if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
			continue
		}
		if grid[row][col].ch == 0 {
			grid[row][col] = canvasCell{ch: '·', color: color}
		}
	}
}
