package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

// Theme Colors (Monochrome)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColCloth   = rl.NewColor(200, 200, 200, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColCut     = rl.NewColor(255, 80, 80, 160)
)

const (
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	hudHeight    = 90
	maxTelemetry = 300
)

var tunable = []string{"physics_accuracy", "gravity", "tear_distance", "mouse_influence", "mouse_cut"}

// App is the desktop host. The window shows the simulation space scaled
// by Scale, with a HUD strip underneath.
type App struct {
	Sim     *sim.Simulation
	Title   string
	Scale   float32
	Running bool
	Font    rl.Font

	ParamSel  int
	Status    string
	Telemetry []float64 // sag per tick

	sag *metrics.Sag
}

func initWindow(w, h int32, title string, fps int) {
	rl.InitWindow(w, h, title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when present and falls back to raylib's
// built-in font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(s *sim.Simulation, title string, scale float32) *App {
	if scale <= 0 {
		scale = 2
	}
	a := &App{
		Sim:       s,
		Title:     title,
		Scale:     scale,
		Running:   true,
		Font:      loadFont(),
		Telemetry: make([]float64, 0, maxTelemetry),
		sag:       metrics.NewSag(),
	}
	s.AddMetric(a.sag)
	return a
}

// Run opens a window sized to the simulation space and blocks until it is
// closed.
func Run(s *sim.Simulation, title string, scale float32, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	if scale <= 0 {
		scale = 2
	}
	space := s.Space()
	initWindow(int32(float32(space.Width)*scale), int32(float32(space.Height)*scale)+hudHeight, title, fps)
	defer rl.CloseWindow()

	app := NewApp(s, title, scale)
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return nil
		}
		a.Draw()
	}
	return nil
}

// toSpace maps a window position to simulation space.
func (a *App) toSpace(v rl.Vector2) (float64, float64) {
	return float64(v.X / a.Scale), float64(v.Y / a.Scale)
}

func (a *App) toScreen(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(x)*a.Scale, float32(y)*a.Scale)
}

// Update reads input and advances the simulation one tick. It reports
// whether the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}

	a.handlePointer()

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.Sim.Reset(); err != nil {
			a.Status = err.Error()
		}
		a.Telemetry = a.Telemetry[:0]
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ParamSel = (a.ParamSel + 1) % len(tunable)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.adjust(1)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.adjust(-1)
	}

	if a.Running || rl.IsKeyPressed(rl.KeyN) {
		a.step()
	}
	return false
}

func (a *App) handlePointer() {
	x, y := a.toSpace(rl.GetMousePosition())

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.Sim.UpdatePointer(func(p *cloth.Pointer) { p.Press(cloth.ButtonPrimary, x, y) })
	case rl.IsMouseButtonPressed(rl.MouseRightButton), rl.IsMouseButtonPressed(rl.MouseMiddleButton):
		a.Sim.UpdatePointer(func(p *cloth.Pointer) { p.Press(cloth.ButtonOther, x, y) })
	case rl.IsMouseButtonReleased(rl.MouseLeftButton),
		rl.IsMouseButtonReleased(rl.MouseRightButton),
		rl.IsMouseButtonReleased(rl.MouseMiddleButton):
		a.Sim.UpdatePointer(func(p *cloth.Pointer) {
			p.MoveTo(x, y)
			p.Release()
		})
	default:
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			a.Sim.UpdatePointer(func(p *cloth.Pointer) { p.MoveTo(x, y) })
		}
	}
}

func (a *App) adjust(dir int) {
	key := tunable[a.ParamSel]
	p := a.Sim.Params()
	v, _ := p.Get(key)
	switch {
	case key == "physics_accuracy":
		v += float64(dir)
	case dir > 0:
		v *= 1.1
	default:
		v /= 1.1
	}

	next, err := p.With(key, v)
	if err == nil {
		err = a.Sim.Reconfigure(next)
	}
	a.Status = ""
	if err != nil {
		a.Status = err.Error()
	}
}

func (a *App) step() {
	if _, err := a.Sim.Tick(); err != nil {
		a.Running = false
		a.Status = err.Error()
		return
	}
	a.Telemetry = append(a.Telemetry, a.sag.Last())
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawCloth()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawCloth() {
	a.Sim.Grid().Segments(func(p, q mgl64.Vec2) {
		rl.DrawLineV(a.toScreen(p[0], p[1]), a.toScreen(q[0], q[1]), ColCloth)
	})

	ptr := a.Sim.Pointer()
	if ptr.Pressed {
		params := a.Sim.Params()
		radius, col := params.MouseInfluence, ColAccent
		if ptr.Button == cloth.ButtonOther {
			radius, col = params.MouseCut, ColCut
		}
		c := a.toScreen(ptr.Pos[0], ptr.Pos[1])
		rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(radius)*a.Scale, col)
	}
}

func (a *App) DrawHUD() {
	top := int(float32(a.Sim.Space().Height)*a.Scale) + 10
	width := int(float32(a.Sim.Space().Width) * a.Scale)

	a.drawText(a.Title, 20, top, 20, ColSelect)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, width-110, top, 16, col)

	g := a.Sim.Grid()
	a.drawText(fmt.Sprintf("tick %d  links %d/%d  %d FPS",
		a.Sim.TickCount(), g.LiveLinks(), g.LinkCount(), rl.GetFPS()), 20, top+26, 14, ColText)

	key := tunable[a.ParamSel]
	v, _ := a.Sim.Params().Get(key)
	a.drawText(fmt.Sprintf("%s = %.2f", key, v), 20, top+46, 14, ColAccent)
	if a.Status != "" {
		a.drawText(a.Status, 260, top+46, 14, ColCut)
	}

	a.DrawTelemetry(width-230, top+26, 200, 40)
	a.drawText("[SPACE] PAUSE  [N] STEP  [R] RESET  [TAB/UP/DOWN] TUNE  [Q] QUIT", 20, top+66, 12, ColTextDim)
}

// DrawTelemetry plots the sag history as a line strip.
func (a *App) DrawTelemetry(rectX, rectY, width, height int) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
}
