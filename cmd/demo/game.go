package main

import (
	"errors"
	"image"
	"image/color"
	"log"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/hollowmoor/ebitools/bounded"
	"github.com/hollowmoor/ebitools/camera"
	"github.com/hollowmoor/ebitools/collision"
	"github.com/hollowmoor/ebitools/despawn"
	"github.com/hollowmoor/ebitools/ecs"
	"github.com/hollowmoor/ebitools/ecs/component"
	"github.com/hollowmoor/ebitools/input"
	"github.com/hollowmoor/ebitools/loading"
	"github.com/hollowmoor/ebitools/script"
	"github.com/hollowmoor/ebitools/state"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	frameDelta = 1.0 / 60.0
)

type scene int

const (
	sceneLoading scene = iota
	scenePlaying
)

const (
	typePlayer cp.CollisionType = iota + 1
	typeHazard
)

type playerMarker struct{}

var playerMarkerComponent = component.New[playerMarker]()

type Game struct {
	world   *ecs.World
	machine *state.Machine[scene]
	space   *cp.Space
	bridge  *collision.Bridge

	loadScreen *loading.Screen

	player     ecs.Entity
	playerBody *collision.Body
	hazardBody *collision.Body
	accel      *collision.Acceleration
	health     *bounded.Range
	camTr      *camera.Transform

	images map[string]*ebiten.Image

	spawnClock float64
	warned     bool
}

func NewGame(manifestPath string) (*Game, error) {
	g := &Game{
		world:  ecs.NewWorld(),
		space:  cp.NewSpace(),
		images: map[string]*ebiten.Image{},
	}
	g.bridge = collision.NewBridge(g.world, g.space)
	g.bridge.Watch(typePlayer, typeHazard)

	initial := scenePlaying
	var slots []loading.Slot
	if manifest, err := loading.LoadManifest(manifestPath); err == nil {
		initial = sceneLoading
		slots = manifest.Slots(func(name string, img image.Image) {
			g.images[name] = ebiten.NewImageFromImage(img)
		})
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Printf("demo: manifest %s: %v", manifestPath, err)
	}
	g.machine = state.NewMachine(initial)

	g.world.AddSystem(state.NewSystem(g.machine))
	if len(slots) > 0 {
		loader := loading.NewLoader(g.machine, sceneLoading, scenePlaying, slots)
		g.world.AddSystem(loader)
		g.loadScreen = loading.NewScreen("loading assets", loader)
	}

	g.world.AddSystem(input.NewSystem(input.NewTopDownMapping()))
	g.world.AddSystem(ecs.SystemFunc(g.steer))
	g.world.AddSystem(collision.NewAccelerationSystem())
	g.world.AddSystem(collision.NewStepSystem(g.space))
	g.world.AddSystem(collision.NewTriggerSystem(playerMarkerComponent))
	g.world.AddSystem(ecs.SystemFunc(g.applyHazardDamage))
	g.world.AddSystem(ecs.SystemFunc(syncTransforms))
	g.world.AddSystem(bounded.NewHealthSystem())
	g.world.AddSystem(despawn.NewTimerSystem())
	g.world.AddSystem(script.NewSystem())
	g.world.AddSystem(camera.NewSystem())
	g.world.AddSystem(ecs.SystemFunc(g.spawnPickups))
	g.world.AddSystem(ecs.SystemFunc(g.watchEvents))

	if err := g.spawnPlayer(); err != nil {
		return nil, err
	}
	g.spawnHazard(300, 120)

	cam := g.world.CreateEntity()
	g.camTr = &camera.Transform{}
	if err := ecs.Add(g.world, cam, camera.TransformComponent, g.camTr); err != nil {
		return nil, err
	}
	if err := ecs.Add(g.world, cam, camera.ControllerComponent, camera.NewFollow(g.player, 400)); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Game) spawnPlayer() error {
	g.player = g.world.CreateEntity()
	g.playerBody = collision.NewDynamicBox(g.space, 24, 24, typePlayer)
	g.bridge.Register(g.playerBody.Shape, g.player)

	g.accel = collision.NewAcceleration(900, 180)
	if err := ecs.Add(g.world, g.player, collision.BodyComponent, g.playerBody); err != nil {
		return err
	}
	if err := ecs.Add(g.world, g.player, collision.AccelerationComponent, g.accel); err != nil {
		return err
	}
	if err := ecs.Add(g.world, g.player, playerMarkerComponent, &playerMarker{}); err != nil {
		return err
	}
	if err := ecs.Add(g.world, g.player, camera.TransformComponent, &camera.Transform{}); err != nil {
		return err
	}

	health, err := bounded.NewHealth(100)
	if err != nil {
		return err
	}
	g.health = health
	if err := ecs.Add(g.world, g.player, bounded.HealthComponent, health); err != nil {
		return err
	}

	lowHealth, err := script.NewTrigger("low_health", "hp < 25", map[string]any{"hp": 0.0})
	if err != nil {
		return err
	}
	lowHealth.Globals = func(w *ecs.World, e ecs.Entity) map[string]any {
		hp := 0.0
		if r, ok := ecs.Get(w, e, bounded.HealthComponent); ok {
			hp = r.Raw()
		}
		return map[string]any{"hp": hp}
	}
	return ecs.Add(g.world, g.player, script.TriggerComponent, lowHealth)
}

func (g *Game) spawnHazard(x, y float64) {
	hazard := g.world.CreateEntity()
	body := collision.NewTriggerBox(g.space, 48, 48, typeHazard)
	body.Body.SetPosition(cp.Vector{X: x, Y: y})
	g.bridge.Register(body.Shape, hazard)
	g.hazardBody = body
	_ = ecs.Add(g.world, hazard, collision.BodyComponent, body)
	_ = ecs.Add(g.world, hazard, collision.SingleTriggerComponent, &collision.SingleTrigger{})
	_ = ecs.Add(g.world, hazard, camera.TransformComponent, &camera.Transform{X: x, Y: y})
}

// steer turns this frame's action events into an acceleration direction.
func (g *Game) steer(w *ecs.World) {
	if g.machine.Current() != scenePlaying {
		return
	}
	g.accel.Direction = collision.None
	for _, evt := range w.Events().Pending() {
		if evt.Type != input.EventAction {
			continue
		}
		action, ok := evt.Data.(input.ActionEvent[input.TopDownAction])
		if !ok {
			continue
		}
		switch action.Action {
		case input.MoveUp:
			g.accel.Direction = collision.Up
		case input.MoveDown:
			g.accel.Direction = collision.Down
		case input.MoveLeft:
			g.accel.Direction = collision.Left
		case input.MoveRight:
			g.accel.Direction = collision.Right
		}
	}
}

func (g *Game) applyHazardDamage(w *ecs.World) {
	for _, evt := range w.Events().Pending() {
		if evt.Type != collision.EventTriggerEntered {
			continue
		}
		if c, ok := evt.Data.(collision.Contact); ok && c.A == g.player {
			g.health.Add(-35)
		}
	}
}

// syncTransforms mirrors physics body positions into transforms so the
// camera and renderer share one coordinate source.
func syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, collision.BodyComponent, camera.TransformComponent, func(_ ecs.Entity, b *collision.Body, tr *camera.Transform) {
		pos := b.Body.Position()
		tr.X = pos.X
		tr.Y = pos.Y
	})
}

func (g *Game) spawnPickups(w *ecs.World) {
	if g.machine.Current() != scenePlaying {
		return
	}
	g.spawnClock += w.Delta()
	if g.spawnClock < 3 {
		return
	}
	g.spawnClock = 0

	pickup := w.CreateEntity()
	tr := &camera.Transform{
		X: g.camTr.X + float64(rand.Intn(400)-200),
		Y: g.camTr.Y + float64(rand.Intn(400)-200),
	}
	_ = ecs.Add(w, pickup, camera.TransformComponent, tr)
	_ = ecs.Add(w, pickup, despawn.TimerComponent, despawn.After(6))
}

func (g *Game) watchEvents(w *ecs.World) {
	for _, evt := range w.Events().Pending() {
		switch evt.Type {
		case script.EventTriggered:
			if !g.warned {
				log.Printf("demo: low health warning")
				g.warned = true
			}
		case bounded.EventDeath:
			log.Printf("demo: player died, respawning")
			g.health.Set(g.health.End())
			g.playerBody.Body.SetPosition(cp.Vector{})
			g.playerBody.Body.SetVelocityVector(cp.Vector{})
			g.warned = false
		case bounded.EventFullHeal:
			g.warned = false
		case collision.EventTriggerLeft:
			// The trigger entity despawns on exit; drop its physics body
			// with it.
			if g.hazardBody != nil {
				g.bridge.Unregister(g.hazardBody.Shape)
				g.space.RemoveShape(g.hazardBody.Shape)
				g.space.RemoveBody(g.hazardBody.Body)
				g.hazardBody = nil
			}
		}
	}
}

func (g *Game) Update() error {
	if g.machine.Current() == sceneLoading && g.loadScreen != nil {
		g.loadScreen.Update()
	}
	g.world.Update(frameDelta)
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	if g.machine.Current() == sceneLoading && g.loadScreen != nil {
		g.loadScreen.Draw(dst)
		return
	}

	dst.Fill(color.RGBA{R: 18, G: 18, B: 24, A: 255})
	offX := float32(baseWidth/2) - float32(g.camTr.X)
	offY := float32(baseHeight/2) - float32(g.camTr.Y)

	ecs.ForEach2(g.world, despawn.TimerComponent, camera.TransformComponent, func(_ ecs.Entity, _ *despawn.Timer, tr *camera.Transform) {
		vector.DrawFilledRect(dst, float32(tr.X)+offX-6, float32(tr.Y)+offY-6, 12, 12, color.RGBA{R: 240, G: 210, B: 60, A: 255}, false)
	})
	ecs.ForEach2(g.world, collision.SingleTriggerComponent, camera.TransformComponent, func(_ ecs.Entity, _ *collision.SingleTrigger, tr *camera.Transform) {
		vector.DrawFilledRect(dst, float32(tr.X)+offX-24, float32(tr.Y)+offY-24, 48, 48, color.RGBA{R: 200, G: 60, B: 60, A: 255}, false)
	})

	if tr, ok := ecs.Get(g.world, g.player, camera.TransformComponent); ok {
		if sprite, ok := g.images["player"]; ok {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(tr.X+float64(offX)-float64(sprite.Bounds().Dx())/2, tr.Y+float64(offY)-float64(sprite.Bounds().Dy())/2)
			dst.DrawImage(sprite, op)
		} else {
			vector.DrawFilledRect(dst, float32(tr.X)+offX-12, float32(tr.Y)+offY-12, 24, 24, color.RGBA{R: 80, G: 220, B: 120, A: 255}, false)
		}
	}

	ebitenutil.DebugPrintAt(dst, "health: "+healthBar(g.health), 8, 8)
}

func healthBar(r *bounded.Range) string {
	filled := int(r.Raw() / r.End() * 10)
	bar := ""
	for i := 0; i < 10; i++ {
		if i < filled {
			bar += "#"
		} else {
			bar += "-"
		}
	}
	return bar
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
