package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"

	"softrender/core"
	"softrender/io"
	"softrender/math"
	"softrender/render"
	"softrender/scene"
	"softrender/shading"
)

var (
	width     = flag.Int("width", 960, "framebuffer width in pixels")
	height    = flag.Int("height", 600, "framebuffer height in pixels")
	modelPath = flag.String("model", "", "optional OBJ or glTF file to display instead of the built-in scene")
)

type object struct {
	mesh      *scene.Mesh
	position  math.Vec3
	rotation  math.Vec3
	scale     math.Vec3
	spinSpeed float32
}

type app struct {
	fb     *render.Framebuffer
	raster *render.Rasterizer
	camera *scene.OrbitCamera
	light  math.Vec3 // world-space direction toward the light
	objs   []object
}

func newApp(objs []object) *app {
	fb := render.NewFramebuffer(*width, *height)
	a := &app{
		fb:     fb,
		raster: render.NewRasterizer(fb),
		camera: scene.NewOrbitCamera(math.Vec3Zero, 6,
			60*math32.Pi/180, float32(*width)/float32(*height)),
		light: math.Vec3{X: 0.4, Y: 0.8, Z: 0.45}.Normalize(),
		objs:  objs,
	}
	return a
}

func (a *app) Update() error {
	const orbitStep = 0.03
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		a.camera.Orbit(-orbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		a.camera.Orbit(orbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		a.camera.Orbit(0, orbitStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		a.camera.Orbit(0, -orbitStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) {
		a.camera.Zoom(-0.1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) {
		a.camera.Zoom(0.1)
	}

	for i := range a.objs {
		a.objs[i].rotation.Y += a.objs[i].spinSpeed
	}
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	a.fb.Clear(core.Color{R: 0.08, G: 0.09, B: 0.12, A: 1})

	// Lighting runs in view space, so the world light direction rides
	// along with the camera rotation.
	view := a.camera.ViewMatrix()
	a.raster.Light = shading.DirectionalLight{
		Direction: view.UpperLeft3x3().MulVec(a.light).Normalize(),
	}

	for _, o := range a.objs {
		model := math.Mat4TRS(o.position, o.rotation, o.scale)
		a.raster.DrawMesh(o.mesh, a.camera.TransformSet(model))
	}

	screen.WritePixels(a.fb.Pix)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.fb.Width, a.fb.Height
}

func builtinScene() []object {
	cube := scene.CreateCube(1.4)
	sphere := scene.CreateSphere(0.85, 32, 16)
	tetra := scene.CreateTetrahedron(
		math.Vec3{X: -0.7, Y: -0.6, Z: -0.4},
		math.Vec3{X: -0.1, Y: -0.6, Z: 0.7},
		math.Vec3{X: 0.8, Y: -0.6, Z: -0.3},
		math.Vec3{X: 0, Y: 0.7, Z: 0},
	)
	ground := scene.CreatePlane(12, 12, 4)

	return []object{
		{mesh: cube, position: math.Vec3{X: -2.2, Y: 0.7}, scale: math.Vec3One, spinSpeed: 0.012},
		{mesh: sphere, position: math.Vec3{Y: 0.85}, scale: math.Vec3One, spinSpeed: 0.008},
		{mesh: tetra, position: math.Vec3{X: 2.2, Y: 0.6}, scale: math.Vec3One, spinSpeed: 0.016},
		{mesh: ground, scale: math.Vec3One},
	}
}

func loadModel(path string) ([]*scene.Mesh, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".obj" {
		data, err := io.LoadOBJ(path)
		if err != nil {
			return nil, err
		}
		meshes := make([]*scene.Mesh, 0, len(data.Meshes))
		for _, m := range data.Meshes {
			meshes = append(meshes, m.ToMesh(data))
		}
		return meshes, nil
	}
	return scene.LoadGLTF(path)
}

func main() {
	flag.Parse()

	objs := builtinScene()
	if *modelPath != "" {
		meshes, err := loadModel(*modelPath)
		if err != nil {
			log.Fatalf("load %s: %v", *modelPath, err)
		}
		objs = objs[:0]
		for _, m := range meshes {
			objs = append(objs, object{mesh: m, scale: math.Vec3One, spinSpeed: 0.01})
		}
	}

	fmt.Printf("softrender demo %dx%d, %d objects\n", *width, *height, len(objs))
	fmt.Println("arrow keys orbit, -/= zoom")

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("softrender")
	if err := ebiten.RunGame(newApp(objs)); err != nil {
		log.Fatal(err)
	}
}
