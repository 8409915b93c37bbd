// Package render draws an assembled gallery scene with raylib. Meshes,
// shaders and textures are created lazily so GPU resources are only
// allocated once the window and its GL context exist.
package render

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/scene"
)

// FieldOfView is the vertical field of view in degrees.
const FieldOfView = 60

var (
	whiteRGBA   = color.RGBA{255, 255, 255, 255}
	defaultGrey = color.RGBA{128, 128, 128, 255}
)

// Renderer owns the box mesh, its two lit materials and one texture per artwork.
type Renderer struct {
	ready    bool
	mesh     rl.Mesh
	flat     rl.Material
	textured rl.Material
	textures map[string]rl.Texture2D
}

// New returns a renderer with nothing allocated.
func New() *Renderer {
	return &Renderer{textures: make(map[string]rl.Texture2D)}
}

func (r *Renderer) ensure() {
	if r.ready {
		return
	}
	r.mesh = rl.GenMeshCube(1, 1, 1)
	r.flat = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(s) {
		r.flat.Shader = s
	}
	r.textured = rl.LoadMaterialDefault()
	if albedo := r.textured.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	if s := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(s) {
		r.textured.Shader = s
	}
	r.ready = true
}

// Upload turns an artwork image into a texture, replacing any previous one
// for the same artwork.
func (r *Renderer) Upload(artworkID string, img image.Image) {
	r.Unload(artworkID)
	ri := rl.NewImageFromImage(img)
	// cube faces sample v=0 at the bottom edge
	rl.ImageFlipVertical(ri)
	tex := rl.LoadTextureFromImage(ri)
	rl.UnloadImage(ri)
	if !rl.IsTextureValid(tex) {
		return
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	r.textures[artworkID] = tex
}

// Unload frees the texture of one artwork.
func (r *Renderer) Unload(artworkID string) {
	if tex, ok := r.textures[artworkID]; ok {
		rl.UnloadTexture(tex)
		delete(r.textures, artworkID)
	}
}

// Clear frees every artwork texture, e.g. when the room changes.
func (r *Renderer) Clear() {
	for id := range r.textures {
		r.Unload(id)
	}
}

// Close frees all GPU resources.
func (r *Renderer) Close() {
	r.Clear()
	if !r.ready {
		return
	}
	rl.UnloadShader(r.flat.Shader)
	rl.UnloadShader(r.textured.Shader)
	rl.UnloadMesh(&r.mesh)
	r.ready = false
}

// Camera converts a pose into a raylib camera.
func Camera(p gallery.Pose) rl.Camera3D {
	target := p.Position.Add(p.Forward())
	return rl.Camera3D{
		Position:   vec(p.Position),
		Target:     vec(target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       FieldOfView,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders sc from pose. It opens and closes its own 3D mode.
func (r *Renderer) Draw(sc scene.Scene, pose gallery.Pose) {
	r.ensure()
	u := flattenLights(sc.Lights)
	setUniforms(r.flat.Shader, pose.Position, u)
	setUniforms(r.textured.Shader, pose.Position, u)

	rl.BeginMode3D(Camera(pose))
	for _, g := range sc.Static {
		r.box(g, nil)
	}
	for _, g := range sc.Artworks {
		if g.Kind != scene.Canvas {
			r.box(g, nil)
			continue
		}
		if tex, ok := r.textures[g.ArtworkID]; ok {
			r.box(g, &tex)
			continue
		}
		// no texture yet: plain grey panel
		g.Color = ""
		r.box(g, nil)
	}
	rl.EndMode3D()
}

func (r *Renderer) box(g scene.Geometry, tex *rl.Texture2D) {
	size := g.Size
	if size.Z() == 0 {
		size[2] = 0.002
	}
	transform := rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixScale(size.X(), size.Y(), size.Z()), rl.MatrixRotateY(g.Rotation)),
		rl.MatrixTranslate(g.Center.X(), g.Center.Y(), g.Center.Z()),
	)
	if tex != nil {
		rl.SetMaterialTexture(&r.textured, rl.MapAlbedo, *tex)
		rl.DrawMesh(r.mesh, r.textured, transform)
		return
	}
	c := scene.ColorOr(g.Color, defaultGrey)
	if albedo := r.flat.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c.R, c.G, c.B, c.A)
	}
	rl.DrawMesh(r.mesh, r.flat, transform)
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
