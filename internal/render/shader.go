package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/scene"
)

// MaxSpots is the number of spotlights the shader takes; further lights are ignored.
const MaxSpots = 32

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// lighting shared by the flat and textured fragment shaders
	litCommon = `
#define MAX_SPOTS 32
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 fillDir;
uniform vec4 ambient;
uniform float fillIntensity;
uniform float spotCount;
uniform vec3 spotPos[MAX_SPOTS];
uniform vec3 spotDir[MAX_SPOTS];
uniform vec3 spotColor[MAX_SPOTS];
uniform float spotCutoff[MAX_SPOTS];
uniform float spotRange[MAX_SPOTS];
uniform float spotIntensity[MAX_SPOTS];
out vec4 finalColor;
vec3 shade(vec3 albedo) {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 light = ambient.rgb + vec3(max(dot(N, normalize(fillDir)), 0.0) * fillIntensity);
  for (int i = 0; i < MAX_SPOTS; i++) {
    if (float(i) >= spotCount) break;
    vec3 toLight = spotPos[i] - fragPosition;
    float dist = length(toLight);
    vec3 L = toLight / dist;
    float theta = dot(-L, normalize(spotDir[i]));
    if (theta < spotCutoff[i] || dist > spotRange[i]) continue;
    float edge = smoothstep(spotCutoff[i], mix(spotCutoff[i], 1.0, 0.3), theta);
    float falloff = 1.0 - dist / spotRange[i];
    float NdotL = max(dot(N, L), 0.0);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), 32.0) * 0.2;
    light += spotColor[i] * spotIntensity[i] * edge * falloff * (NdotL + spec);
  }
  return albedo * light;
}
`
	litFS = "#version 330\n" + litCommon + `
void main() {
  finalColor = vec4(shade(colDiffuse.rgb), colDiffuse.a);
}
`
	litTexturedFS = "#version 330\n" + litCommon + `
uniform sampler2D texture0;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  finalColor = vec4(shade(tint.rgb), tint.a);
}
`
)

var (
	defaultAmbient       = [4]float32{0.28, 0.28, 0.3, 1}
	defaultFillDir       = [3]float32{0.3, 1, 0.4}
	defaultFillIntensity = float32(0.35)
)

// lightUniforms is the flattened spotlight state uploaded once per frame.
type lightUniforms struct {
	count     int32
	pos       []float32
	dir       []float32
	color     []float32
	cutoff    []float32
	reach     []float32
	intensity []float32
}

func flattenLights(lights []scene.Light) lightUniforms {
	n := min(len(lights), MaxSpots)
	u := lightUniforms{count: int32(n)}
	for _, l := range lights[:n] {
		dir := l.Target.Sub(l.Position)
		if dir.Len() > 0 {
			dir = dir.Normalize()
		} else {
			dir = mgl32.Vec3{0, -1, 0}
		}
		c := scene.ColorOr(l.Color, whiteRGBA)
		u.pos = append(u.pos, l.Position[:]...)
		u.dir = append(u.dir, dir[:]...)
		u.color = append(u.color, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
		u.cutoff = append(u.cutoff, math32.Cos(l.Angle))
		u.reach = append(u.reach, l.Range)
		u.intensity = append(u.intensity, l.Intensity)
	}
	return u
}

func setUniforms(shader rl.Shader, viewPos mgl32.Vec3, u lightUniforms) {
	if !rl.IsShaderValid(shader) {
		return
	}
	set := func(name string, v []float32, typ rl.ShaderUniformDataType, count int32) {
		if count == 0 || len(v) == 0 {
			return
		}
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, typ, count)
		}
	}
	view := [3]float32{viewPos[0], viewPos[1], viewPos[2]}
	amb := defaultAmbient
	fill := defaultFillDir
	set("viewPos", view[:], rl.ShaderUniformVec3, 1)
	set("ambient", amb[:], rl.ShaderUniformVec4, 1)
	set("fillDir", fill[:], rl.ShaderUniformVec3, 1)
	set("fillIntensity", []float32{defaultFillIntensity}, rl.ShaderUniformFloat, 1)
	set("spotCount", []float32{float32(u.count)}, rl.ShaderUniformFloat, 1)
	set("spotPos", u.pos, rl.ShaderUniformVec3, u.count)
	set("spotDir", u.dir, rl.ShaderUniformVec3, u.count)
	set("spotColor", u.color, rl.ShaderUniformVec3, u.count)
	set("spotCutoff", u.cutoff, rl.ShaderUniformFloat, u.count)
	set("spotRange", u.reach, rl.ShaderUniformFloat, u.count)
	set("spotIntensity", u.intensity, rl.ShaderUniformFloat, u.count)
}
