package renderer

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uViewProj * world;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vWorldPos;

uniform vec4 uColor;
uniform vec3 uEye;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 toEye = normalize(uEye - vWorldPos);
	// Light both faces; thin roof layers are seen from either side
	if (dot(n, toEye) < 0.0) {
		n = -n;
	}
	float key = max(dot(n, normalize(-uLightDir)), 0.0);
	float head = max(dot(n, toEye), 0.0);
	float light = 0.35 + 0.45 * key + 0.2 * head;
	FragColor = vec4(uColor.rgb * light, uColor.a);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`
