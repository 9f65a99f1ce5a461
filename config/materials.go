package config

import "github.com/akmonengine/islet/actor"

// DefaultMaterials returns the named material presets a tuning file's
// "materials" section overlays. The teacher's old constraint solver named
// these same surfaces by their XPBD compliance constant; this module's
// impulse-based PGS solver has no notion of compliance, so each preset is
// re-expressed as restitution, friction, and damping instead.
func DefaultMaterials() map[string]actor.Material {
	return map[string]actor.Material{
		"concrete": {
			Density: 2400, Restitution: 0.05,
			StaticFriction: 0.9, DynamicFriction: 0.7,
			LinearDamping: 0.01, AngularDamping: 0.05,
		},
		"wood": {
			Density: 600, Restitution: 0.3,
			StaticFriction: 0.6, DynamicFriction: 0.4,
			LinearDamping: 0.01, AngularDamping: 0.05,
		},
		"leather": {
			Density: 860, Restitution: 0.15,
			StaticFriction: 0.7, DynamicFriction: 0.5,
			LinearDamping: 0.02, AngularDamping: 0.08,
		},
		"tendon": {
			Density: 1100, Restitution: 0.1,
			StaticFriction: 0.5, DynamicFriction: 0.4,
			LinearDamping: 0.05, AngularDamping: 0.15,
		},
		"rubber": {
			Density: 1100, Restitution: 0.85,
			StaticFriction: 1.0, DynamicFriction: 0.9,
			LinearDamping: 0.005, AngularDamping: 0.02,
		},
		"muscle": {
			Density: 1050, Restitution: 0.05,
			StaticFriction: 0.4, DynamicFriction: 0.3,
			LinearDamping: 0.08, AngularDamping: 0.2,
		},
		"fat": {
			Density: 920, Restitution: 0.02,
			StaticFriction: 0.3, DynamicFriction: 0.2,
			LinearDamping: 0.1, AngularDamping: 0.25,
		},
		"steel": {
			Density: 7850, Restitution: 0.4,
			StaticFriction: 0.6, DynamicFriction: 0.5,
			LinearDamping: 0.005, AngularDamping: 0.01,
		},
	}
}
