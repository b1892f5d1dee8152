package metadata

import "github.com/spaghettifunk/tessera/engine/components"

const (
	FloorTextureName    string = "floor.png"
	PortraitTextureName string = "portrait.jpg"
)

/**
 * @brief A material, which represents the surface of every
 * instance of a kind: a single diffuse texture and its sampler.
 */
type Material struct {
	/** @brief The material name. */
	Name string
	/** @brief The diffuse texture map. */
	DiffuseMap TextureMap
}

// MaterialFor returns the material drawn on the given kind.
func MaterialFor(kind components.Kind) *Material {
	texture := FloorTextureName
	if kind == components.KindTriangle {
		texture = PortraitTextureName
	}
	return &Material{
		Name:       kind.String(),
		DiffuseMap: NewTextureMap(texture),
	}
}
