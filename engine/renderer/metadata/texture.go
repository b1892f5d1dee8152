package metadata

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

func (f TextureFilter) String() string {
	if f == TextureFilterModeLinear {
		return "linear"
	}
	return "nearest"
}

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

/**
 * @brief A structure which maps a named texture to the sampler
 * used to read it.
 */
type TextureMap struct {
	/** @brief The name of the texture, resolved by the backend. */
	TextureName string
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
	/** @brief Filtering mode between mip levels. */
	FilterMip TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV       TextureRepeat
	MaxAnisotropy uint16
}

// NewTextureMap returns the sampler every material uses: repeating in both
// directions, linear magnification, nearest minification and mip selection.
func NewTextureMap(textureName string) TextureMap {
	return TextureMap{
		TextureName:   textureName,
		FilterMinify:  TextureFilterModeNearest,
		FilterMagnify: TextureFilterModeLinear,
		FilterMip:     TextureFilterModeNearest,
		RepeatU:       TextureRepeatRepeat,
		RepeatV:       TextureRepeatRepeat,
		MaxAnisotropy: 1,
	}
}
