package pixelit

// Stage identifies one step of a Pipeline.
type Stage int

// The stages in the order a Pipeline applies them.
const (
	StageResize Stage = iota + 1
	StagePixelate
	StageQuantize
	StageGrayscale
)

var stageNames = map[Stage]string{
	StageResize:    "resize",
	StagePixelate:  "pixelate",
	StageQuantize:  "quantize",
	StageGrayscale: "grayscale",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}
