package core

import "fmt"

// Kind identifies a transformation family
type Kind int

const (
	KindGaussNoise Kind = iota
	KindHorizontalFlip
	KindVerticalFlip
	KindRandomBrightness
	KindGaussianBlur
	KindAdvancedBlur
	KindChannelShuffle
	KindChannelDropout
	KindRandomContrast
)

var kindNames = map[Kind]string{
	KindGaussNoise:       "GaussNoise",
	KindHorizontalFlip:   "HorizontalFlip",
	KindVerticalFlip:     "VerticalFlip",
	KindRandomBrightness: "RandomBrightness",
	KindGaussianBlur:     "GaussianBlur",
	KindAdvancedBlur:     "AdvancedBlur",
	KindChannelShuffle:   "ChannelShuffle",
	KindChannelDropout:   "ChannelDropout",
	KindRandomContrast:   "RandomContrast",
}

// PipelineKinds is the canonical toggle order of the pipeline page. Selection
// vectors passed to BuildPipeline are aligned positionally with it.
var PipelineKinds = []Kind{
	KindGaussNoise,
	KindHorizontalFlip,
	KindVerticalFlip,
	KindRandomBrightness,
	KindAdvancedBlur,
	KindChannelShuffle,
	KindChannelDropout,
	KindRandomContrast,
}

// String returns the stage label used in run results
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
