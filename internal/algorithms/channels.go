package algorithms

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

// ChannelShuffle randomly permutes the color channels
type ChannelShuffle struct{}

func NewChannelShuffle() *ChannelShuffle {
	return &ChannelShuffle{}
}

func (c *ChannelShuffle) Apply(input gocv.Mat, params core.Params, s *Sampler) (gocv.Mat, error) {
	if _, err := paramsAs[core.ShuffleParams](c.GetName(), params); err != nil {
		return gocv.NewMat(), err
	}

	planes := gocv.Split(input)
	defer closeAll(planes)

	perm := s.Perm(len(planes))
	shuffled := make([]gocv.Mat, len(planes))
	for i, src := range perm {
		shuffled[i] = planes[src]
	}

	output := gocv.NewMat()
	gocv.Merge(shuffled, &output)
	return output, nil
}

func (c *ChannelShuffle) GetName() string {
	return "ChannelShuffle"
}

func (c *ChannelShuffle) GetDescription() string {
	return "Random permutation of the color channels"
}

// ChannelDropout fills a random subset of channels with a constant. The
// channels are kept, so the shape never changes.
type ChannelDropout struct{}

func NewChannelDropout() *ChannelDropout {
	return &ChannelDropout{}
}

func (c *ChannelDropout) Apply(input gocv.Mat, params core.Params, s *Sampler) (gocv.Mat, error) {
	p, err := paramsAs[core.DropoutParams](c.GetName(), params)
	if err != nil {
		return gocv.NewMat(), err
	}

	channels := input.Channels()
	if p.DropRange.Min < 1 || p.DropRange.Max < p.DropRange.Min {
		return gocv.NewMat(), errors.Errorf("invalid drop range (%d, %d)", p.DropRange.Min, p.DropRange.Max)
	}
	if p.DropRange.Max > channels {
		return gocv.NewMat(), errors.Errorf("cannot drop %d of %d channels", p.DropRange.Max, channels)
	}

	count := s.IntBetween(p.DropRange.Min, p.DropRange.Max)
	planes := gocv.Split(input)
	defer closeAll(planes)

	fill := float64(p.FillValue)
	for _, ch := range s.Perm(channels)[:count] {
		planes[ch].SetTo(gocv.NewScalar(fill, 0, 0, 0))
	}

	output := gocv.NewMat()
	gocv.Merge(planes, &output)
	return output, nil
}

func (c *ChannelDropout) GetName() string {
	return "ChannelDropout"
}

func (c *ChannelDropout) GetDescription() string {
	return "Fill randomly chosen channels with a constant value"
}
