// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package radar

import (
	"github.com/mc-aweaver/techradar-1/pkg/slice"
)

// ByQuadrant splits blips into the four quadrants, in [Quadrants] order.
// Every quadrant is present, even when empty, and blips keep their order.
func ByQuadrant(blips []*Blip) []*QuadrantBlips {
	return slice.Map(Quadrants, func(quadrant string) *QuadrantBlips {
		members := slice.Filter(blips, func(blip *Blip) bool { return blip.Quadrant == quadrant })
		if members == nil {
			members = []*Blip{}
		}
		return &QuadrantBlips{Quadrant: quadrant, Blips: members}
	})
}
