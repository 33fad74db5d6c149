package easing

import (
	penner "github.com/fogleman/ease"
	gease "github.com/tanema/gween/ease"
)

// RegisterPenner adds the elastic and bounce in/out variants the built-in
// set lacks.
func RegisterPenner(r *Registry) {
	r.Register("easeInElastic", penner.InElastic)
	r.Register("easeOutElastic", penner.OutElastic)
	r.Register("easeInOutElastic", penner.InOutElastic)
	r.Register("easeInBounce", penner.InBounce)
	r.Register("easeOutBounce", penner.OutBounce)
	r.Register("easeInOutBounce", penner.InOutBounce)
}

// RegisterOutIn adds the out-in family: the out curve over the first half,
// the in curve over the second.
func RegisterOutIn(r *Registry) {
	family := map[string]gease.TweenFunc{
		"easeOutInQuad":    gease.OutInQuad,
		"easeOutInCubic":   gease.OutInCubic,
		"easeOutInQuart":   gease.OutInQuart,
		"easeOutInQuint":   gease.OutInQuint,
		"easeOutInSine":    gease.OutInSine,
		"easeOutInExpo":    gease.OutInExpo,
		"easeOutInCirc":    gease.OutInCirc,
		"easeOutInBack":    gease.OutInBack,
		"easeOutInBounce":  gease.OutInBounce,
		"easeOutInElastic": gease.OutInElastic,
	}
	for name, fn := range family {
		r.Register(name, FromTweenFunc(fn))
	}
}

// FromTweenFunc adapts a gween (t, begin, change, duration) function to a
// normalized Func.
func FromTweenFunc(fn gease.TweenFunc) Func {
	return func(pos float64) float64 {
		return float64(fn(float32(pos), 0, 1, 1))
	}
}
