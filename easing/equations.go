package easing

import "math"

// Easing equations after Robert Penner, in the script.aculo.us adaptation.
// Evaluation order follows the reference formulas so results match them
// bit for bit.

// RegisterBuiltins installs the classic curve set into r.
func RegisterBuiltins(r *Registry) {
	for name, fn := range builtins {
		r.Register(name, fn)
	}
	r.Alias("easeOutExpo", "outExpo")
}

var builtins = map[string]Func{
	"linear": Linear,

	"easeInQuad":    InQuad,
	"easeOutQuad":   OutQuad,
	"easeInOutQuad": InOutQuad,

	"easeInCubic":    InCubic,
	"easeOutCubic":   OutCubic,
	"easeInOutCubic": InOutCubic,

	"easeInQuart":    InQuart,
	"easeOutQuart":   OutQuart,
	"easeInOutQuart": InOutQuart,

	"easeInQuint":    InQuint,
	"easeOutQuint":   OutQuint,
	"easeInOutQuint": InOutQuint,

	"easeInSine":    InSine,
	"easeOutSine":   OutSine,
	"easeInOutSine": InOutSine,

	"easeInExpo":    InExpo,
	"outExpo":       OutExpo,
	"easeInOutExpo": InOutExpo,

	"easeInCirc":    InCirc,
	"easeOutCirc":   OutCirc,
	"easeInOutCirc": InOutCirc,

	"easeInBack":    InBack,
	"easeOutBack":   OutBack,
	"easeInOutBack": InOutBack,

	"swingFromTo": SwingFromTo,
	"swingFrom":   SwingFrom,
	"swingTo":     SwingTo,

	"bounce":     Bounce,
	"bouncePast": BouncePast,

	"elastic": Elastic,
}

// backOvershoot is the "back" family overshoot, about 10%.
const backOvershoot = 1.70158

func Linear(pos float64) float64 {
	return pos
}

func InQuad(pos float64) float64 {
	return math.Pow(pos, 2)
}

func OutQuad(pos float64) float64 {
	return -(math.Pow(pos-1, 2) - 1)
}

func InOutQuad(pos float64) float64 {
	if pos /= 0.5; pos < 1 {
		return 0.5 * math.Pow(pos, 2)
	}
	pos -= 2
	return -0.5 * (pos*pos - 2)
}

func InCubic(pos float64) float64 {
	return math.Pow(pos, 3)
}

func OutCubic(pos float64) float64 {
	return math.Pow(pos-1, 3) + 1
}

func InOutCubic(pos float64) float64 {
	if pos /= 0.5; pos < 1 {
		return 0.5 * math.Pow(pos, 3)
	}
	return 0.5 * (math.Pow(pos-2, 3) + 2)
}

func InQuart(pos float64) float64 {
	return math.Pow(pos, 4)
}

func OutQuart(pos float64) float64 {
	return -(math.Pow(pos-1, 4) - 1)
}

func InOutQuart(pos float64) float64 {
	if pos /= 0.5; pos < 1 {
		return 0.5 * math.Pow(pos, 4)
	}
	pos -= 2
	return -0.5 * (pos*math.Pow(pos, 3) - 2)
}

func InQuint(pos float64) float64 {
	return math.Pow(pos, 5)
}

func OutQuint(pos float64) float64 {
	return math.Pow(pos-1, 5) + 1
}

func InOutQuint(pos float64) float64 {
	if pos /= 0.5; pos < 1 {
		return 0.5 * math.Pow(pos, 5)
	}
	return 0.5 * (math.Pow(pos-2, 5) + 2)
}

func InSine(pos float64) float64 {
	return -math.Cos(pos*(math.Pi/2)) + 1
}

func OutSine(pos float64) float64 {
	return math.Sin(pos * (math.Pi / 2))
}

func InOutSine(pos float64) float64 {
	return -0.5 * (math.Cos(math.Pi*pos) - 1)
}

func InExpo(pos float64) float64 {
	if pos == 0 {
		return 0
	}
	return math.Pow(2, 10*(pos-1))
}

func OutExpo(pos float64) float64 {
	if pos == 1 {
		return 1
	}
	return -math.Pow(2, -10*pos) + 1
}

func InOutExpo(pos float64) float64 {
	if pos == 0 {
		return 0
	}
	if pos == 1 {
		return 1
	}
	if pos /= 0.5; pos < 1 {
		return 0.5 * math.Pow(2, 10*(pos-1))
	}
	pos--
	return 0.5 * (-math.Pow(2, -10*pos) + 2)
}

func InCirc(pos float64) float64 {
	return -(math.Sqrt(1-(pos*pos)) - 1)
}

func OutCirc(pos float64) float64 {
	return math.Sqrt(1 - math.Pow(pos-1, 2))
}

func InOutCirc(pos float64) float64 {
	if pos /= 0.5; pos < 1 {
		return -0.5 * (math.Sqrt(1-pos*pos) - 1)
	}
	pos -= 2
	return 0.5 * (math.Sqrt(1-pos*pos) + 1)
}

func InBack(pos float64) float64 {
	s := backOvershoot
	return pos * pos * ((s+1)*pos - s)
}

func OutBack(pos float64) float64 {
	s := backOvershoot
	pos = pos - 1
	return pos*pos*((s+1)*pos+s) + 1
}

// InOutBack scales the overshoot by 1.525 at run time, matching the
// reference `s *= 1.525`.
func InOutBack(pos float64) float64 {
	s := backOvershoot
	if pos /= 0.5; pos < 1 {
		s *= 1.525
		return 0.5 * (pos * pos * ((s+1)*pos - s))
	}
	pos -= 2
	s *= 1.525
	return 0.5 * (pos*pos*((s+1)*pos+s) + 2)
}

func SwingFromTo(pos float64) float64 {
	return InOutBack(pos)
}

func SwingFrom(pos float64) float64 {
	return InBack(pos)
}

func SwingTo(pos float64) float64 {
	return OutBack(pos)
}

func Bounce(pos float64) float64 {
	switch {
	case pos < 1/2.75:
		return 7.5625 * pos * pos
	case pos < 2/2.75:
		pos -= 1.5 / 2.75
		return 7.5625*pos*pos + .75
	case pos < 2.5/2.75:
		pos -= 2.25 / 2.75
		return 7.5625*pos*pos + .9375
	default:
		pos -= 2.625 / 2.75
		return 7.5625*pos*pos + .984375
	}
}

func BouncePast(pos float64) float64 {
	switch {
	case pos < 1/2.75:
		return 7.5625 * pos * pos
	case pos < 2/2.75:
		pos -= 1.5 / 2.75
		return 2 - (7.5625*pos*pos + .75)
	case pos < 2.5/2.75:
		pos -= 2.25 / 2.75
		return 2 - (7.5625*pos*pos + .9375)
	default:
		pos -= 2.625 / 2.75
		return 2 - (7.5625*pos*pos + .984375)
	}
}

func Elastic(pos float64) float64 {
	return -1*math.Pow(4, -8*pos)*math.Sin((pos*6-1)*(2*math.Pi)/2) + 1
}
